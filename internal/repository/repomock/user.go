package repomock

import (
	"context"
	"time"

	"ninjashop/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.User)
	return list, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) PermissionCodenames(ctx context.Context, userID int64) ([]string, error) {
	args := m.Called(ctx, userID)
	codes, _ := args.Get(0).([]string)
	return codes, args.Error(1)
}

func (m *UserRepoMock) GrantPermissions(ctx context.Context, userID int64, codenames []string) error {
	return m.Called(ctx, userID, codenames).Error(0)
}

type SessionRepoMock struct{ mock.Mock }

func (m *SessionRepoMock) Create(ctx context.Context, session *model.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepoMock) FindByID(ctx context.Context, sessionID string) (*model.Session, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *SessionRepoMock) Revoke(ctx context.Context, sessionID string, revokedAt time.Time) error {
	return m.Called(ctx, sessionID, revokedAt).Error(0)
}
