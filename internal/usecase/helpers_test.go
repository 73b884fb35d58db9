package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"ninjashop/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func principal(userID int64, perms ...string) Principal {
	return NewPrincipal(model.User{ID: userID, Username: "u"}, "sess-1", perms)
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	he, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status, he.Message)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, ev model.OrderEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type imageStoreMock struct{ mock.Mock }

func (m *imageStoreMock) SaveImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

func (m *imageStoreMock) Remove(ctx context.Context, rel string) error {
	return m.Called(ctx, rel).Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type authValidatorStub struct {
	registerErr error
	loginErr    error
}

func (s authValidatorStub) ValidateRegister(ctx context.Context, in RegisterInput) error {
	return s.registerErr
}

func (s authValidatorStub) ValidateLogin(ctx context.Context, in LoginInput) error {
	return s.loginErr
}
