package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"
	"ninjashop/internal/repository/repomock"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newAuthUsecase(v AuthValidator) (*AuthUsecase, *repomock.UserRepoMock, *repomock.SessionRepoMock) {
	users := new(repomock.UserRepoMock)
	sessions := new(repomock.SessionRepoMock)
	uc := NewAuthUsecase(
		users,
		sessions,
		v,
		NewBcryptPasswordHasher(bcrypt.MinCost),
		NewJWTIssuer(testSecret, time.Hour),
		fixedClock{now: testNow},
		time.Hour,
		zap.NewNop(),
	)
	return uc, users, sessions
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := NewBcryptPasswordHasher(bcrypt.MinCost).Hash(plain)
	require.NoError(t, err)
	return h
}

func TestRegister(t *testing.T) {
	uc, users, _ := newAuthUsecase(authValidatorStub{})
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice" && u.PasswordHash != "" && u.PasswordHash != "wonderland" && u.IsActive && !u.IsSuperuser
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 10
	}).Return(nil)

	dto, err := uc.Register(context.Background(), RegisterInput{
		Username: " alice ", Email: "a@example.com", Password1: "wonderland", Password2: "wonderland",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), dto.ID)
	assert.Equal(t, "alice", dto.Username)
}

func TestRegister_Conflict(t *testing.T) {
	uc, users, _ := newAuthUsecase(authValidatorStub{})
	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	_, err := uc.Register(context.Background(), RegisterInput{Username: "alice", Password1: "wonderland", Password2: "wonderland"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestRegister_ValidatorError(t *testing.T) {
	uc, users, _ := newAuthUsecase(authValidatorStub{registerErr: NewHTTPError(http.StatusBadRequest, "passwords do not match")})

	_, err := uc.Register(context.Background(), RegisterInput{Username: "alice"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSuperuser(t *testing.T) {
	uc, users, _ := newAuthUsecase(authValidatorStub{})
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool { return u.IsSuperuser })).Return(nil)

	dto, err := uc.CreateSuperuser(context.Background(), RegisterInput{Username: "root", Password1: "password1", Password2: "password1"})
	require.NoError(t, err)
	assert.True(t, dto.IsSuperuser)
}

func TestLogin(t *testing.T) {
	uc, users, sessions := newAuthUsecase(authValidatorStub{})
	user := &model.User{ID: 7, Username: "alice", PasswordHash: hashed(t, "wonderland"), IsActive: true}
	users.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	var saved *model.Session
	sessions.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.Session)
	}).Return(nil)

	out, err := uc.Login(context.Background(), LoginInput{Username: "alice", Password: "wonderland"}, "curl/8")
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, int64(7), saved.UserID)
	assert.Equal(t, testNow.Add(time.Hour), saved.ExpiresAt)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, 3600, out.ExpiresIn)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(out.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, saved.ID, claims["jti"])

	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, testNow, *user.LastLoginAt)
}

func TestLogin_Failures(t *testing.T) {
	uc, users, sessions := newAuthUsecase(authValidatorStub{})
	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)
	users.On("FindByUsername", mock.Anything, "alice").
		Return(&model.User{ID: 7, Username: "alice", PasswordHash: hashed(t, "wonderland"), IsActive: true}, nil)
	users.On("FindByUsername", mock.Anything, "bob").
		Return(&model.User{ID: 8, Username: "bob", PasswordHash: hashed(t, "password1"), IsActive: false}, nil)

	_, err := uc.Login(context.Background(), LoginInput{Username: "ghost", Password: "x"}, "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)

	_, err = uc.Login(context.Background(), LoginInput{Username: "alice", Password: "wrong-password"}, "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)

	_, err = uc.Login(context.Background(), LoginInput{Username: "bob", Password: "password1"}, "")
	assertHTTPStatus(t, err, http.StatusForbidden)

	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	uc, users, sessions := newAuthUsecase(authValidatorStub{})
	sessions.On("FindByID", mock.Anything, "s-ok").
		Return(&model.Session{ID: "s-ok", UserID: 7, ExpiresAt: testNow.Add(time.Minute)}, nil)
	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, Username: "alice", IsActive: true}, nil)
	users.On("PermissionCodenames", mock.Anything, int64(7)).Return([]string{model.PermViewOrder}, nil)

	p, err := uc.Authenticate(context.Background(), "s-ok", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, "s-ok", p.SessionID)
	assert.True(t, p.Can(model.PermViewOrder))
	assert.False(t, p.Can(model.PermChangeOrder))

	// subとセッションの持ち主が違う
	_, err = uc.Authenticate(context.Background(), "s-ok", 8)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuthenticate_Rejects(t *testing.T) {
	uc, users, sessions := newAuthUsecase(authValidatorStub{})
	revokedAt := testNow.Add(-time.Minute)
	sessions.On("FindByID", mock.Anything, "revoked").
		Return(&model.Session{ID: "revoked", UserID: 7, ExpiresAt: testNow.Add(time.Hour), RevokedAt: &revokedAt}, nil)
	sessions.On("FindByID", mock.Anything, "expired").
		Return(&model.Session{ID: "expired", UserID: 7, ExpiresAt: testNow.Add(-time.Second)}, nil)
	sessions.On("FindByID", mock.Anything, "missing").Return(nil, repo.ErrNotFound)
	sessions.On("FindByID", mock.Anything, "inactive").
		Return(&model.Session{ID: "inactive", UserID: 8, ExpiresAt: testNow.Add(time.Hour)}, nil)
	users.On("FindByID", mock.Anything, int64(8)).Return(&model.User{ID: 8, IsActive: false}, nil)

	for _, sid := range []string{"revoked", "expired", "missing"} {
		_, err := uc.Authenticate(context.Background(), sid, 7)
		assertHTTPStatus(t, err, http.StatusUnauthorized)
	}

	_, err := uc.Authenticate(context.Background(), "inactive", 8)
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestLogout(t *testing.T) {
	uc, _, sessions := newAuthUsecase(authValidatorStub{})
	sessions.On("Revoke", mock.Anything, "sess-1", testNow).Return(nil).Once()
	sessions.On("Revoke", mock.Anything, "sess-1", testNow).Return(repo.ErrNotFound)

	require.NoError(t, uc.Logout(context.Background(), principal(7)))

	err := uc.Logout(context.Background(), principal(7))
	assertHTTPStatus(t, err, http.StatusUnauthorized)

	err = uc.Logout(context.Background(), Principal{})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestMeAndListUsers(t *testing.T) {
	uc, users, _ := newAuthUsecase(authValidatorStub{})
	users.On("FindByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, Username: "alice", IsActive: true}, nil)
	users.On("List", mock.Anything).Return([]model.User{{ID: 7}, {ID: 8}}, nil)

	me, err := uc.Me(context.Background(), principal(7, model.PermViewUser))
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, []string{model.PermViewUser}, me.Permissions)

	_, err = uc.ListUsers(context.Background(), principal(7))
	assertHTTPStatus(t, err, http.StatusForbidden)

	list, err := uc.ListUsers(context.Background(), principal(7, model.PermViewUser))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGrantPermissions(t *testing.T) {
	uc, users, _ := newAuthUsecase(authValidatorStub{})
	users.On("FindByUsername", mock.Anything, "staff").Return(&model.User{ID: 3}, nil)
	users.On("GrantPermissions", mock.Anything, int64(3), []string{model.PermViewOrder}).Return(nil)
	users.On("GrantPermissions", mock.Anything, int64(3), []string{"bogus"}).Return(repo.ErrNotFound)

	require.NoError(t, uc.GrantPermissions(context.Background(), "staff", []string{model.PermViewOrder}))

	err := uc.GrantPermissions(context.Background(), "staff", []string{"bogus"})
	assertHTTPStatus(t, err, http.StatusNotFound)

	err = uc.GrantPermissions(context.Background(), "staff", nil)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}
