package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
	ValidateLogin(ctx context.Context, in LoginInput) error
}

// 平文パスワードのハッシュ化と照合
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束。sessionIDはjtiに入る
type AccessTokenIssuer interface {
	Issue(userID int64, sessionID string, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type UserDTO struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	IsActive    bool     `json:"is_active"`
	IsSuperuser bool     `json:"is_superuser"`
	Permissions []string `json:"permissions,omitempty"`
}

type RegisterInput struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginOutput struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int     `json:"expires_in"`
	User        UserDTO `json:"user"`
}

type AuthUsecase struct {
	users     repo.UserRepository
	sessions  repo.SessionRepository
	validator AuthValidator
	hasher    PasswordHasher
	issuer    AccessTokenIssuer
	clock     Clock
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthUsecase(
	users repo.UserRepository,
	sessions repo.SessionRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	clock Clock,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		sessions:  sessions,
		validator: validator,
		hasher:    hasher,
		issuer:    issuer,
		clock:     clock,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserDTO, error) {
	return u.createUser(ctx, in, false)
}

// CLIのcreatesuperuserから呼ぶ
func (u *AuthUsecase) CreateSuperuser(ctx context.Context, in RegisterInput) (UserDTO, error) {
	return u.createUser(ctx, in, true)
}

func (u *AuthUsecase) createUser(ctx context.Context, in RegisterInput, superuser bool) (UserDTO, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return UserDTO{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	hashed, err := u.hasher.Hash(in.Password1)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Username:     strings.TrimSpace(in.Username),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed,
		IsActive:     true,
		IsSuperuser:  superuser,
	}

	//username重複はrepoがErrConflictを返す
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "username already exists")
		}
		return UserDTO{}, repoError(err, "not found")
	}

	u.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Bool("superuser", superuser))

	return toUserDTO(user, nil), nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput, userAgent string) (LoginOutput, error) {
	if err := u.validator.ValidateLogin(ctx, in); err != nil {
		return LoginOutput{}, err
	}

	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, repo.ErrNotFound) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, repoError(err, "not found")
	}

	//パスワード照合（bcrypt）
	if !u.hasher.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "user is inactive")
	}

	now := u.clock.Now()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: truncate(userAgent, 255),
		ExpiresAt: now.Add(u.tokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return LoginOutput{}, repoError(err, "not found")
	}

	token, exp, err := u.issuer.Issue(user.ID, session.ID, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//last_login更新。失敗してもログインは通す
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		u.logger.Warn("update last login failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	return LoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(exp.Sub(now).Seconds()),
		User:        toUserDTO(user, nil),
	}, nil
}

// セッションを失効させる。以後同じトークンは401
func (u *AuthUsecase) Logout(ctx context.Context, p Principal) error {
	if !p.Authenticated() || p.SessionID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	err := u.sessions.Revoke(ctx, p.SessionID, u.clock.Now())
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return repoError(err, "not found")
	}
	return nil
}

// jtiとsubからPrincipalを組み立てる（middlewareから呼ぶ）
func (u *AuthUsecase) Authenticate(ctx context.Context, sessionID string, userID int64) (Principal, error) {
	unauthorized := NewHTTPError(http.StatusUnauthorized, "unauthorized")

	session, err := u.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return Principal{}, unauthorized
	}
	if err != nil {
		return Principal{}, repoError(err, "not found")
	}
	if session.UserID != userID || !session.Active(u.clock.Now()) {
		return Principal{}, unauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return Principal{}, unauthorized
	}
	if err != nil {
		return Principal{}, repoError(err, "not found")
	}
	if !user.IsActive {
		return Principal{}, NewHTTPError(http.StatusForbidden, "user is inactive")
	}

	codes, err := u.users.PermissionCodenames(ctx, user.ID)
	if err != nil {
		return Principal{}, repoError(err, "not found")
	}
	return NewPrincipal(*user, session.ID, codes), nil
}

func (u *AuthUsecase) Me(ctx context.Context, p Principal) (UserDTO, error) {
	if !p.Authenticated() {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	user, err := u.users.FindByID(ctx, p.UserID)
	if err != nil {
		return UserDTO{}, repoError(err, "user not found")
	}
	return toUserDTO(user, p.Permissions()), nil
}

func (u *AuthUsecase) ListUsers(ctx context.Context, p Principal) ([]UserDTO, error) {
	if err := requirePerm(p, model.PermViewUser); err != nil {
		return []UserDTO{}, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return []UserDTO{}, repoError(err, "not found")
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i], nil))
	}
	return out, nil
}

// CLIのgrantから呼ぶ
func (u *AuthUsecase) GrantPermissions(ctx context.Context, username string, codenames []string) error {
	if len(codenames) == 0 {
		return NewHTTPError(http.StatusBadRequest, "permissions required")
	}
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return repoError(err, "user not found")
	}
	if err := u.users.GrantPermissions(ctx, user.ID, codenames); err != nil {
		return repoError(err, "permission not found")
	}
	return nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User, perms []string) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		Permissions: perms,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
