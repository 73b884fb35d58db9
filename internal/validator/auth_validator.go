package validator

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"ninjashop/internal/repository"
	"ninjashop/internal/usecase"

	playground "github.com/go-playground/validator/v10"
)

const minPasswordLen = 8

// 英数字と @ . + - _
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type authValidator struct {
	users repository.UserRepository
	v     *playground.Validate
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users, v: playground.New()}
}

// 会員登録の入力を検証
func (a *authValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	username := strings.TrimSpace(in.Username)

	// 必須チェック
	if username == "" || in.Password1 == "" {
		return invalid("username and password required")
	}
	if len(username) > 150 || !usernamePattern.MatchString(username) {
		return invalid("invalid username")
	}

	// email形式（空は許す）
	if email := strings.TrimSpace(in.Email); email != "" {
		if err := a.v.Var(email, "email"); err != nil {
			return invalid("invalid email")
		}
	}

	if in.Password1 != in.Password2 {
		return invalid("passwords do not match")
	}
	// パスワード最低文字数
	if len(in.Password1) < minPasswordLen {
		return invalid("password too short")
	}

	// username重複チェック（DBが必要）
	_, err := a.users.FindByUsername(ctx, username)
	if err == nil {
		return invalid("username already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return usecase.NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ログインの入力を検証
func (a *authValidator) ValidateLogin(ctx context.Context, in usecase.LoginInput) error {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return invalid("username and password required")
	}
	return nil
}

func invalid(msg string) error {
	return usecase.NewHTTPError(http.StatusBadRequest, msg)
}
