package validator

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"
	"ninjashop/internal/repository/repomock"
	"ninjashop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRegister() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "alice@example.com",
		Password1: "wonderland",
		Password2: "wonderland",
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func TestValidateRegister_OK(t *testing.T) {
	users := new(repomock.UserRepoMock)
	users.On("FindByUsername", mock.Anything, "alice").Return(nil, repo.ErrNotFound)

	v := NewAuthValidator(users)
	assert.NoError(t, v.ValidateRegister(context.Background(), validRegister()))
	users.AssertExpectations(t)
}

func TestValidateRegister_Rejects(t *testing.T) {
	cases := map[string]func(in *usecase.RegisterInput){
		"password mismatch": func(in *usecase.RegisterInput) { in.Password2 = "different1" },
		"short password": func(in *usecase.RegisterInput) {
			in.Password1 = "short"
			in.Password2 = "short"
		},
		"bad email":      func(in *usecase.RegisterInput) { in.Email = "not-an-email" },
		"empty username": func(in *usecase.RegisterInput) { in.Username = "  " },
		"bad username":   func(in *usecase.RegisterInput) { in.Username = "has space" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			users := new(repomock.UserRepoMock)
			in := validRegister()
			mutate(&in)

			err := NewAuthValidator(users).ValidateRegister(context.Background(), in)
			assertStatus(t, err, http.StatusBadRequest)
			users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
		})
	}
}

func TestValidateRegister_UsernameTaken(t *testing.T) {
	users := new(repomock.UserRepoMock)
	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)

	err := NewAuthValidator(users).ValidateRegister(context.Background(), validRegister())
	assertStatus(t, err, http.StatusBadRequest)
}

func TestValidateRegister_DBError(t *testing.T) {
	users := new(repomock.UserRepoMock)
	users.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("boom"))

	err := NewAuthValidator(users).ValidateRegister(context.Background(), validRegister())
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator(new(repomock.UserRepoMock))
	assert.NoError(t, v.ValidateLogin(context.Background(), usecase.LoginInput{Username: "a", Password: "b"}))
	assertStatus(t, v.ValidateLogin(context.Background(), usecase.LoginInput{Username: "a"}), http.StatusBadRequest)
}

func TestRequestValidator(t *testing.T) {
	rv := NewRequestValidator()

	assert.NoError(t, rv.Validate(&usecase.WishlistInput{User: 1, Product: 2, Quantity: 3}))

	err := rv.Validate(&usecase.WishlistInput{User: 1, Product: 2, Quantity: 0})
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Contains(t, he.Message, "quantity")
}
