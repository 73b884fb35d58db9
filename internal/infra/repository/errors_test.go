package repository

import (
	"errors"
	"fmt"
	"testing"

	repo "ninjashop/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, repo.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uniq_wishlist"}, repo.ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation}, repo.ErrNotFound},
		{"deadlock", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgDeadlockDetected}), repo.ErrTxAborted},
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, repo.ErrTxAborted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.in), tt.want)
		})
	}
}

func TestTranslateError_PassThrough(t *testing.T) {
	assert.NoError(t, translateError(nil))

	numeric := &pgconn.PgError{Code: "22003"}
	got := translateError(numeric)
	assert.True(t, errors.Is(got, numeric))
	assert.False(t, errors.Is(got, repo.ErrTxAborted))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
