package repository

import (
	"errors"
	"fmt"
	"strings"

	repo "ninjashop/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQLのSQLSTATE
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// gorm/pgxのエラーをrepositoryの共通エラーに寄せる
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", repo.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", repo.ErrNotFound, pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s", repo.ErrTxAborted, pgErr.Code)
		}
	}
	return err
}

// LIKEのワイルドカードをエスケープする
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
