package repository

import (
	"context"

	"ninjashop/internal/domain/model"
)

type UserRepository interface {
	//username重複はErrConflict
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	//最終ログインなど
	Update(ctx context.Context, user *model.User) error

	//付与済み権限のcodename一覧
	PermissionCodenames(ctx context.Context, userID int64) ([]string, error)
	GrantPermissions(ctx context.Context, userID int64, codenames []string) error
}
