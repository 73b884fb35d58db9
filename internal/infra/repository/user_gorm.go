package repository

import (
	"context"
	"fmt"

	"ninjashop/internal/domain/model"
	domainrepo "ninjashop/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// ユーザーを新規作成。usernameの重複はErrConflict
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Omit("Permissions").Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, translateError(err)
	}

	return &u, nil
}

// usernameでユーザーを1件取得
func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		return nil, translateError(err)
	}

	return &u, nil
}

func (r *userGormRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

// ユーザーを更新。
func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Omit("Permissions").Save(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userGormRepository) PermissionCodenames(ctx context.Context, userID int64) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ?", userID).
		Order("permissions.codename asc").
		Pluck("permissions.codename", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// 未知のcodenameが混ざっていればErrNotFound
func (r *userGormRepository) GrantPermissions(ctx context.Context, userID int64, codenames []string) error {
	if len(codenames) == 0 {
		return nil
	}

	uniq := make(map[string]struct{}, len(codenames))
	for _, c := range codenames {
		uniq[c] = struct{}{}
	}

	var perms []model.Permission
	if err := r.db.WithContext(ctx).Where("codename IN ?", codenames).Find(&perms).Error; err != nil {
		return err
	}
	if len(perms) != len(uniq) {
		return fmt.Errorf("%w: permission", domainrepo.ErrNotFound)
	}

	user := model.User{ID: userID}
	if err := r.db.WithContext(ctx).Model(&user).Association("Permissions").Append(&perms); err != nil {
		return translateError(err)
	}
	return nil
}
