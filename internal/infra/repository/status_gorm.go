package repository

import (
	"context"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"gorm.io/gorm"
)

type StatusGormRepository struct {
	db *gorm.DB
}

func NewStatusGormRepository(db *gorm.DB) *StatusGormRepository {
	return &StatusGormRepository{db: db}
}

func (r *StatusGormRepository) List(ctx context.Context) ([]model.Status, error) {
	var list []model.Status
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return []model.Status{}, err
	}
	return list, nil
}

func (r *StatusGormRepository) FindByID(ctx context.Context, id int64) (model.Status, error) {
	var s model.Status
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return model.Status{}, translateError(err)
	}
	return s, nil
}

func (r *StatusGormRepository) Create(ctx context.Context, s model.Status) (model.Status, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Status{}, translateError(err)
	}
	return s, nil
}

// このステータスを持つ注文もCASCADEで消える
func (r *StatusGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Status{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
