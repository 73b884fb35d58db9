package repository

import (
	"context"
	"time"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"gorm.io/gorm"
)

type sessionGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewSessionGormRepository(db *gorm.DB) repo.SessionRepository {
	return &sessionGormRepository{db: db}
}

// セッションを保存
func (r *sessionGormRepository) Create(ctx context.Context, session *model.Session) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(session).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// jtiで1件検索します。
func (r *sessionGormRepository) FindByID(ctx context.Context, sessionID string) (*model.Session, error) {
	var s model.Session

	err := r.db.WithContext(ctx).
		Where("id = ?", sessionID).
		First(&s).Error
	if err != nil {
		return nil, translateError(err)
	}

	return &s, nil
}

// revoked_at をセットして失効させます。
func (r *sessionGormRepository) Revoke(ctx context.Context, sessionID string, revokedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", &revokedAt)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
