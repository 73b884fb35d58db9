package repository

import (
	"context"
	"time"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// 注文変更・削除と同じトランザクションで書く
func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	return translateError(r.db.WithContext(ctx).Create(&log).Error)
}

func (r *AuditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	limit := filter.Limit
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Scopes(auditFilterScope(filter)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, translateError(err)
	}
	return logs, nil
}

func auditFilterScope(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.ActorUserID != nil {
			q = q.Where("actor_user_id = ?", *f.ActorUserID)
		}
		if f.Action != nil {
			q = q.Where("action = ?", *f.Action)
		}
		if f.ResourceType != nil {
			q = q.Where("resource_type = ?", *f.ResourceType)
		}
		if f.ResourceID != nil {
			q = q.Where("resource_id = ?", *f.ResourceID)
		}
		return q
	}
}
