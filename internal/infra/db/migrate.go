package db

import (
	"context"
	"fmt"

	"ninjashop/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 外部キーの参照先から順に並べる
var models = []interface{}{
	&model.Permission{},
	&model.User{},
	&model.Session{},
	&model.Category{},
	&model.Product{},
	&model.Wishlist{},
	&model.Status{},
	&model.Order{},
	&model.OrderItem{},
	&model.AuditLog{},
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// 初期ステータス（ID固定）と権限codenameを投入する。何度実行してもよい。
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, name := range model.DefaultStatuses {
			s := model.Status{ID: int64(i + 1), Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
				return fmt.Errorf("seed status %s: %w", name, err)
			}
		}

		// ID指定で入れたのでシーケンスを進めておく
		if err := tx.Exec(
			"SELECT setval(pg_get_serial_sequence('statuses', 'id'), (SELECT COALESCE(MAX(id), 1) FROM statuses))",
		).Error; err != nil {
			return fmt.Errorf("reset status sequence: %w", err)
		}

		perms := make([]model.Permission, 0, len(model.AllPermissions))
		for _, code := range model.AllPermissions {
			perms = append(perms, model.Permission{Codename: code})
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "codename"}},
			DoNothing: true,
		}).Create(&perms).Error; err != nil {
			return fmt.Errorf("seed permissions: %w", err)
		}
		return nil
	})
}
