package repository

import (
	"context"
	"strings"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// カテゴリ/検索/価格帯/ソートで絞った全件を返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{}).Preload("Category")

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	// name / description の部分一致
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		tx = tx.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	//sort
	switch q.Sort {
	case repo.SortPriceAsc:
		tx = tx.Order("price asc").Order("id asc")
	case repo.SortPriceDesc:
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("name asc").Order("id asc")
	}

	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

// 商品の作成。カテゴリを読み込んだ状態で返す
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&p).Error; err != nil {
		return model.Product{}, translateError(err)
	}
	return r.FindByID(ctx, p.ID)
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category_id": p.CategoryID,
		"name":        p.Name,
		"slug":        p.Slug,
		"price":       p.Price,
		"description": p.Description,
		"image":       p.Image,
	})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除。wishlist/order_itemsはCASCADE
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
