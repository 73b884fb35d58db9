package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"ninjashop/internal/domain/model"
	"ninjashop/internal/infra/storage"
	repo "ninjashop/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 商品画像の保存先
type ImageStore interface {
	SaveImage(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, rel string) error
}

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	auditRepo    repo.AuditLogRepository
	images       ImageStore
	logger       *zap.Logger
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
	images ImageStore,
	logger *zap.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		images:       images,
		logger:       logger,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Category string
	Search   string
	MinPrice string
	MaxPrice string
	Sort     string
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if len(in.Search) > 100 {
		return []model.Product{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}

	minPrice, err := parseOptionalPrice(in.MinPrice, "min_price")
	if err != nil {
		return []model.Product{}, err
	}
	maxPrice, err := parseOptionalPrice(in.MaxPrice, "max_price")
	if err != nil {
		return []model.Product{}, err
	}
	if minPrice != nil && maxPrice != nil && minPrice.GreaterThan(*maxPrice) {
		return []model.Product{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}

	q := repo.ProductListQuery{
		Search:   strings.TrimSpace(in.Search),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		// price_asc / price_desc 以外はそのまま渡して無視させる
		Sort: in.Sort,
	}

	//カテゴリ絞り込み。存在しないslugは空の結果
	if slug := strings.TrimSpace(in.Category); slug != "" {
		c, err := u.categoryRepo.FindBySlug(ctx, slug)
		if errors.Is(err, repo.ErrNotFound) {
			return []model.Product{}, nil
		}
		if err != nil {
			return []model.Product{}, repoError(err, "category not found")
		}
		q.CategoryID = &c.ID
	}

	items, err := u.productRepo.List(ctx, q)
	if err != nil {
		return []model.Product{}, repoError(err, "not found")
	}
	return items, nil
}

// カテゴリ内の商品。カテゴリが無ければ404
func (u *ProductUsecase) ListCategoryProducts(ctx context.Context, slug string) ([]model.Product, error) {
	c, err := u.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return []model.Product{}, repoError(err, "category not found")
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{CategoryID: &c.ID})
	if err != nil {
		return []model.Product{}, repoError(err, "not found")
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, repoError(err, "product not found")
	}
	return p, nil
}

type ProductInput struct {
	Category    string `json:"category" validate:"required"`
	Name        string `json:"name" validate:"required,max=250"`
	Slug        string `json:"slug" validate:"required,max=250"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description"`
}

// 画像は任意
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, p Principal, in ProductInput, image *ImageUpload) (model.Product, error) {
	if err := requirePerm(p, model.PermAddProduct); err != nil {
		return model.Product{}, err
	}

	product, err := u.buildProduct(ctx, in)
	if err != nil {
		return model.Product{}, err
	}

	if image != nil {
		rel, err := u.images.SaveImage(ctx, image.Filename, image.Body)
		if err != nil {
			return model.Product{}, imageError(err)
		}
		product.Image = rel
	}

	created, err := u.productRepo.Create(ctx, product)
	if err != nil {
		//保存した画像は片付ける
		u.removeImage(ctx, product.Image)
		return model.Product{}, repoError(err, "category not found")
	}
	return created, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, p Principal, productID int64, in ProductInput) (model.Product, error) {
	if err := requirePerm(p, model.PermChangeProduct); err != nil {
		return model.Product{}, err
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	current, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, repoError(err, "product not found")
	}

	product, err := u.buildProduct(ctx, in)
	if err != nil {
		return model.Product{}, err
	}
	product.ID = current.ID
	product.Image = current.Image

	if err := u.productRepo.Update(ctx, product); err != nil {
		return model.Product{}, repoError(err, "product not found")
	}

	updated, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, repoError(err, "product not found")
	}
	return updated, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, p Principal, productID int64) error {
	if err := requirePerm(p, model.PermDeleteProduct); err != nil {
		return err
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	current, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return repoError(err, "product not found")
	}
	if err := u.productRepo.Delete(ctx, productID); err != nil {
		return repoError(err, "product not found")
	}

	//監査ログを作成（商品削除）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  p.UserID,
		Action:       model.AuditActionDeleteProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON: toJSON(map[string]interface{}{
			"name":  current.Name,
			"slug":  current.Slug,
			"price": current.Price.StringFixed(2),
		}),
		CreatedAt: time.Now(),
	}); err != nil {
		return repoError(err, "not found")
	}

	u.removeImage(ctx, current.Image)
	return nil
}

func (u *ProductUsecase) buildProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.TrimSpace(in.Slug)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if slug == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "slug required")
	}

	price, err := parsePrice(in.Price, "price")
	if err != nil {
		return model.Product{}, err
	}

	c, err := u.categoryRepo.FindBySlug(ctx, strings.TrimSpace(in.Category))
	if err != nil {
		return model.Product{}, repoError(err, "category not found")
	}

	return model.Product{
		CategoryID:  c.ID,
		Category:    c,
		Name:        name,
		Slug:        slug,
		Price:       price,
		Description: in.Description,
	}, nil
}

func (u *ProductUsecase) removeImage(ctx context.Context, rel string) {
	if rel == "" {
		return
	}
	if err := u.images.Remove(ctx, rel); err != nil {
		u.logger.Warn("remove product image failed", zap.String("image", rel), zap.Error(err))
	}
}

func imageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrUnsupportedImage):
		return NewHTTPError(http.StatusBadRequest, "unsupported image type")
	case errors.Is(err, storage.ErrImageTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	default:
		return NewHTTPError(http.StatusInternalServerError, "image save failed")
	}
}

// 価格は0以上、小数2桁まで
func parsePrice(s string, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, "invalid "+field)
	}
	if d.IsNegative() {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, field+" must be >= 0")
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, field+" must have at most 2 decimal places")
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, field+" too large")
	}
	return d.Round(2), nil
}

// numeric(10,2)の上限
var maxAmount = decimal.New(1, 8)

func parseOptionalPrice(s string, field string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := parsePrice(s, field)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
