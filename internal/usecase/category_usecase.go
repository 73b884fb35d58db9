package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	auditRepo    repo.AuditLogRepository
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository, auditRepo repo.AuditLogRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo, auditRepo: auditRepo}
}

type CategoryInput struct {
	Name string `json:"name" validate:"required,max=250"`
	Slug string `json:"slug" validate:"required,max=250"`
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	list, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []model.Category{}, repoError(err, "not found")
	}
	return list, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, slug string) (model.Category, error) {
	c, err := u.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return model.Category{}, repoError(err, "category not found")
	}
	return c, nil
}

// slug重複は400
func (u *CategoryUsecase) Create(ctx context.Context, p Principal, in CategoryInput) (model.Category, error) {
	if err := requirePerm(p, model.PermAddCategory); err != nil {
		return model.Category{}, err
	}
	c, err := normalizeCategory(in)
	if err != nil {
		return model.Category{}, err
	}

	created, err := u.categoryRepo.Create(ctx, c)
	if err != nil {
		return model.Category{}, repoError(err, "not found")
	}
	return created, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, p Principal, slug string, in CategoryInput) (model.Category, error) {
	if err := requirePerm(p, model.PermChangeCategory); err != nil {
		return model.Category{}, err
	}
	current, err := u.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return model.Category{}, repoError(err, "category not found")
	}
	c, err := normalizeCategory(in)
	if err != nil {
		return model.Category{}, err
	}
	c.ID = current.ID

	if err := u.categoryRepo.Update(ctx, c); err != nil {
		return model.Category{}, repoError(err, "category not found")
	}
	return c, nil
}

// 配下の商品も消える
func (u *CategoryUsecase) Delete(ctx context.Context, p Principal, slug string) error {
	if err := requirePerm(p, model.PermDeleteCategory); err != nil {
		return err
	}
	current, err := u.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return repoError(err, "category not found")
	}
	if err := u.categoryRepo.DeleteByID(ctx, current.ID); err != nil {
		return repoError(err, "category not found")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  p.UserID,
		Action:       model.AuditActionDeleteCategory,
		ResourceType: model.AuditResourceCategory,
		ResourceID:   current.ID,
		BeforeJSON:   toJSON(map[string]interface{}{"name": current.Name, "slug": current.Slug}),
		CreatedAt:    time.Now(),
	}); err != nil {
		return repoError(err, "not found")
	}
	return nil
}

func normalizeCategory(in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.TrimSpace(in.Slug)
	if name == "" || slug == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name and slug required")
	}
	return model.Category{Name: name, Slug: slug}, nil
}
