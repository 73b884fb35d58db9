package usecase

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"
	"ninjashop/internal/repository/repomock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreate(t *testing.T) {
	categories := new(repomock.CategoryRepoMock)
	uc := NewCategoryUsecase(categories, new(repomock.AuditLogRepoMock))

	categories.On("Create", mock.Anything, model.Category{Name: "Books", Slug: "books"}).
		Return(model.Category{ID: 1, Name: "Books", Slug: "books"}, nil).Once()
	categories.On("Create", mock.Anything, model.Category{Name: "Books", Slug: "books"}).
		Return(nil, fmt.Errorf("%w: idx_categories_slug", repo.ErrConflict))

	admin := principal(1, model.PermAddCategory)

	c, err := uc.Create(context.Background(), admin, CategoryInput{Name: " Books ", Slug: "books"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)

	_, err = uc.Create(context.Background(), admin, CategoryInput{Name: "Books", Slug: "books"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.Create(context.Background(), principal(2), CategoryInput{Name: "X", Slug: "x"})
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestCategoryDelete(t *testing.T) {
	categories := new(repomock.CategoryRepoMock)
	audit := new(repomock.AuditLogRepoMock)
	uc := NewCategoryUsecase(categories, audit)

	categories.On("FindBySlug", mock.Anything, "books").Return(model.Category{ID: 3, Name: "Books", Slug: "books"}, nil)
	categories.On("FindBySlug", mock.Anything, "nope").Return(nil, repo.ErrNotFound)
	categories.On("DeleteByID", mock.Anything, int64(3)).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteCategory && l.ResourceID == 3
	})).Return(nil)

	admin := principal(1, model.PermDeleteCategory)
	require.NoError(t, uc.Delete(context.Background(), admin, "books"))

	err := uc.Delete(context.Background(), admin, "nope")
	assertHTTPStatus(t, err, http.StatusNotFound)
	audit.AssertNumberOfCalls(t, "Create", 1)
}

func TestCategoryUpdate(t *testing.T) {
	categories := new(repomock.CategoryRepoMock)
	uc := NewCategoryUsecase(categories, new(repomock.AuditLogRepoMock))

	categories.On("FindBySlug", mock.Anything, "books").Return(model.Category{ID: 3, Name: "Books", Slug: "books"}, nil)
	categories.On("Update", mock.Anything, model.Category{ID: 3, Name: "Novels", Slug: "novels"}).Return(nil)

	c, err := uc.Update(context.Background(), principal(1, model.PermChangeCategory), "books", CategoryInput{Name: "Novels", Slug: "novels"})
	require.NoError(t, err)
	assert.Equal(t, "novels", c.Slug)
}

func TestStatusUsecase(t *testing.T) {
	statuses := new(repomock.StatusRepoMock)
	uc := NewStatusUsecase(statuses)

	statuses.On("Create", mock.Anything, model.Status{Name: "returned"}).Return(model.Status{ID: 6, Name: "returned"}, nil)
	statuses.On("Delete", mock.Anything, int64(6)).Return(nil)
	statuses.On("Delete", mock.Anything, int64(99)).Return(repo.ErrNotFound)

	s, err := uc.Create(context.Background(), principal(1, model.PermAddStatus), StatusInput{Name: "returned"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), s.ID)

	_, err = uc.Create(context.Background(), principal(2), StatusInput{Name: "x"})
	assertHTTPStatus(t, err, http.StatusForbidden)

	require.NoError(t, uc.Delete(context.Background(), principal(1, model.PermDeleteStatus), 6))
	assertHTTPStatus(t, uc.Delete(context.Background(), principal(1, model.PermDeleteStatus), 99), http.StatusNotFound)
}
