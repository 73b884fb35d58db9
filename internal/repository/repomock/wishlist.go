package repomock

import (
	"context"

	"ninjashop/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type WishlistRepoMock struct{ mock.Mock }

func (m *WishlistRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Wishlist, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Wishlist)
	return list, args.Error(1)
}

func (m *WishlistRepoMock) FindByID(ctx context.Context, id int64) (model.Wishlist, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(model.Wishlist)
	return w, args.Error(1)
}

func (m *WishlistRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.Wishlist, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(model.Wishlist)
	return w, args.Error(1)
}

func (m *WishlistRepoMock) FindByIDsForUpdate(ctx context.Context, ids []int64) ([]model.Wishlist, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]model.Wishlist)
	return list, args.Error(1)
}

func (m *WishlistRepoMock) Upsert(ctx context.Context, userID int64, productID int64, quantity int64) (model.Wishlist, error) {
	args := m.Called(ctx, userID, productID, quantity)
	w, _ := args.Get(0).(model.Wishlist)
	return w, args.Error(1)
}

func (m *WishlistRepoMock) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *WishlistRepoMock) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
