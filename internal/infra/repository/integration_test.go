//go:build integration

package repository_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"ninjashop/internal/domain/model"
	"ninjashop/internal/infra/db"
	infraRepo "ninjashop/internal/infra/repository"
	repo "ninjashop/internal/repository"
	"ninjashop/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// テストごとにコンテナを立ててmigrate + seedまで済ませる
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ninjashop"),
		postgres.WithUsername("shop"),
		postgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gdb, err := gorm.Open(gormpg.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))
	require.NoError(t, db.Seed(ctx, gdb))
	return gdb
}

type fixture struct {
	db         *gorm.DB
	categories *infraRepo.CategoryGormRepository
	products   *infraRepo.ProductGormRepository
	wishlists  *infraRepo.WishlistGormRepository
	orders     *infraRepo.OrderGormRepository
	users      repo.UserRepository
	orderUC    *usecase.OrderUsecase
}

func newFixture(t *testing.T, consume bool) *fixture {
	gdb := setupDB(t)
	f := &fixture{
		db:         gdb,
		categories: infraRepo.NewCategoryGormRepository(gdb),
		products:   infraRepo.NewProductGormRepository(gdb),
		wishlists:  infraRepo.NewWishlistGormRepository(gdb),
		orders:     infraRepo.NewOrderGormRepository(gdb),
		users:      infraRepo.NewUserGormRepository(gdb),
	}
	f.orderUC = usecase.NewOrderUsecase(
		infraRepo.NewTxManagerGorm(gdb),
		f.orders,
		f.users,
		infraRepo.NewAuditLogGormRepository(gdb),
		usecase.OpenStatusPolicy{},
		nil,
		zap.NewNop(),
		usecase.OrderOptions{Timeout: 5 * time.Second, DefaultStatusID: 1, ConsumeOnOrder: consume},
	)
	return f
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	u := &model.User{Username: name, PasswordHash: "x", IsActive: true}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) product(t *testing.T, c model.Category, name, price string) model.Product {
	p, err := f.products.Create(context.Background(), model.Product{
		CategoryID: c.ID,
		Name:       name,
		Slug:       name,
		Price:      decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) category(t *testing.T, slug string) model.Category {
	c, err := f.categories.Create(context.Background(), model.Category{Name: slug, Slug: slug})
	require.NoError(t, err)
	return c
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func TestIntegration_CreateOrder(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	alice := f.user(t, "alice")
	books := f.category(t, "books")
	a := f.product(t, books, "a", "100.00")
	b := f.product(t, books, "b", "50.00")

	wa, err := f.wishlists.Upsert(ctx, alice.ID, a.ID, 2)
	require.NoError(t, err)
	wb, err := f.wishlists.Upsert(ctx, alice.ID, b.ID, 1)
	require.NoError(t, err)

	p := usecase.NewPrincipal(*alice, "s", nil)
	out, err := f.orderUC.CreateOrder(ctx, p, []int64{wa.ID, wb.ID})
	require.NoError(t, err)
	assert.Equal(t, "250.00", out.Total)
	assert.Equal(t, model.StatusNew, out.Status)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "200.00", out.Items[0].Cost)
	assert.Equal(t, "50.00", out.Items[1].Cost)

	stored, err := f.orders.FindByID(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("250")))

	// consume_on_order=false なのでwishlistは残る
	assert.Equal(t, int64(2), f.count(t, &model.Wishlist{}))
}

func TestIntegration_CreateOrderRollsBack(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	alice := f.user(t, "alice")
	a := f.product(t, f.category(t, "books"), "a", "10.00")
	w, err := f.wishlists.Upsert(ctx, alice.ID, a.ID, 1)
	require.NoError(t, err)

	_, err = f.orderUC.CreateOrder(ctx, usecase.NewPrincipal(*alice, "s", nil), []int64{w.ID, 999999})
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, http.StatusNotFound, he.Status)

	assert.Zero(t, f.count(t, &model.Order{}))
	assert.Zero(t, f.count(t, &model.OrderItem{}))
}

func TestIntegration_ConcurrentConversionConsumesOnce(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	alice := f.user(t, "alice")
	a := f.product(t, f.category(t, "books"), "a", "10.00")
	w, err := f.wishlists.Upsert(ctx, alice.ID, a.ID, 3)
	require.NoError(t, err)

	p := usecase.NewPrincipal(*alice, "s", nil)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.orderUC.CreateOrder(ctx, p, []int64{w.ID})
		}(i)
	}
	wg.Wait()

	var ok, notFound int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		if he, isHTTP := usecase.AsHTTPError(err); isHTTP && he.Status == http.StatusNotFound {
			notFound++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, notFound)
	assert.Equal(t, int64(1), f.count(t, &model.Order{}))
	assert.Zero(t, f.count(t, &model.Wishlist{}))
}

func TestIntegration_ConvertTwiceKeepsSnapshot(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	alice := f.user(t, "alice")
	a := f.product(t, f.category(t, "books"), "a", "100.00")
	w, err := f.wishlists.Upsert(ctx, alice.ID, a.ID, 2)
	require.NoError(t, err)

	p := usecase.NewPrincipal(*alice, "s", nil)
	first, err := f.orderUC.CreateOrder(ctx, p, []int64{w.ID})
	require.NoError(t, err)
	second, err := f.orderUC.CreateOrder(ctx, p, []int64{w.ID})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	assert.Equal(t, int64(2), f.count(t, &model.Order{}))
	assert.Equal(t, int64(2), f.count(t, &model.OrderItem{}))
	assert.Equal(t, int64(1), f.count(t, &model.Wishlist{}))

	// 商品価格を変えても確定済みの注文は変わらない
	a.Price = decimal.RequireFromString("150.00")
	require.NoError(t, f.products.Update(ctx, a))

	stored, err := f.orders.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("200")), stored.Total.String())
	require.Len(t, stored.Items, 1)
	assert.True(t, stored.Items[0].Cost.Equal(decimal.RequireFromString("200")), stored.Items[0].Cost.String())

	// 価格変更後の変換は新しい価格
	third, err := f.orderUC.CreateOrder(ctx, p, []int64{w.ID})
	require.NoError(t, err)
	assert.Equal(t, "300.00", third.Total)
}

func TestIntegration_ReversedLockOrderDoesNotDeadlock(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	alice := f.user(t, "alice")
	books := f.category(t, "books")
	wa, err := f.wishlists.Upsert(ctx, alice.ID, f.product(t, books, "a", "10.00").ID, 1)
	require.NoError(t, err)
	wb, err := f.wishlists.Upsert(ctx, alice.ID, f.product(t, books, "b", "20.00").ID, 1)
	require.NoError(t, err)

	p := usecase.NewPrincipal(*alice, "s", nil)
	orders := [][]int64{{wa.ID, wb.ID}, {wb.ID, wa.ID}}

	const rounds = 10
	errs := make([]error, 0, rounds*len(orders))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i := 0; i < rounds; i++ {
		for _, ids := range orders {
			wg.Add(1)
			go func(ids []int64) {
				defer wg.Done()
				_, err := f.orderUC.CreateOrder(ctx, p, ids)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}(ids)
		}
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(rounds*len(orders)), f.count(t, &model.Order{}))
	assert.Equal(t, int64(rounds*len(orders)*2), f.count(t, &model.OrderItem{}))
}

func TestIntegration_FindByIDsForUpdate(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	alice := f.user(t, "alice")
	books := f.category(t, "books")
	wa, err := f.wishlists.Upsert(ctx, alice.ID, f.product(t, books, "a", "1.00").ID, 1)
	require.NoError(t, err)
	wb, err := f.wishlists.Upsert(ctx, alice.ID, f.product(t, books, "b", "1.00").ID, 1)
	require.NoError(t, err)

	rows, err := f.wishlists.FindByIDsForUpdate(ctx, []int64{wb.ID, 999999, wa.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, wa.ID, rows[0].ID)
	assert.Equal(t, wb.ID, rows[1].ID)

	rows, err = f.wishlists.FindByIDsForUpdate(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestIntegration_OrderTotalOverflowIs400(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	alice := f.user(t, "alice")
	a := f.product(t, f.category(t, "books"), "a", "99999999.99")
	w, err := f.wishlists.Upsert(ctx, alice.ID, a.ID, 2)
	require.NoError(t, err)

	_, err = f.orderUC.CreateOrder(ctx, usecase.NewPrincipal(*alice, "s", nil), []int64{w.ID})
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Zero(t, f.count(t, &model.Order{}))
}

func TestIntegration_Constraints(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	f.category(t, "books")
	_, err := f.categories.Create(ctx, model.Category{Name: "dup", Slug: "books"})
	assert.True(t, errors.Is(err, repo.ErrConflict), "%v", err)

	alice := f.user(t, "alice")
	err = f.users.Create(ctx, &model.User{Username: "alice", PasswordHash: "x"})
	assert.True(t, errors.Is(err, repo.ErrConflict), "%v", err)

	// (user, product)の重複は上書き
	a := f.product(t, f.category(t, "toys"), "a", "1.00")
	first, err := f.wishlists.Upsert(ctx, alice.ID, a.ID, 1)
	require.NoError(t, err)
	second, err := f.wishlists.Upsert(ctx, alice.ID, a.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Quantity)

	// 存在しない商品はFK違反でNotFound
	_, err = f.wishlists.Upsert(ctx, alice.ID, 999999, 1)
	assert.True(t, errors.Is(err, repo.ErrNotFound), "%v", err)
}

func TestIntegration_CascadeDelete(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	alice := f.user(t, "alice")
	books := f.category(t, "books")
	a := f.product(t, books, "a", "3.00")
	w, err := f.wishlists.Upsert(ctx, alice.ID, a.ID, 1)
	require.NoError(t, err)
	_, err = f.orderUC.CreateOrder(ctx, usecase.NewPrincipal(*alice, "s", nil), []int64{w.ID})
	require.NoError(t, err)

	require.NoError(t, f.categories.DeleteByID(ctx, books.ID))

	assert.Zero(t, f.count(t, &model.Product{}))
	assert.Zero(t, f.count(t, &model.Wishlist{}))
	assert.Zero(t, f.count(t, &model.OrderItem{}))
	// 注文自体は商品に依存しない
	assert.Equal(t, int64(1), f.count(t, &model.Order{}))
}

func TestIntegration_ProductSearch(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	books := f.category(t, "books")
	f.product(t, books, "Go Programming", "30.00")
	f.product(t, books, "Rust", "10.00")
	f.product(t, f.category(t, "toys"), "gopher plush", "20.00")

	got, err := f.products.List(ctx, repo.ProductListQuery{Search: "GO"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = f.products.List(ctx, repo.ProductListQuery{CategoryID: &books.ID, Sort: repo.SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Rust", got[0].Name)

	got, err = f.products.List(ctx, repo.ProductListQuery{Sort: repo.SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Go Programming", got[0].Name)
}
