package repomock

import (
	"context"

	repo "ninjashop/internal/repository"

	"github.com/stretchr/testify/mock"
)

// WithinTx の中で渡す repos を固定して unit テストを回す。
// fnのエラーはそのまま返す（ロールバック扱い）。
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxRepos struct {
	OrderRepo     repo.OrderRepository
	OrderItemRepo repo.OrderItemRepository
	WishlistRepo  repo.WishlistRepository
	ProductRepo   repo.ProductRepository
	StatusRepo    repo.StatusRepository
	AuditLogRepo  repo.AuditLogRepository
}

func (r *TxRepos) Orders() repo.OrderRepository         { return r.OrderRepo }
func (r *TxRepos) OrderItems() repo.OrderItemRepository { return r.OrderItemRepo }
func (r *TxRepos) Wishlists() repo.WishlistRepository   { return r.WishlistRepo }
func (r *TxRepos) Products() repo.ProductRepository     { return r.ProductRepo }
func (r *TxRepos) Statuses() repo.StatusRepository      { return r.StatusRepo }
func (r *TxRepos) AuditLogs() repo.AuditLogRepository   { return r.AuditLogRepo }
