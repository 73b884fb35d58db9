package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// コミット後の注文イベント送信先。ctxの期限内に戻ること
type OrderEventPublisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
}

type OrderOptions struct {
	// 変換トランザクション全体の上限
	Timeout         time.Duration
	DefaultStatusID int64
	// trueなら変換したwishlist行を削除する
	ConsumeOnOrder bool
	// コミット後のイベント送信1件あたりの上限。0ならdefaultPublishTimeout
	PublishTimeout time.Duration
}

const defaultPublishTimeout = time.Second

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	users     repo.UserRepository
	auditRepo repo.AuditLogRepository
	policy    StatusPolicy
	publisher OrderEventPublisher
	logger    *zap.Logger
	opts      OrderOptions
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	users repo.UserRepository,
	auditRepo repo.AuditLogRepository,
	policy StatusPolicy,
	publisher OrderEventPublisher,
	logger *zap.Logger,
	opts OrderOptions,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		users:     users,
		auditRepo: auditRepo,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
	}
}

type OrderItemOutput struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Cost      string `json:"cost"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	StatusID  int64             `json:"status_id"`
	Status    string            `json:"status"`
	Total     string            `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemOutput `json:"items"`
}

// wishlistの行を1件の注文に変換する。
// 全ステップを1トランザクションで行い、途中で失敗すれば注文も明細も残らない。
func (u *OrderUsecase) CreateOrder(ctx context.Context, p Principal, wishlistIDs []int64) (OrderOutput, error) {
	if !p.Authenticated() {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(wishlistIDs) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "wishlist ids required")
	}
	for _, id := range wishlistIDs {
		if id <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid wishlist id")
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, u.opts.Timeout)
	defer cancel()

	var (
		created model.Order
		items   []model.OrderItem
	)

	err := u.tx.WithinTx(txCtx, func(r repo.TxRepos) error {
		status, err := r.Statuses().FindByID(txCtx, u.opts.DefaultStatusID)
		if err != nil {
			return repoError(err, "default status not found")
		}

		// 重複を除いたidをまとめて昇順でロックする
		lockIDs := distinctSorted(wishlistIDs)
		rows, err := r.Wishlists().FindByIDsForUpdate(txCtx, lockIDs)
		if err != nil {
			return repoError(err, "wishlist not found")
		}
		locked := make(map[int64]model.Wishlist, len(rows))
		for _, w := range rows {
			locked[w.ID] = w
		}
		for _, id := range lockIDs {
			if _, ok := locked[id]; !ok {
				return NewHTTPError(http.StatusNotFound, "wishlist not found")
			}
		}

		// 先頭の行の持ち主が注文のユーザー
		owner := locked[wishlistIDs[0]].UserID
		if err := requireOwnerOr(p, owner, model.PermAddOrder); err != nil {
			return err
		}
		for _, w := range rows {
			if w.UserID != owner {
				return NewHTTPError(http.StatusBadRequest, "wishlist entries belong to different users")
			}
		}

		order, err := r.Orders().Create(txCtx, model.Order{
			UserID:   owner,
			StatusID: status.ID,
			Total:    decimal.Zero,
		})
		if err != nil {
			return repoError(err, "user not found")
		}

		running := decimal.Zero
		items = make([]model.OrderItem, 0, len(wishlistIDs))

		// 明細は入力順。同じIDが複数回来たらその回数だけ作る
		for _, id := range wishlistIDs {
			w := locked[id]

			product, err := r.Products().FindByID(txCtx, w.ProductID)
			if err != nil {
				return repoError(err, "product not found")
			}

			cost := product.Price.Mul(decimal.NewFromInt(w.Quantity))
			// cost・totalはnumeric(10,2)
			if running.Add(cost).GreaterThanOrEqual(maxAmount) {
				return NewHTTPError(http.StatusBadRequest, "order total too large")
			}
			item, err := r.OrderItems().Create(txCtx, model.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Cost:      cost,
				Quantity:  w.Quantity,
			})
			if err != nil {
				return repoError(err, "product not found")
			}
			items = append(items, item)
			running = running.Add(cost)
		}

		// 集計値と積み上げた合計が一致しなければロールバック
		sum, err := r.OrderItems().SumCostByOrderID(txCtx, order.ID)
		if err != nil {
			return repoError(err, "order not found")
		}
		if !sum.Equal(running) {
			u.logger.Error("order total mismatch",
				zap.Int64("order_id", order.ID),
				zap.String("aggregate", sum.String()),
				zap.String("running", running.String()))
			return NewHTTPError(http.StatusInternalServerError, "order total mismatch")
		}
		if err := r.Orders().UpdateTotal(txCtx, order.ID, sum); err != nil {
			return repoError(err, "order not found")
		}

		if u.opts.ConsumeOnOrder {
			for _, id := range lockIDs {
				if err := r.Wishlists().DeleteByID(txCtx, id); err != nil {
					return repoError(err, "wishlist not found")
				}
			}
		}

		order.Total = sum
		order.Status = status
		created = order
		return nil
	})
	if err != nil {
		u.logger.Warn("order conversion rolled back",
			zap.Int64s("wishlist_ids", wishlistIDs),
			zap.Int64("principal", p.UserID),
			zap.Error(err))
		return OrderOutput{}, repoError(err, "not found")
	}

	u.logger.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Int64("user_id", created.UserID),
		zap.String("total", created.Total.StringFixed(2)),
		zap.Int("items", len(items)))

	u.publish(ctx, model.OrderEvent{
		Type:      model.OrderEventCreated,
		OrderID:   created.ID,
		UserID:    created.UserID,
		Status:    created.Status.Name,
		Total:     created.Total,
		ItemCount: len(items),
	})

	return toOrderOutput(created, items), nil
}

// 全注文（作成日時順）
func (u *OrderUsecase) ListOrders(ctx context.Context, p Principal) ([]OrderOutput, error) {
	if err := requirePerm(p, model.PermViewOrder); err != nil {
		return []OrderOutput{}, err
	}

	orders, err := u.orders.List(ctx)
	if err != nil {
		return []OrderOutput{}, repoError(err, "not found")
	}
	return toOrderOutputs(orders), nil
}

func (u *OrderUsecase) ListUserOrders(ctx context.Context, p Principal, userID int64) ([]OrderOutput, error) {
	if err := requireOwnerOr(p, userID, model.PermViewOrder); err != nil {
		return []OrderOutput{}, err
	}
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return []OrderOutput{}, repoError(err, "user not found")
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return []OrderOutput{}, repoError(err, "not found")
	}
	return toOrderOutputs(orders), nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, p Principal, orderID int64) (OrderOutput, error) {
	o, err := u.visibleOrder(ctx, p, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(o, o.Items), nil
}

// 注文のステータス変更履歴（新しい順）
func (u *OrderUsecase) History(ctx context.Context, p Principal, orderID int64) ([]model.AuditLog, error) {
	if _, err := u.visibleOrder(ctx, p, orderID); err != nil {
		return []model.AuditLog{}, err
	}

	rt := model.AuditResourceOrder
	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{
		ResourceType: &rt,
		ResourceID:   &orderID,
		Limit:        200,
	})
	if err != nil {
		return []model.AuditLog{}, repoError(err, "not found")
	}
	return logs, nil
}

// 他人の注文は「存在しない扱い」にする
func (u *OrderUsecase) visibleOrder(ctx context.Context, p Principal, orderID int64) (model.Order, error) {
	if !p.Authenticated() {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, repoError(err, "order not found")
	}
	if !p.CanActFor(o.UserID, model.PermViewOrder) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	return o, nil
}

func (u *OrderUsecase) DeleteOrder(ctx context.Context, p Principal, orderID int64) error {
	if err := requirePerm(p, model.PermDeleteOrder); err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return repoError(err, "order not found")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return repoError(err, "order not found")
		}

		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  p.UserID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON: toJSON(map[string]interface{}{
				"user_id":   o.UserID,
				"status_id": o.StatusID,
				"total":     o.Total.StringFixed(2),
			}),
			CreatedAt: time.Now(),
		})
	})
}

// 注文のステータスを変える。遷移の可否はStatusPolicyに任せる。
func (u *OrderUsecase) ChangeStatus(ctx context.Context, p Principal, orderID int64, statusID int64) (OrderOutput, error) {
	if err := requirePerm(p, model.PermChangeOrder); err != nil {
		return OrderOutput{}, err
	}
	if orderID <= 0 || statusID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var (
		from    model.Status
		to      model.Status
		changed bool
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return repoError(err, "order not found")
		}
		to, err = r.Statuses().FindByID(ctx, statusID)
		if err != nil {
			return repoError(err, "status not found")
		}
		from, err = r.Statuses().FindByID(ctx, o.StatusID)
		if err != nil {
			return repoError(err, "status not found")
		}

		// すでに同じなら何もしない（200）
		if from.ID == to.ID {
			return nil
		}
		if !u.policy.Allow(from, to) {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot change status from %s to %s", from.Name, to.Name))
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, to.ID); err != nil {
			return repoError(err, "order not found")
		}

		// 監査ログ（UPDATE_ORDER_STATUS）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  p.UserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   toJSON(map[string]interface{}{"status": from.Name}),
			AfterJSON:    toJSON(map[string]interface{}{"status": to.Name}),
			CreatedAt:    time.Now(),
		}); err != nil {
			return repoError(err, "not found")
		}
		changed = true
		return nil
	})
	if err != nil {
		return OrderOutput{}, repoError(err, "not found")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, repoError(err, "order not found")
	}

	if changed {
		u.logger.Info("order status changed",
			zap.Int64("order_id", orderID),
			zap.String("from", from.Name),
			zap.String("to", to.Name),
			zap.Int64("actor", p.UserID))

		u.publish(ctx, model.OrderEvent{
			Type:       model.OrderEventStatusChanged,
			OrderID:    o.ID,
			UserID:     o.UserID,
			Status:     to.Name,
			PrevStatus: from.Name,
			Total:      o.Total,
			ItemCount:  len(o.Items),
		})
	}

	return toOrderOutput(o, o.Items), nil
}

// 送信失敗はログだけ残してリクエストは成功させる
func (u *OrderUsecase) publish(ctx context.Context, ev model.OrderEvent) {
	if u.publisher == nil {
		return
	}
	ev.EventID = uuid.NewString()
	ev.OccurredAt = time.Now().UTC()

	timeout := u.opts.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	// 注文は確定済み。リクエストのキャンセルは引き継がず、短い期限だけ付ける
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := u.publisher.Publish(pctx, ev); err != nil {
		u.logger.Warn("order event publish failed",
			zap.String("type", string(ev.Type)),
			zap.Int64("order_id", ev.OrderID),
			zap.Error(err))
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Cost:      it.Cost.StringFixed(2),
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		StatusID:  o.StatusID,
		Status:    o.Status.Name,
		Total:     o.Total.StringFixed(2),
		CreatedAt: o.CreatedAt,
		Items:     outItems,
	}
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o, o.Items))
	}
	return outs
}

func toJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// 重複を除いて昇順に並べる
func distinctSorted(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
