package repository

import (
	"context"
	"database/sql"
	"teamshop/internal/model"
	"time"

	"github.com/jmoiron/sqlx"
)

// OrderRepository 订单存储库
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository 创建订单存储库
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder 创建订单
func (r *OrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (
			order_no, plan_id, plan_name, validity_days, email,
			amount, discount_amount, final_amount, coupon_code,
			pay_type, status, expire_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		order.OrderNo,
		order.PlanID,
		order.PlanName,
		order.ValidityDays,
		order.Email,
		order.Amount,
		order.DiscountAmount,
		order.FinalAmount,
		order.CouponCode,
		order.PayType,
		order.Status,
		order.ExpireAt,
	)
	return err
}

// GetOrderByOrderNo 根据订单号获取订单
func (r *OrderRepository) GetOrderByOrderNo(ctx context.Context, orderNo string) (*model.Order, error) {
	var order model.Order
	query := `SELECT * FROM orders WHERE order_no = ?`
	err := r.db.GetContext(ctx, &order, query, orderNo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &order, err
}

// GetOrdersByEmail 获取买家的历史订单
func (r *OrderRepository) GetOrdersByEmail(ctx context.Context, email string, page, pageSize int) ([]model.Order, int, error) {
	countQuery := `SELECT COUNT(*) FROM orders WHERE email = ?`
	var total int
	err := r.db.GetContext(ctx, &total, countQuery, email)
	if err != nil {
		return nil, 0, err
	}

	if total == 0 {
		return []model.Order{}, 0, nil
	}

	offset := (page - 1) * pageSize
	var orders []model.Order
	query := `SELECT * FROM orders WHERE email = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
	err = r.db.SelectContext(ctx, &orders, query, email, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// GetPendingOrder 获取同套餐同邮箱同支付方式的未过期待支付订单
// 用于吸收客户端的重复提交，换支付方式视为新请求
func (r *OrderRepository) GetPendingOrder(ctx context.Context, planID uint64, email, payType string, now time.Time) (*model.Order, error) {
	var order model.Order
	query := `
		SELECT * FROM orders
		WHERE plan_id = ? AND email = ? AND pay_type = ? AND status = ? AND expire_at > ?
		ORDER BY created_at DESC LIMIT 1
	`
	err := r.db.GetContext(ctx, &order, query, planID, email, payType, model.OrderStatusPending, now)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &order, err
}

// MarkOrderPaid 将订单置为已支付并写入兑换码
// 条件更新保证同一订单只会成功转移一次，重复回调不会二次发货
func (r *OrderRepository) MarkOrderPaid(ctx context.Context, orderNo, tradeNo, redeemCode string) (bool, error) {
	query := `
		UPDATE orders
		SET status = ?, trade_no = ?, redeem_code = ?, paid_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE order_no = ? AND status = ?
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		model.OrderStatusPaid,
		sql.NullString{String: tradeNo, Valid: tradeNo != ""},
		redeemCode,
		time.Now(),
		orderNo,
		model.OrderStatusPending,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ExpireOverdueOrders 将超时未支付的订单置为已过期
func (r *OrderRepository) ExpireOverdueOrders(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE orders
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE status = ? AND expire_at <= ?
	`
	result, err := r.db.ExecContext(ctx, query, model.OrderStatusExpired, model.OrderStatusPending, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// GetPendingOrders 获取所有未过期的待支付订单
func (r *OrderRepository) GetPendingOrders(ctx context.Context, now time.Time) ([]model.Order, error) {
	var orders []model.Order
	query := `SELECT * FROM orders WHERE status = ? AND expire_at > ?`
	err := r.db.SelectContext(ctx, &orders, query, model.OrderStatusPending, now)
	return orders, err
}
