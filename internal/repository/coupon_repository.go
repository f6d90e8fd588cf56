package repository

import (
	"context"
	"database/sql"
	"strings"
	"teamshop/internal/model"

	"github.com/jmoiron/sqlx"
)

// CouponRepository 优惠券存储库
type CouponRepository struct {
	db *sqlx.DB
}

// NewCouponRepository 创建优惠券存储库
func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// GetByCode 根据优惠码获取优惠券，匹配不区分大小写
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	query := `SELECT * FROM coupons WHERE code = ?`
	err := r.db.GetContext(ctx, &coupon, query, strings.ToUpper(code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &coupon, err
}

// ListCoupons 分页获取优惠券列表
func (r *CouponRepository) ListCoupons(ctx context.Context, page, pageSize int) ([]model.Coupon, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM coupons`); err != nil {
		return nil, 0, err
	}

	if total == 0 {
		return []model.Coupon{}, 0, nil
	}

	offset := (page - 1) * pageSize
	var coupons []model.Coupon
	query := `SELECT * FROM coupons ORDER BY id DESC LIMIT ? OFFSET ?`
	err := r.db.SelectContext(ctx, &coupons, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}

// CreateCoupon 创建优惠券
func (r *CouponRepository) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (
			code, discount_type, discount_value, min_amount, max_discount,
			max_uses, used_count, valid_from, valid_until, plan_ids, is_active
		) VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		strings.ToUpper(coupon.Code),
		coupon.DiscountType,
		coupon.DiscountValue,
		coupon.MinAmount,
		coupon.MaxDiscount,
		coupon.MaxUses,
		coupon.ValidFrom,
		coupon.ValidUntil,
		coupon.PlanIDs,
		coupon.IsActive,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err == nil {
		coupon.ID = uint64(id)
	}
	return nil
}

// UpdateCoupon 更新优惠券
func (r *CouponRepository) UpdateCoupon(ctx context.Context, coupon *model.Coupon) error {
	query := `
		UPDATE coupons
		SET discount_type = ?, discount_value = ?, min_amount = ?, max_discount = ?,
			max_uses = ?, valid_from = ?, valid_until = ?, plan_ids = ?, is_active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		coupon.DiscountType,
		coupon.DiscountValue,
		coupon.MinAmount,
		coupon.MaxDiscount,
		coupon.MaxUses,
		coupon.ValidFrom,
		coupon.ValidUntil,
		coupon.PlanIDs,
		coupon.IsActive,
		coupon.ID,
	)
	return err
}

// IncrementUsage 核销一次优惠券
// 条件更新保证 used_count 不会超过 max_uses
func (r *CouponRepository) IncrementUsage(ctx context.Context, code string) (bool, error) {
	query := `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = CURRENT_TIMESTAMP
		WHERE code = ? AND (max_uses = 0 OR used_count < max_uses)
	`
	result, err := r.db.ExecContext(ctx, query, strings.ToUpper(code))
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SetCouponActive 启用/停用优惠券
func (r *CouponRepository) SetCouponActive(ctx context.Context, id uint64, active bool) error {
	query := `UPDATE coupons SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, active, id)
	return err
}
