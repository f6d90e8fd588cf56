package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"teamshop/internal/constants"
	"teamshop/internal/model"
	"teamshop/internal/repository"
	"teamshop/internal/types"
	"teamshop/pkg/logger"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo *repository.CouponRepository
	logger     *logger.Logger
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo *repository.CouponRepository, logger *logger.Logger) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

// ComputeDiscount 计算优惠金额
// 固定金额不超过订单金额；百分比按 max_discount 封顶（0表示不封顶）
func ComputeDiscount(coupon *model.Coupon, amount int64) int64 {
	var discount int64
	switch coupon.DiscountType {
	case model.DiscountTypeFixed:
		discount = coupon.DiscountValue
	case model.DiscountTypePercentage:
		discount = amount * coupon.DiscountValue / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	default:
		return 0
	}

	if discount > amount {
		discount = amount
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// ValidateCoupon 校验优惠券在指定套餐与金额下是否可用
// 返回拒绝原因，空字符串表示可用
func ValidateCoupon(coupon *model.Coupon, planID uint64, amount int64, now time.Time) string {
	if !coupon.IsActive {
		return constants.ErrCouponInactive
	}
	if coupon.ValidFrom.Valid && now.Before(coupon.ValidFrom.Time) {
		return constants.ErrCouponExpired
	}
	if coupon.ValidUntil.Valid && now.After(coupon.ValidUntil.Time) {
		return constants.ErrCouponExpired
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return constants.ErrCouponExhausted
	}
	if amount < coupon.MinAmount {
		return constants.ErrCouponMinAmount
	}
	if !couponAppliesToPlan(coupon, planID) {
		return constants.ErrCouponPlanScope
	}
	return ""
}

// couponAppliesToPlan 优惠券是否适用于指定套餐，适用集合为空表示全部适用
func couponAppliesToPlan(coupon *model.Coupon, planID uint64) bool {
	if !coupon.PlanIDs.Valid || strings.TrimSpace(coupon.PlanIDs.String) == "" {
		return true
	}
	for _, part := range strings.Split(coupon.PlanIDs.String, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		if id == planID {
			return true
		}
	}
	return false
}

// Check 校验优惠码并计算折扣
// 业务性拒绝通过 valid=false 返回，不作为错误处理
func (s *CouponService) Check(ctx context.Context, code string, planID uint64, amount int64) (*types.CouponCheckResult, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error("查询优惠码失败", "code", code, "error", err)
		return nil, err
	}
	if coupon == nil {
		return &types.CouponCheckResult{
			Valid:       false,
			FinalAmount: amount,
			Message:     constants.ErrCouponNotFound,
		}, nil
	}

	if msg := ValidateCoupon(coupon, planID, amount, time.Now()); msg != "" {
		return &types.CouponCheckResult{
			Valid:       false,
			FinalAmount: amount,
			Message:     msg,
		}, nil
	}

	discount := ComputeDiscount(coupon, amount)
	return &types.CouponCheckResult{
		Valid:          true,
		DiscountAmount: discount,
		FinalAmount:    amount - discount,
	}, nil
}

// Redeem 核销一次优惠券
// 条件更新保证并发下 used_count 不会超过 max_uses
func (s *CouponService) Redeem(ctx context.Context, code string) error {
	ok, err := s.couponRepo.IncrementUsage(ctx, code)
	if err != nil {
		return fmt.Errorf("核销优惠码失败: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s: %s", constants.ErrCouponExhausted, code)
	}
	return nil
}

// GetByCode 根据优惠码获取优惠券
func (s *CouponService) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return s.couponRepo.GetByCode(ctx, code)
}

// ListCoupons 分页获取优惠券列表（管理端）
func (s *CouponService) ListCoupons(ctx context.Context, page, pageSize int) ([]model.Coupon, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return s.couponRepo.ListCoupons(ctx, page, pageSize)
}

// CreateCoupon 创建优惠券
func (s *CouponService) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	if coupon.ValidFrom.Valid && coupon.ValidUntil.Valid && coupon.ValidFrom.Time.After(coupon.ValidUntil.Time) {
		return fmt.Errorf("优惠码有效期配置错误: 起始时间晚于结束时间")
	}
	if coupon.DiscountType == model.DiscountTypePercentage &&
		(coupon.DiscountValue < 1 || coupon.DiscountValue > 100) {
		return fmt.Errorf("百分比折扣必须在1-100之间")
	}

	existing, err := s.couponRepo.GetByCode(ctx, coupon.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("优惠码已存在: %s", coupon.Code)
	}

	return s.couponRepo.CreateCoupon(ctx, coupon)
}

// UpdateCoupon 更新优惠券
func (s *CouponService) UpdateCoupon(ctx context.Context, coupon *model.Coupon) error {
	if coupon.ValidFrom.Valid && coupon.ValidUntil.Valid && coupon.ValidFrom.Time.After(coupon.ValidUntil.Time) {
		return fmt.Errorf("优惠码有效期配置错误: 起始时间晚于结束时间")
	}
	return s.couponRepo.UpdateCoupon(ctx, coupon)
}

// SetCouponActive 启用/停用优惠券
func (s *CouponService) SetCouponActive(ctx context.Context, id uint64, active bool) error {
	return s.couponRepo.SetCouponActive(ctx, id, active)
}
