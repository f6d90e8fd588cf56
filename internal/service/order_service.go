package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"teamshop/config"
	"teamshop/internal/constants"
	"teamshop/internal/model"
	"teamshop/internal/repository"
	"teamshop/internal/types"
	"teamshop/pkg/async"
	"teamshop/pkg/email"
	"teamshop/pkg/logger"
	"teamshop/pkg/payment"

	"k8s.io/apimachinery/pkg/util/rand"
)

// 业务错误
var (
	ErrPlanNotFound    = errors.New(constants.ErrPlanNotFound)
	ErrInvalidEmail    = errors.New(constants.ErrInvalidEmail)
	ErrPayTypeInvalid  = errors.New(constants.ErrPayTypeInvalid)
	ErrPayTypeDisabled = errors.New(constants.ErrPayTypeDisabled)
	ErrCouponRejected  = errors.New("优惠码不可用")
	ErrOrderNotFound   = errors.New(constants.ErrOrderNotFound)
)

// emailPattern 邮箱格式校验，与前端保持一致的宽松规则
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail 校验邮箱格式
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// OrderService 订单服务
type OrderService struct {
	orderRepo  *repository.OrderRepository
	planRepo   *repository.PlanRepository
	codeRepo   *repository.RedeemCodeRepository
	couponSvc  *CouponService
	payClient  *payment.Client
	payCfg     config.PaymentConfig
	redeemCfg  config.RedeemConfig
	emailSvc   *email.Service
	worker     *async.Worker
	logger     *logger.Logger
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo *repository.OrderRepository,
	planRepo *repository.PlanRepository,
	codeRepo *repository.RedeemCodeRepository,
	couponSvc *CouponService,
	payClient *payment.Client,
	payCfg config.PaymentConfig,
	redeemCfg config.RedeemConfig,
	emailSvc *email.Service,
	worker *async.Worker,
	logger *logger.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		planRepo:  planRepo,
		codeRepo:  codeRepo,
		couponSvc: couponSvc,
		payClient: payClient,
		payCfg:    payCfg,
		redeemCfg: redeemCfg,
		emailSvc:  emailSvc,
		worker:    worker,
		logger:    logger,
	}
}

// generateOrderNo 生成订单号
func generateOrderNo() string {
	return fmt.Sprintf("TS%s%s", time.Now().Format("20060102150405"), strings.ToUpper(rand.String(6)))
}

// generateRedeemCode 生成兑换码
func generateRedeemCode() string {
	return strings.ToUpper(rand.String(16))
}

// CreateOrder 创建订单
// 同套餐同邮箱存在未过期的待支付订单时直接复用，吸收客户端重复提交
func (s *OrderService) CreateOrder(ctx context.Context, req *types.CreateOrderRequest) (*types.CreateOrderResult, error) {
	if !IsValidEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if req.PayType != model.PayTypeAlipay && req.PayType != model.PayTypeWxpay {
		return nil, ErrPayTypeInvalid
	}
	if !s.isPayTypeEnabled(req.PayType) {
		return nil, ErrPayTypeDisabled
	}

	plan, err := s.planRepo.GetPlanByID(ctx, req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("获取套餐信息失败: %w", err)
	}
	if plan == nil || !plan.IsActive {
		return nil, ErrPlanNotFound
	}

	// 复用已存在的待支付订单；优惠码不一致时按新请求重新计价下单
	pending, err := s.orderRepo.GetPendingOrder(ctx, plan.ID, req.Email, req.PayType, time.Now())
	if err != nil {
		return nil, fmt.Errorf("查询待支付订单失败: %w", err)
	}
	if pending != nil && couponMatches(pending, req.CouponCode) {
		return s.buildOrderResult(pending), nil
	}

	// 服务端重新校验优惠码，不信任前端展示的折扣
	amount := plan.Price
	var discount int64
	var couponCode sql.NullString
	if req.CouponCode != "" {
		check, err := s.couponSvc.Check(ctx, req.CouponCode, plan.ID, amount)
		if err != nil {
			return nil, fmt.Errorf("校验优惠码失败: %w", err)
		}
		if !check.Valid {
			return nil, fmt.Errorf("%w: %s", ErrCouponRejected, check.Message)
		}
		discount = check.DiscountAmount
		couponCode = sql.NullString{String: strings.ToUpper(req.CouponCode), Valid: true}
	}

	order := &model.Order{
		OrderNo:        generateOrderNo(),
		PlanID:         plan.ID,
		PlanName:       plan.Name,
		ValidityDays:   plan.ValidityDays,
		Email:          req.Email,
		Amount:         amount,
		DiscountAmount: discount,
		FinalAmount:    amount - discount,
		CouponCode:     couponCode,
		PayType:        req.PayType,
		Status:         model.OrderStatusPending,
		ExpireAt:       time.Now().Add(time.Duration(s.redeemCfg.OrderExpireMinutes) * time.Minute),
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}

	s.logger.Info("订单已创建",
		"order_no", order.OrderNo,
		"plan_id", order.PlanID,
		"final_amount", order.FinalAmount,
	)

	return s.buildOrderResult(order), nil
}

// couponMatches 待支付订单与新请求的优惠码一致时才允许复用
// 新请求携带不同优惠码（或去掉了优惠码）意味着价格变化，必须重新下单
func couponMatches(pending *model.Order, couponCode string) bool {
	return strings.EqualFold(pending.CouponCode.String, couponCode)
}

// buildOrderResult 组装创建订单响应，附带收银台链接
func (s *OrderService) buildOrderResult(order *model.Order) *types.CreateOrderResult {
	payURL := s.payClient.BuildPayURL(order.OrderNo, order.PayType, order.PlanName, order.FinalAmount)
	return &types.CreateOrderResult{
		OrderNo:        order.OrderNo,
		Amount:         order.Amount,
		DiscountAmount: order.DiscountAmount,
		FinalAmount:    order.FinalAmount,
		PayURL:         payURL,
		ExpireAt:       order.ExpireAt,
	}
}

// isPayTypeEnabled 支付方式是否开放
func (s *OrderService) isPayTypeEnabled(payType string) bool {
	switch payType {
	case model.PayTypeAlipay:
		return s.payCfg.EnableAlipay
	case model.PayTypeWxpay:
		return s.payCfg.EnableWxpay
	default:
		return false
	}
}

// GetOrderByOrderNo 根据订单号获取订单
func (s *OrderService) GetOrderByOrderNo(ctx context.Context, orderNo string) (*model.Order, error) {
	order, err := s.orderRepo.GetOrderByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrdersByEmail 获取买家的历史订单
func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string, page, pageSize int) ([]model.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return s.orderRepo.GetOrdersByEmail(ctx, email, page, pageSize)
}

// HandlePaymentSuccess 处理支付成功
// 条件更新保证重复回调不会二次发货；兑换码在支付转移成功后生成并邮件发货
func (s *OrderService) HandlePaymentSuccess(ctx context.Context, orderNo, tradeNo string) error {
	order, err := s.orderRepo.GetOrderByOrderNo(ctx, orderNo)
	if err != nil {
		return fmt.Errorf("查询订单失败: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}

	// 已处理过的回调直接返回成功
	if order.Status == model.OrderStatusPaid {
		s.logger.Info("忽略重复的支付回调", "order_no", orderNo)
		return nil
	}

	// 生成兑换码
	redeemCode := &model.RedeemCode{
		Code:         generateRedeemCode(),
		ValidityDays: order.ValidityDays,
		MaxUses:      1,
		IsActive:     true,
	}
	if err := s.codeRepo.CreateCode(ctx, redeemCode); err != nil {
		return fmt.Errorf("生成兑换码失败: %w", err)
	}

	ok, err := s.orderRepo.MarkOrderPaid(ctx, orderNo, tradeNo, redeemCode.Code)
	if err != nil {
		return fmt.Errorf("更新订单状态失败: %w", err)
	}
	if !ok {
		// 并发回调竞争失败，订单已被另一次回调处理，停用本次多生成的兑换码
		if err := s.codeRepo.SetCodeActive(ctx, redeemCode.Code, false); err != nil {
			s.logger.Error("回收未发放的兑换码失败", "code", redeemCode.Code, "error", err)
		}
		s.logger.Info("订单状态已被转移，跳过发货", "order_no", orderNo)
		return nil
	}

	// 核销优惠码
	if order.CouponCode.Valid && order.CouponCode.String != "" {
		if err := s.couponSvc.Redeem(ctx, order.CouponCode.String); err != nil {
			// 核销失败不回滚订单，记录后人工对账
			s.logger.Error("核销优惠码失败", "order_no", orderNo, "coupon", order.CouponCode.String, "error", err)
		}
	}

	// 异步发送兑换码邮件
	buyerEmail := order.Email
	planName := order.PlanName
	code := redeemCode.Code
	s.worker.AddRetryTask(fmt.Sprintf("deliver_code_%s", orderNo), 3, func(ctx context.Context) error {
		return s.emailSvc.SendRedeemCode(buyerEmail, code, planName)
	})

	s.logger.Info("订单支付成功", "order_no", orderNo, "trade_no", tradeNo)
	return nil
}

// ExpireOverdueOrders 将超时未支付的订单置为已过期
func (s *OrderService) ExpireOverdueOrders(ctx context.Context) (int64, error) {
	return s.orderRepo.ExpireOverdueOrders(ctx, time.Now())
}

// GetPendingOrders 获取所有未过期的待支付订单
func (s *OrderService) GetPendingOrders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.GetPendingOrders(ctx, time.Now())
}
