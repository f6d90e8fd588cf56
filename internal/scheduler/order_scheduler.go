package scheduler

import (
	"context"
	"teamshop/internal/service"
	"teamshop/pkg/logger"
	"teamshop/pkg/payment"
	"time"
)

// OrderScheduler 订单调度器
// 负责过期订单清理、支付状态兜底查询与排队座位提升
type OrderScheduler struct {
	orderService  *service.OrderService
	redeemService *service.RedeemService
	watcher       *service.PaymentWatcher
	payClient     *payment.Client
	logger        *logger.Logger
	quit          chan struct{}
}

// NewOrderScheduler 创建订单调度器实例
func NewOrderScheduler(
	orderService *service.OrderService,
	redeemService *service.RedeemService,
	watcher *service.PaymentWatcher,
	payClient *payment.Client,
	logger *logger.Logger,
) *OrderScheduler {
	return &OrderScheduler{
		orderService:  orderService,
		redeemService: redeemService,
		watcher:       watcher,
		payClient:     payClient,
		logger:        logger,
		quit:          make(chan struct{}),
	}
}

// Start 启动订单调度器
func (s *OrderScheduler) Start() {
	// 启动定时过期订单清理的goroutine
	go s.expireOrdersScheduler()

	// 启动定时支付状态兜底查询的goroutine
	go s.reconcilePaymentsScheduler()

	// 启动定时排队提升的goroutine
	go s.drainQueueScheduler()

	s.logger.Info("订单调度器启动")
}

// Stop 停止订单调度器
func (s *OrderScheduler) Stop() {
	close(s.quit)
	s.logger.Info("订单调度器停止")
}

// expireOrdersScheduler 过期订单清理定时器
func (s *OrderScheduler) expireOrdersScheduler() {
	// 立即运行一次清理
	s.expireOrders()

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireOrders()
		case <-s.quit:
			return
		}
	}
}

// expireOrders 将超时未支付的订单置为已过期
func (s *OrderScheduler) expireOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.orderService.ExpireOverdueOrders(ctx)
	if err != nil {
		s.logger.Error("过期订单清理失败", "error", err)
		return
	}
	if count > 0 {
		s.logger.Info("过期订单已清理", "count", count)
	}
}

// reconcilePaymentsScheduler 支付状态兜底查询定时器
// 回调丢失时通过主动查询网关补齐订单状态
func (s *OrderScheduler) reconcilePaymentsScheduler() {
	ticker := time.NewTicker(2 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reconcilePayments()
		case <-s.quit:
			return
		}
	}
}

// reconcilePayments 查询所有待支付订单的网关侧状态
func (s *OrderScheduler) reconcilePayments() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	orders, err := s.orderService.GetPendingOrders(ctx)
	if err != nil {
		s.logger.Error("获取待支付订单失败", "error", err)
		return
	}

	for _, order := range orders {
		orderNo := order.OrderNo
		var tradeNo string

		paid, err := s.watcher.Await(ctx, orderNo, func(ctx context.Context) (bool, error) {
			result, err := s.payClient.QueryOrder(ctx, orderNo)
			if err != nil {
				return false, err
			}
			if result.Status == 1 {
				tradeNo = result.TradeNo
				return true, nil
			}
			return false, nil
		})
		if err != nil {
			return
		}
		if !paid {
			continue
		}

		if err := s.orderService.HandlePaymentSuccess(ctx, orderNo, tradeNo); err != nil {
			s.logger.Error("补单失败", "order_no", orderNo, "error", err)
		}
	}
}

// drainQueueScheduler 排队提升定时器
func (s *OrderScheduler) drainQueueScheduler() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.drainQueue()
		case <-s.quit:
			return
		}
	}
}

// drainQueue 有空位时按入队顺序提升排队成员
func (s *OrderScheduler) drainQueue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.redeemService.DrainQueue(ctx); err != nil {
		s.logger.Error("排队提升失败", "error", err)
	}
}
