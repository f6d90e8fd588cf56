package service

import (
	"context"
	"time"

	"teamshop/pkg/logger"
)

// Clock 定时器抽象，测试时注入假时钟避免真实等待
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// realClock 真实时钟
type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// QueryFunc 查询一次支付状态，返回是否已支付
// 瞬时失败返回error，由轮询循环吞掉并按计划重试
type QueryFunc func(ctx context.Context) (bool, error)

// PaymentWatcher 有界支付结果轮询器
// 轮询在以下情况立即停止：已支付、上下文取消、次数预算耗尽
type PaymentWatcher struct {
	interval    time.Duration
	maxAttempts int
	clock       Clock
	logger      *logger.Logger
}

// NewPaymentWatcher 创建支付结果轮询器
func NewPaymentWatcher(interval time.Duration, maxAttempts int, logger *logger.Logger) *PaymentWatcher {
	return &PaymentWatcher{
		interval:    interval,
		maxAttempts: maxAttempts,
		clock:       realClock{},
		logger:      logger,
	}
}

// NewPaymentWatcherWithClock 使用指定时钟创建轮询器
func NewPaymentWatcherWithClock(interval time.Duration, maxAttempts int, clock Clock, logger *logger.Logger) *PaymentWatcher {
	return &PaymentWatcher{
		interval:    interval,
		maxAttempts: maxAttempts,
		clock:       clock,
		logger:      logger,
	}
}

// Await 轮询等待支付结果
// 返回true表示在预算内确认支付；false表示预算耗尽或被取消
func (w *PaymentWatcher) Await(ctx context.Context, orderNo string, query QueryFunc) (bool, error) {
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		// 每次查询前检查取消状态
		if err := ctx.Err(); err != nil {
			return false, err
		}

		paid, err := query(ctx)
		if err != nil {
			// 瞬时错误不终止轮询，按计划重试
			w.logger.Warn("查询支付状态失败", "order_no", orderNo, "attempt", attempt, "error", err)
		} else if paid {
			w.logger.Info("支付确认成功", "order_no", orderNo, "attempt", attempt)
			return true, nil
		}

		// 最后一次尝试后不再等待
		if attempt == w.maxAttempts {
			break
		}

		select {
		case <-w.clock.After(w.interval):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	// 预算耗尽静默停止，订单留待过期调度处理
	w.logger.Info("支付轮询预算耗尽", "order_no", orderNo, "attempts", w.maxAttempts)
	return false, nil
}
