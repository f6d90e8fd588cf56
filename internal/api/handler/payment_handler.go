package handler

import (
	"net/http"
	"teamshop/internal/service"
	"teamshop/pkg/logger"
	"teamshop/pkg/payment"

	"github.com/gin-gonic/gin"
)

// PaymentHandler 支付回调处理器
type PaymentHandler struct {
	orderService *service.OrderService
	payClient    *payment.Client
	logger       *logger.Logger
}

// NewPaymentHandler 创建支付回调处理器
func NewPaymentHandler(orderService *service.OrderService, payClient *payment.Client, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		orderService: orderService,
		payClient:    payClient,
		logger:       logger,
	}
}

// Notify 支付网关异步回调
// 网关要求返回纯文本 success，否则会按策略重试通知
func (h *PaymentHandler) Notify(c *gin.Context) {
	params := c.Request.URL.Query()

	if !h.payClient.VerifyNotify(params) {
		h.logger.Warn("支付回调验签失败", "params", params.Encode())
		c.String(http.StatusOK, "fail")
		return
	}

	orderNo := params.Get("out_trade_no")
	tradeNo := params.Get("trade_no")
	tradeStatus := params.Get("trade_status")

	if tradeStatus != "TRADE_SUCCESS" {
		h.logger.Info("忽略非成功状态的支付回调", "order_no", orderNo, "trade_status", tradeStatus)
		c.String(http.StatusOK, "success")
		return
	}

	if err := h.orderService.HandlePaymentSuccess(c.Request.Context(), orderNo, tradeNo); err != nil {
		h.logger.Error("处理支付回调失败", "order_no", orderNo, "error", err)
		c.String(http.StatusOK, "fail")
		return
	}

	c.String(http.StatusOK, "success")
}

// Return 支付完成后的同步跳转，前端自行轮询订单状态
func (h *PaymentHandler) Return(c *gin.Context) {
	orderNo := c.Query("out_trade_no")
	c.Redirect(http.StatusFound, "/?order_no="+orderNo)
}
