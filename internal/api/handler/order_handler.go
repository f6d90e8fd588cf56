package handler

import (
	"net/http"
	"teamshop/internal/constants"
	"teamshop/internal/model"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	orderService *service.OrderService
	logger       *logger.Logger
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(orderService *service.OrderService, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// CreateOrder 创建订单
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req types.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": constants.ErrInvalidParams,
		})
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		if msg, ok := businessMessage(err); ok {
			c.JSON(http.StatusOK, gin.H{
				"code":    400,
				"message": msg,
			})
			return
		}
		h.logger.Error("创建订单失败", "plan_id", req.PlanID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": constants.SuccessCreate,
		"data":    result,
	})
}

// GetOrderStatus 查询订单支付状态，前端轮询使用
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	orderNo := c.Param("order_no")
	if orderNo == "" {
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": constants.ErrOrderNoEmpty,
		})
		return
	}

	order, err := h.orderService.GetOrderByOrderNo(c.Request.Context(), orderNo)
	if err != nil {
		if msg, ok := businessMessage(err); ok {
			c.JSON(http.StatusOK, gin.H{
				"code":    404,
				"message": msg,
			})
			return
		}
		h.logger.Error("查询订单失败", "order_no", orderNo, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": constants.ErrInternalServer,
		})
		return
	}

	data := gin.H{
		"order_no":        order.OrderNo,
		"status":          order.Status,
		"amount":          order.Amount,
		"discount_amount": order.DiscountAmount,
		"final_amount":    order.FinalAmount,
		"email":           order.Email,
		"plan_name":       order.PlanName,
		"validity_days":   order.ValidityDays,
		"created_at":      order.CreatedAt,
	}
	if order.PaidAt.Valid {
		data["paid_at"] = order.PaidAt.Time
	}
	// 仅支付成功后返回兑换码
	if order.Status == model.OrderStatusPaid && order.RedeemCode.Valid {
		data["redeem_code"] = order.RedeemCode.String
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": constants.SuccessGet,
		"data":    data,
	})
}

// GetOrdersByEmail 查询买家的历史订单
func (h *OrderHandler) GetOrdersByEmail(c *gin.Context) {
	emailAddr := c.Query("email")
	if !service.IsValidEmail(emailAddr) {
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": constants.ErrInvalidEmail,
		})
		return
	}

	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 10)

	orders, total, err := h.orderService.GetOrdersByEmail(c.Request.Context(), emailAddr, page, pageSize)
	if err != nil {
		h.logger.Error("查询历史订单失败", "email", emailAddr, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": constants.SuccessGet,
		"data": gin.H{
			"list":  orders,
			"total": total,
		},
	})
}
