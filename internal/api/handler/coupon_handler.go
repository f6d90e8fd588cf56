package handler

import (
	"context"
	"net/http"
	"teamshop/internal/constants"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CouponHandler 优惠码处理器
type CouponHandler struct {
	couponService *service.CouponService
	redisClient   *redis.Client
	logger        *logger.Logger
}

// NewCouponHandler 创建优惠码处理器
func NewCouponHandler(couponService *service.CouponService, redisClient *redis.Client, logger *logger.Logger) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		redisClient:   redisClient,
		logger:        logger,
	}
}

// CheckCoupon 校验优惠码
// 业务性拒绝返回 valid=false 而非错误码，前端内联展示原因
func (h *CouponHandler) CheckCoupon(c *gin.Context) {
	var req types.CouponCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": constants.ErrInvalidParams,
		})
		return
	}

	// 同一IP限制校验频率，防止暴力枚举优惠码
	limitKey := "coupon_check:" + c.ClientIP()
	count := h.redisClient.Incr(context.Background(), limitKey).Val()
	if count == 1 {
		h.redisClient.Expire(context.Background(), limitKey, time.Minute)
	}
	if count > 30 {
		c.JSON(http.StatusOK, gin.H{"code": 429, "message": constants.ErrOperationTooFrequent})
		return
	}

	result, err := h.couponService.Check(c.Request.Context(), req.Code, req.PlanID, req.Amount)
	if err != nil {
		h.logger.Error("校验优惠码失败", "code", req.Code, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": constants.SuccessGet,
		"data":    result,
	})
}
