package handler

import (
	"context"
	"net/http"
	"strings"
	"teamshop/internal/constants"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedeemHandler 兑换处理器
type RedeemHandler struct {
	redeemService *service.RedeemService
	redisClient   *redis.Client
	logger        *logger.Logger
}

// NewRedeemHandler 创建兑换处理器
func NewRedeemHandler(redeemService *service.RedeemService, redisClient *redis.Client, logger *logger.Logger) *RedeemHandler {
	return &RedeemHandler{
		redeemService: redeemService,
		redisClient:   redisClient,
		logger:        logger,
	}
}

// DirectRedeem 兑换入口
// 成功响应恰好为两种形态之一：已激活（team_name等字段）或排队（state=WAITING_FOR_SEAT）
func (h *RedeemHandler) DirectRedeem(c *gin.Context) {
	var req types.DirectRedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": constants.ErrInvalidParams,
		})
		return
	}

	// 使用分布式锁控制同一兑换码的并发提交
	lockKey := "redeem_lock:" + strings.ToUpper(req.Code)
	lock := h.redisClient.SetNX(context.Background(), lockKey, "1", 10*time.Second)
	if !lock.Val() {
		c.JSON(http.StatusOK, gin.H{"code": 429, "message": constants.ErrOperationTooFrequent})
		return
	}
	defer h.redisClient.Del(context.Background(), lockKey)

	outcome, err := h.redeemService.DirectRedeem(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		if msg, ok := businessMessage(err); ok {
			c.JSON(http.StatusOK, gin.H{
				"code":    400,
				"message": msg,
			})
			return
		}
		h.logger.Error("兑换失败", "code", req.Code, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "兑换成功",
		"data":    renderOutcome(outcome),
	})
}

// renderOutcome 将兑换结果展开为互斥的响应形态
func renderOutcome(outcome *types.RedeemOutcome) gin.H {
	if outcome.Queued != nil {
		return gin.H{
			"state":          types.RedeemStateWaitingForSeat,
			"queue_position": outcome.Queued.QueuePosition,
		}
	}
	return gin.H{
		"state":          "ACTIVATED",
		"team_name":      outcome.Activated.TeamName,
		"expires_at":     outcome.Activated.ExpiresAt,
		"remaining_days": outcome.Activated.RemainingDays,
		"is_first_use":   outcome.Activated.IsFirstUse,
	}
}

// Status 查询兑换码状态，code与email至少传一个
func (h *RedeemHandler) Status(c *gin.Context) {
	code := c.Query("code")
	emailAddr := c.Query("email")
	if code == "" && emailAddr == "" {
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": constants.ErrInvalidParams,
		})
		return
	}

	result, err := h.redeemService.Status(c.Request.Context(), code, emailAddr)
	if err != nil {
		h.logger.Error("查询兑换码状态失败", "code", code, "error", err)
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

// Rebind 换车
func (h *RedeemHandler) Rebind(c *gin.Context) {
	var req types.RebindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": constants.ErrInvalidParams,
		})
		return
	}

	result, err := h.redeemService.Rebind(c.Request.Context(), req.Code, req.Email)
	if err != nil {
		if msg, ok := businessMessage(err); ok {
			c.JSON(http.StatusOK, gin.H{
				"code":    400,
				"message": msg,
			})
			return
		}
		h.logger.Error("换车失败", "code", req.Code, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "换车成功",
		"data":    result,
	})
}
