package admin

import (
	"net/http"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CodeAdminHandler 管理员兑换码处理器
type CodeAdminHandler struct {
	redeemService *service.RedeemService
	logger        *logger.Logger
}

// NewCodeAdminHandler 创建管理员兑换码处理器
func NewCodeAdminHandler(redeemService *service.RedeemService, logger *logger.Logger) *CodeAdminHandler {
	return &CodeAdminHandler{
		redeemService: redeemService,
		logger:        logger,
	}
}

// BatchCreateCodes 批量生成兑换码，可归属到分销商名下
func (h *CodeAdminHandler) BatchCreateCodes(c *gin.Context) {
	var req types.BatchCreateCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	maxUses := req.MaxUses
	if maxUses <= 0 {
		maxUses = 1
	}

	codes, err := h.redeemService.BatchCreateCodes(c.Request.Context(), req.Count, req.ValidityDays, maxUses, req.DistributorID)
	if err != nil {
		h.logger.Error("批量生成兑换码失败", "count", req.Count, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "批量生成兑换码失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":  200,
		"msg":   "生成兑换码成功",
		"codes": codes,
	})
}

// SetCodeActive 启用/停用兑换码
func (h *CodeAdminHandler) SetCodeActive(c *gin.Context) {
	var req struct {
		Code   string `json:"code" binding:"required"`
		Active *bool  `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	if err := h.redeemService.SetCodeActive(c.Request.Context(), req.Code, *req.Active); err != nil {
		h.logger.Error("更新兑换码状态失败", "redeem_code", req.Code, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "更新兑换码状态失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "更新兑换码状态成功",
	})
}
