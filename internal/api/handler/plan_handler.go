package handler

import (
	"net/http"
	"teamshop/internal/constants"
	"teamshop/internal/service"
	"teamshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PlanHandler 套餐处理器
type PlanHandler struct {
	planService *service.PlanService
	logger      *logger.Logger
}

// NewPlanHandler 创建套餐处理器
func NewPlanHandler(planService *service.PlanService, logger *logger.Logger) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		logger:      logger,
	}
}

// GetPlans 获取上架套餐列表
func (h *PlanHandler) GetPlans(c *gin.Context) {
	plans, err := h.planService.GetActivePlans(c.Request.Context())
	if err != nil {
		h.logger.Error("获取套餐列表失败", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": "获取套餐列表失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": constants.SuccessGet,
		"data":    plans,
	})
}

// GetPaymentConfig 获取前台支付配置
func (h *PlanHandler) GetPaymentConfig(c *gin.Context) {
	cfg := h.planService.GetPaymentConfig(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": constants.SuccessGet,
		"data":    cfg,
	})
}
