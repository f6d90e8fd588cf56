package admin

import (
	"database/sql"
	"net/http"
	"strconv"
	"teamshop/internal/model"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PlanAdminHandler 管理员套餐处理器
type PlanAdminHandler struct {
	planService *service.PlanService
	logger      *logger.Logger
}

// NewPlanAdminHandler 创建管理员套餐处理器
func NewPlanAdminHandler(planService *service.PlanService, logger *logger.Logger) *PlanAdminHandler {
	return &PlanAdminHandler{
		planService: planService,
		logger:      logger,
	}
}

// ListPlans 获取所有套餐列表（含已下架）
func (h *PlanAdminHandler) ListPlans(c *gin.Context) {
	page := 1
	pageSize := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if pageNum, err := strconv.Atoi(pageStr); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		if pageSizeNum, err := strconv.Atoi(pageSizeStr); err == nil && pageSizeNum > 0 {
			pageSize = pageSizeNum
		}
	}

	plans, total, err := h.planService.ListPlans(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("获取套餐列表失败", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "获取套餐列表失败",
		})
		return
	}

	pages := (total + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"code":  200,
		"msg":   "获取套餐列表成功",
		"plans": plans,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"pages":     pages,
			"total":     total,
		},
	})
}

// CreatePlan 创建套餐
func (h *PlanAdminHandler) CreatePlan(c *gin.Context) {
	var req types.PlanUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	plan := planFromRequest(&req)
	if err := h.planService.CreatePlan(c.Request.Context(), plan); err != nil {
		h.logger.Error("创建套餐失败", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "创建套餐失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "创建套餐成功",
		"plan": plan,
	})
}

// UpdatePlan 更新套餐
func (h *PlanAdminHandler) UpdatePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的套餐ID",
		})
		return
	}

	var req types.PlanUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	plan := planFromRequest(&req)
	plan.ID = id
	if err := h.planService.UpdatePlan(c.Request.Context(), plan); err != nil {
		h.logger.Error("更新套餐失败", "plan_id", id, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "更新套餐失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "更新套餐成功",
		"plan": plan,
	})
}

// planFromRequest 将请求参数转换为套餐模型
func planFromRequest(req *types.PlanUpsertRequest) *model.Plan {
	plan := &model.Plan{
		Name:          req.Name,
		Price:         req.Price,
		ValidityDays:  req.ValidityDays,
		Description:   req.Description,
		Features:      req.Features,
		IsRecommended: req.IsRecommended,
		IsActive:      true,
	}
	if req.OriginalPrice > 0 {
		plan.OriginalPrice = sql.NullInt64{Int64: req.OriginalPrice, Valid: true}
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	return plan
}

// SetPlanActive 上架/下架套餐
func (h *PlanAdminHandler) SetPlanActive(c *gin.Context) {
	var req struct {
		ID     uint64 `json:"id" binding:"required"`
		Active *bool  `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	if err := h.planService.SetPlanActive(c.Request.Context(), req.ID, *req.Active); err != nil {
		h.logger.Error("更新套餐状态失败", "plan_id", req.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "更新套餐状态失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "更新套餐状态成功",
	})
}
