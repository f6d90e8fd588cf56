package admin

import (
	"net/http"
	"strconv"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DistributorAdminHandler 管理员分销商处理器
type DistributorAdminHandler struct {
	distributorService *service.DistributorService
	logger             *logger.Logger
}

// NewDistributorAdminHandler 创建管理员分销商处理器
func NewDistributorAdminHandler(distributorService *service.DistributorService, logger *logger.Logger) *DistributorAdminHandler {
	return &DistributorAdminHandler{
		distributorService: distributorService,
		logger:             logger,
	}
}

// ListDistributors 获取分销商列表
func (h *DistributorAdminHandler) ListDistributors(c *gin.Context) {
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

	distributors, total, err := h.distributorService.ListDistributors(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("获取分销商列表失败", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "获取分销商列表失败",
		})
		return
	}

	pages := (total + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"code":         200,
		"msg":          "获取分销商列表成功",
		"distributors": distributors,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"pages":     pages,
			"total":     total,
		},
	})
}

// CreateDistributor 创建分销商
func (h *DistributorAdminHandler) CreateDistributor(c *gin.Context) {
	var req types.CreateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	d, err := h.distributorService.CreateDistributor(c.Request.Context(), req.Username, req.Password, req.Email, req.Remark)
	if err != nil {
		h.logger.Error("创建分销商失败", "username", req.Username, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  err.Error(),
		})
		return
	}

	// 不回传密码哈希
	d.Password = ""

	c.JSON(http.StatusOK, gin.H{
		"code":        200,
		"msg":         "创建分销商成功",
		"distributor": d,
	})
}

// SetDistributorActive 启用/禁用分销商
func (h *DistributorAdminHandler) SetDistributorActive(c *gin.Context) {
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

	if err := h.distributorService.SetDistributorActive(c.Request.Context(), req.ID, *req.Active); err != nil {
		h.logger.Error("更新分销商状态失败", "distributor_id", req.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "更新分销商状态失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "更新分销商状态成功",
	})
}
