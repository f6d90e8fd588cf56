package handler

import (
	"net/http"
	"teamshop/internal/constants"
	"teamshop/internal/middleware"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DistributorHandler 分销商处理器
type DistributorHandler struct {
	distributorService *service.DistributorService
	logger             *logger.Logger
}

// NewDistributorHandler 创建分销商处理器
func NewDistributorHandler(distributorService *service.DistributorService, logger *logger.Logger) *DistributorHandler {
	return &DistributorHandler{
		distributorService: distributorService,
		logger:             logger,
	}
}

// Login 分销商登录
func (h *DistributorHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    400,
			"message": constants.ErrInvalidParams,
		})
		return
	}

	token, d, err := h.distributorService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if msg, ok := businessMessage(err); ok {
			c.JSON(http.StatusOK, gin.H{
				"code":    401,
				"message": msg,
			})
			return
		}
		h.logger.Error("分销商登录失败", "username", req.Username, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": constants.SuccessLogin,
		"data": gin.H{
			"token":    token,
			"username": d.Username,
		},
	})
}

// GetStats 分销商看板统计
func (h *DistributorHandler) GetStats(c *gin.Context) {
	distributorID := middleware.GetSubjectID(c)

	stats, err := h.distributorService.GetStats(c.Request.Context(), distributorID)
	if err != nil {
		h.logger.Error("获取分销商统计失败", "distributor_id", distributorID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code":    500,
			"message": constants.ErrInternalServer,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": constants.SuccessGet,
		"data":    stats,
	})
}

// ListCodes 分销商名下的兑换码列表
func (h *DistributorHandler) ListCodes(c *gin.Context) {
	distributorID := middleware.GetSubjectID(c)
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 10)

	codes, total, err := h.distributorService.ListCodes(c.Request.Context(), distributorID, page, pageSize)
	if err != nil {
		h.logger.Error("获取兑换码列表失败", "distributor_id", distributorID, "error", err)
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
			"list":  codes,
			"total": total,
		},
	})
}
