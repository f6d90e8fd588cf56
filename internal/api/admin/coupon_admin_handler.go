package admin

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"teamshop/internal/model"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
)

// CouponAdminHandler 管理员优惠券处理器
type CouponAdminHandler struct {
	couponService *service.CouponService
	logger        *logger.Logger
}

// NewCouponAdminHandler 创建管理员优惠券处理器
func NewCouponAdminHandler(couponService *service.CouponService, logger *logger.Logger) *CouponAdminHandler {
	return &CouponAdminHandler{
		couponService: couponService,
		logger:        logger,
	}
}

// ListCoupons 获取优惠券列表
func (h *CouponAdminHandler) ListCoupons(c *gin.Context) {
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

	coupons, total, err := h.couponService.ListCoupons(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("获取优惠券列表失败", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "获取优惠券列表失败",
		})
		return
	}

	pages := (total + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"msg":     "获取优惠券列表成功",
		"coupons": coupons,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"pages":     pages,
			"total":     total,
		},
	})
}

// CreateCoupon 创建优惠券
func (h *CouponAdminHandler) CreateCoupon(c *gin.Context) {
	var req types.CouponUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	coupon, err := couponFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  err.Error(),
		})
		return
	}

	if err := h.couponService.CreateCoupon(c.Request.Context(), coupon); err != nil {
		h.logger.Error("创建优惠券失败", "code", req.Code, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   200,
		"msg":    "创建优惠券成功",
		"coupon": coupon,
	})
}

// UpdateCoupon 更新优惠券
func (h *CouponAdminHandler) UpdateCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的优惠券ID",
		})
		return
	}

	var req types.CouponUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	coupon, err := couponFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  err.Error(),
		})
		return
	}
	coupon.ID = id

	if err := h.couponService.UpdateCoupon(c.Request.Context(), coupon); err != nil {
		h.logger.Error("更新优惠券失败", "coupon_id", id, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   200,
		"msg":    "更新优惠券成功",
		"coupon": coupon,
	})
}

// SetCouponActive 启用/停用优惠券
func (h *CouponAdminHandler) SetCouponActive(c *gin.Context) {
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

	if err := h.couponService.SetCouponActive(c.Request.Context(), req.ID, *req.Active); err != nil {
		h.logger.Error("更新优惠券状态失败", "coupon_id", req.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "更新优惠券状态失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "更新优惠券状态成功",
	})
}

// couponFromRequest 将请求参数转换为优惠券模型，有效期按RFC3339解析
func couponFromRequest(req *types.CouponUpsertRequest) (*model.Coupon, error) {
	coupon := &model.Coupon{
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinAmount:     req.MinAmount,
		MaxDiscount:   req.MaxDiscount,
		MaxUses:       req.MaxUses,
		IsActive:      true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if strings.TrimSpace(req.PlanIDs) != "" {
		coupon.PlanIDs = sql.NullString{String: req.PlanIDs, Valid: true}
	}

	if req.ValidFrom != "" {
		t, err := time.Parse(time.RFC3339, req.ValidFrom)
		if err != nil {
			return nil, err
		}
		coupon.ValidFrom = sql.NullTime{Time: t, Valid: true}
	}
	if req.ValidUntil != "" {
		t, err := time.Parse(time.RFC3339, req.ValidUntil)
		if err != nil {
			return nil, err
		}
		coupon.ValidUntil = sql.NullTime{Time: t, Valid: true}
	}

	return coupon, nil
}
