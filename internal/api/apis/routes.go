package apis

import (
	"teamshop/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes 注册无需认证的前台路由
func RegisterPublicRoutes(
	v1 *gin.RouterGroup,
	planHandler *handler.PlanHandler,
	couponHandler *handler.CouponHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	redeemHandler *handler.RedeemHandler,
	distributorHandler *handler.DistributorHandler,
) {
	// 套餐与支付配置
	v1.GET("/plans", planHandler.GetPlans)
	v1.GET("/payment-config", planHandler.GetPaymentConfig)

	// 优惠码校验
	v1.POST("/coupon/check", couponHandler.CheckCoupon)

	// 订单
	v1.POST("/orders", orderHandler.CreateOrder)
	v1.GET("/orders/:order_no", orderHandler.GetOrderStatus)
	v1.GET("/orders", orderHandler.GetOrdersByEmail)

	// 支付网关回调
	v1.GET("/payment/notify", paymentHandler.Notify)
	v1.POST("/payment/notify", paymentHandler.Notify)
	v1.GET("/payment/return", paymentHandler.Return)

	// 兑换
	v1.POST("/public/direct-redeem", redeemHandler.DirectRedeem)
	v1.GET("/status", redeemHandler.Status)
	v1.POST("/rebind", redeemHandler.Rebind)

	// 分销商登录
	v1.POST("/distributor/login", distributorHandler.Login)
}

// RegisterDistributorRoutes 注册需要分销商认证的路由
func RegisterDistributorRoutes(router *gin.RouterGroup, distributorHandler *handler.DistributorHandler) {
	router.GET("/stats", distributorHandler.GetStats)
	router.GET("/codes", distributorHandler.ListCodes)
}
