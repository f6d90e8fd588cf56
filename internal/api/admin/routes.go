package admin

import (
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes 注册管理员API路由
func RegisterAdminRoutes(
	router *gin.RouterGroup,
	planAdminHandler *PlanAdminHandler,
	couponAdminHandler *CouponAdminHandler,
	codeAdminHandler *CodeAdminHandler,
	teamAdminHandler *TeamAdminHandler,
	distributorAdminHandler *DistributorAdminHandler,
) {
	// 套餐管理路由
	plans := router.Group("/plans")
	{
		plans.GET("", planAdminHandler.ListPlans)
		plans.POST("", planAdminHandler.CreatePlan)
		plans.POST("/:id", planAdminHandler.UpdatePlan)
		plans.POST("/active", planAdminHandler.SetPlanActive)
	}

	// 优惠券管理路由
	coupons := router.Group("/coupons")
	{
		coupons.GET("", couponAdminHandler.ListCoupons)
		coupons.POST("", couponAdminHandler.CreateCoupon)
		coupons.POST("/:id", couponAdminHandler.UpdateCoupon)
		coupons.POST("/active", couponAdminHandler.SetCouponActive)
	}

	// 兑换码管理路由
	codes := router.Group("/codes")
	{
		codes.POST("/batch", codeAdminHandler.BatchCreateCodes)
		codes.POST("/active", codeAdminHandler.SetCodeActive)
	}

	// Team管理路由
	teams := router.Group("/teams")
	{
		teams.GET("", teamAdminHandler.ListTeams)
		teams.POST("", teamAdminHandler.CreateTeam)
		teams.POST("/active", teamAdminHandler.SetTeamActive)
		teams.GET("/:id/members", teamAdminHandler.ListMembers)
	}

	// 分销商管理路由
	distributors := router.Group("/distributors")
	{
		distributors.GET("", distributorAdminHandler.ListDistributors)
		distributors.POST("", distributorAdminHandler.CreateDistributor)
		distributors.POST("/active", distributorAdminHandler.SetDistributorActive)
	}
}
