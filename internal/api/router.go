package api

import (
	"teamshop/config"
	"teamshop/internal/api/admin"
	"teamshop/internal/api/apis"
	"teamshop/internal/api/handler"
	"teamshop/internal/auth"
	"teamshop/internal/middleware"
	"teamshop/internal/repository"
	"teamshop/internal/scheduler"
	"teamshop/internal/service"
	"teamshop/pkg/async"
	"teamshop/pkg/email"
	"teamshop/pkg/logger"
	"teamshop/pkg/payment"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// SetupRouter 设置API路由
func SetupRouter(cfg *config.Config, logger *logger.Logger, db *sqlx.DB, redisClient *redis.Client, payClient *payment.Client) *gin.Engine {
	// 创建Gin引擎
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 使用中间件
	router.Use(middleware.TraceID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// 创建异步工作器
	worker := async.NewWorker(100, logger)
	worker.Start(5) // 启动5个工作协程

	// 初始化存储库
	planRepo := repository.NewPlanRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	codeRepo := repository.NewRedeemCodeRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	distributorRepo := repository.NewDistributorRepository(db)

	// 初始化邮件服务
	emailService := email.NewService(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	}, logger)

	// 初始化JWT签发器
	tokenIssuer := auth.NewTokenIssuer(cfg.Admin.JWTSecret, cfg.Admin.TokenExpireHours)

	// 初始化服务
	planService := service.NewPlanService(planRepo, redisClient, cfg.Payment, logger)
	couponService := service.NewCouponService(couponRepo, logger)
	orderService := service.NewOrderService(orderRepo, planRepo, codeRepo, couponService, payClient, cfg.Payment, cfg.Redeem, emailService, worker, logger)
	redeemService := service.NewRedeemService(codeRepo, teamRepo, membershipRepo, cfg.Redeem, emailService, worker, logger)
	distributorService := service.NewDistributorService(distributorRepo, codeRepo, tokenIssuer, logger)
	teamService := service.NewTeamService(teamRepo, membershipRepo, logger)

	// 初始化订单调度器
	paymentWatcher := service.NewPaymentWatcher(3*time.Second, 3, logger)
	orderScheduler := scheduler.NewOrderScheduler(orderService, redeemService, paymentWatcher, payClient, logger)
	orderScheduler.Start() // 启动订单调度

	// 初始化处理器
	planHandler := handler.NewPlanHandler(planService, logger)
	couponHandler := handler.NewCouponHandler(couponService, redisClient, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	paymentHandler := handler.NewPaymentHandler(orderService, payClient, logger)
	redeemHandler := handler.NewRedeemHandler(redeemService, redisClient, logger)
	distributorHandler := handler.NewDistributorHandler(distributorService, logger)

	// 初始化管理员处理器
	authAdminHandler := admin.NewAuthAdminHandler(cfg.Admin, tokenIssuer, logger)
	planAdminHandler := admin.NewPlanAdminHandler(planService, logger)
	couponAdminHandler := admin.NewCouponAdminHandler(couponService, logger)
	codeAdminHandler := admin.NewCodeAdminHandler(redeemService, logger)
	teamAdminHandler := admin.NewTeamAdminHandler(teamService, redeemService, logger)
	distributorAdminHandler := admin.NewDistributorAdminHandler(distributorService, logger)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API版本v1
	v1 := router.Group("/api/v1")

	// 注册不需要认证的路由
	apis.RegisterPublicRoutes(v1, planHandler, couponHandler, orderHandler, paymentHandler, redeemHandler, distributorHandler)

	// 注册需要分销商认证的路由
	distributorRouter := v1.Group("/distributor")
	distributorRouter.Use(middleware.DistributorAuth(tokenIssuer))
	apis.RegisterDistributorRoutes(distributorRouter, distributorHandler)

	// 注册管理员API路由
	v1.POST("/admin/login", authAdminHandler.Login)
	adminRouter := v1.Group("/admin")
	adminRouter.Use(middleware.AdminAuth(tokenIssuer))
	admin.RegisterAdminRoutes(adminRouter, planAdminHandler, couponAdminHandler, codeAdminHandler, teamAdminHandler, distributorAdminHandler)

	return router
}
