package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"teamshop/config"
	"teamshop/internal/model"
	"teamshop/internal/repository"
	"teamshop/internal/types"
	"teamshop/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// PlanService 套餐服务
type PlanService struct {
	planRepo    *repository.PlanRepository
	redisClient *redis.Client
	payCfg      config.PaymentConfig
	logger      *logger.Logger
}

// NewPlanService 创建套餐服务
func NewPlanService(
	planRepo *repository.PlanRepository,
	redisClient *redis.Client,
	payCfg config.PaymentConfig,
	logger *logger.Logger,
) *PlanService {
	return &PlanService{
		planRepo:    planRepo,
		redisClient: redisClient,
		payCfg:      payCfg,
		logger:      logger,
	}
}

// GetActivePlans 获取所有上架套餐
func (s *PlanService) GetActivePlans(ctx context.Context) ([]model.Plan, error) {
	// 尝试从缓存获取
	cacheKey := "plans:active"
	cachedData, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var plans []model.Plan
		if err := json.Unmarshal(cachedData, &plans); err == nil {
			return plans, nil
		}
	}

	// 缓存未命中，从数据库获取
	plans, err := s.planRepo.GetActivePlans(ctx)
	if err != nil {
		s.logger.Error("获取套餐列表失败", "error", err)
		return nil, err
	}

	// 将结果存入缓存
	if data, err := json.Marshal(plans); err == nil {
		s.redisClient.Set(ctx, cacheKey, data, 5*time.Minute)
	}

	return plans, nil
}

// GetPlanByID 根据ID获取套餐
func (s *PlanService) GetPlanByID(ctx context.Context, id uint64) (*model.Plan, error) {
	return s.planRepo.GetPlanByID(ctx, id)
}

// GetPaymentConfig 获取前台支付配置
func (s *PlanService) GetPaymentConfig(ctx context.Context) *types.PaymentConfigResult {
	payTypes := make([]string, 0, 2)
	if s.payCfg.EnableAlipay {
		payTypes = append(payTypes, model.PayTypeAlipay)
	}
	if s.payCfg.EnableWxpay {
		payTypes = append(payTypes, model.PayTypeWxpay)
	}

	return &types.PaymentConfigResult{
		PayTypes: payTypes,
		Notice:   s.payCfg.Notice,
	}
}

// IsPayTypeEnabled 支付方式是否开放
func (s *PlanService) IsPayTypeEnabled(payType string) bool {
	switch payType {
	case model.PayTypeAlipay:
		return s.payCfg.EnableAlipay
	case model.PayTypeWxpay:
		return s.payCfg.EnableWxpay
	default:
		return false
	}
}

// ListPlans 分页获取全部套餐（管理端）
func (s *PlanService) ListPlans(ctx context.Context, page, pageSize int) ([]model.Plan, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return s.planRepo.ListPlans(ctx, page, pageSize)
}

// CreatePlan 创建套餐
func (s *PlanService) CreatePlan(ctx context.Context, plan *model.Plan) error {
	if err := s.planRepo.CreatePlan(ctx, plan); err != nil {
		return fmt.Errorf("创建套餐失败: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

// UpdatePlan 更新套餐
func (s *PlanService) UpdatePlan(ctx context.Context, plan *model.Plan) error {
	if err := s.planRepo.UpdatePlan(ctx, plan); err != nil {
		return fmt.Errorf("更新套餐失败: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

// SetPlanActive 上架/下架套餐
func (s *PlanService) SetPlanActive(ctx context.Context, id uint64, active bool) error {
	if err := s.planRepo.SetPlanActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// invalidateCache 使套餐缓存失效
func (s *PlanService) invalidateCache(ctx context.Context) {
	if err := s.redisClient.Del(ctx, "plans:active").Err(); err != nil {
		s.logger.Warn("清除套餐缓存失败", "error", err)
	}
}
