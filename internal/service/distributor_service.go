package service

import (
	"context"
	"errors"
	"fmt"

	"teamshop/internal/auth"
	"teamshop/internal/constants"
	"teamshop/internal/model"
	"teamshop/internal/repository"
	"teamshop/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// 分销商业务错误
var (
	ErrLoginFailed     = errors.New(constants.ErrPasswordIncorrect)
	ErrAccountDisabled = errors.New(constants.ErrAccountDisabled)
)

// DistributorService 分销商服务
type DistributorService struct {
	distributorRepo *repository.DistributorRepository
	codeRepo        *repository.RedeemCodeRepository
	tokenIssuer     *auth.TokenIssuer
	logger          *logger.Logger
}

// NewDistributorService 创建分销商服务
func NewDistributorService(
	distributorRepo *repository.DistributorRepository,
	codeRepo *repository.RedeemCodeRepository,
	tokenIssuer *auth.TokenIssuer,
	logger *logger.Logger,
) *DistributorService {
	return &DistributorService{
		distributorRepo: distributorRepo,
		codeRepo:        codeRepo,
		tokenIssuer:     tokenIssuer,
		logger:          logger,
	}
}

// Login 分销商登录，成功时返回JWT
func (s *DistributorService) Login(ctx context.Context, username, password string) (string, *model.Distributor, error) {
	d, err := s.distributorRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("查询分销商失败: %w", err)
	}
	if d == nil {
		return "", nil, ErrLoginFailed
	}
	if !d.IsActive {
		return "", nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(d.Password), []byte(password)); err != nil {
		return "", nil, ErrLoginFailed
	}

	token, err := s.tokenIssuer.Issue(d.ID, auth.RoleDistributor)
	if err != nil {
		return "", nil, fmt.Errorf("签发Token失败: %w", err)
	}

	s.logger.Info("分销商登录成功", "username", username)
	return token, d, nil
}

// GetByID 根据ID获取分销商
func (s *DistributorService) GetByID(ctx context.Context, id uint64) (*model.Distributor, error) {
	return s.distributorRepo.GetByID(ctx, id)
}

// GetStats 获取分销商的兑换码统计
func (s *DistributorService) GetStats(ctx context.Context, distributorID uint64) (*repository.DistributorStats, error) {
	return s.codeRepo.GetDistributorStats(ctx, distributorID)
}

// ListCodes 分页获取分销商名下的兑换码
func (s *DistributorService) ListCodes(ctx context.Context, distributorID uint64, page, pageSize int) ([]model.RedeemCode, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return s.codeRepo.ListByDistributor(ctx, distributorID, page, pageSize)
}

// CreateDistributor 创建分销商（管理端）
func (s *DistributorService) CreateDistributor(ctx context.Context, username, password, email, remark string) (*model.Distributor, error) {
	existing, err := s.distributorRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("查询分销商失败: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("用户名已存在: %s", username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	d := &model.Distributor{
		Username: username,
		Password: string(hashed),
		Email:    email,
		Remark:   remark,
		IsActive: true,
	}
	if err := s.distributorRepo.CreateDistributor(ctx, d); err != nil {
		return nil, fmt.Errorf("创建分销商失败: %w", err)
	}

	return d, nil
}

// ListDistributors 分页获取分销商列表（管理端）
func (s *DistributorService) ListDistributors(ctx context.Context, page, pageSize int) ([]model.Distributor, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return s.distributorRepo.ListDistributors(ctx, page, pageSize)
}

// SetDistributorActive 启用/禁用分销商
func (s *DistributorService) SetDistributorActive(ctx context.Context, id uint64, active bool) error {
	return s.distributorRepo.SetDistributorActive(ctx, id, active)
}
