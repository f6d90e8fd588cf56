package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"teamshop/config"
	"teamshop/internal/constants"
	"teamshop/internal/model"
	"teamshop/internal/repository"
	"teamshop/internal/types"
	"teamshop/pkg/async"
	"teamshop/pkg/email"
	"teamshop/pkg/logger"

	"k8s.io/apimachinery/pkg/util/rand"
)

// 兑换相关业务错误
var (
	ErrCodeNotFound      = errors.New(constants.ErrCodeNotFound)
	ErrCodeInactive      = errors.New(constants.ErrCodeInactive)
	ErrCodeExpired       = errors.New(constants.ErrCodeExpired)
	ErrCodeExhausted     = errors.New(constants.ErrCodeExhausted)
	ErrCodeBoundConflict = errors.New(constants.ErrCodeBoundConflict)
	ErrCodeNotBound      = errors.New(constants.ErrCodeNotBound)
	ErrRebindCapReached  = errors.New(constants.ErrRebindCapReached)
	ErrNoAvailableSeat   = errors.New(constants.ErrNoAvailableSeat)
)

// RedeemService 兑换服务
type RedeemService struct {
	codeRepo       *repository.RedeemCodeRepository
	teamRepo       *repository.TeamRepository
	membershipRepo *repository.MembershipRepository
	redeemCfg      config.RedeemConfig
	emailSvc       *email.Service
	worker         *async.Worker
	logger         *logger.Logger
}

// NewRedeemService 创建兑换服务
func NewRedeemService(
	codeRepo *repository.RedeemCodeRepository,
	teamRepo *repository.TeamRepository,
	membershipRepo *repository.MembershipRepository,
	redeemCfg config.RedeemConfig,
	emailSvc *email.Service,
	worker *async.Worker,
	logger *logger.Logger,
) *RedeemService {
	return &RedeemService{
		codeRepo:       codeRepo,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		redeemCfg:      redeemCfg,
		emailSvc:       emailSvc,
		worker:         worker,
		logger:         logger,
	}
}

// DirectRedeem 兑换入口
// 首次使用时将邮箱永久绑定到兑换码；结果为已激活或排队两种互斥形态
func (s *RedeemService) DirectRedeem(ctx context.Context, emailAddr, code string) (*types.RedeemOutcome, error) {
	if !IsValidEmail(emailAddr) {
		return nil, ErrInvalidEmail
	}

	rc, err := s.codeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("查询兑换码失败: %w", err)
	}

	now := time.Now()
	if err := checkRedeemable(rc, emailAddr, now); err != nil {
		return nil, err
	}

	isFirstUse := !rc.IsBound()

	// 同邮箱重复提交：已有座位或已在排队时返回当前状态，不消耗次数
	if !isFirstUse {
		if outcome, ok, err := s.currentOutcome(ctx, rc, now); err != nil {
			return nil, err
		} else if ok {
			return outcome, nil
		}
	}

	// 首次使用绑定邮箱并写入绝对过期时间
	expiresAt := rc.ExpiresAt.Time
	if isFirstUse {
		expiresAt = now.Add(time.Duration(rc.ValidityDays) * 24 * time.Hour)
		bound, err := s.codeRepo.BindEmail(ctx, rc.Code, emailAddr, expiresAt)
		if err != nil {
			return nil, fmt.Errorf("绑定邮箱失败: %w", err)
		}
		if !bound {
			// 并发绑定竞争失败，重新读取后按归属判定
			fresh, err := s.codeRepo.GetByCode(ctx, rc.Code)
			if err != nil {
				return nil, fmt.Errorf("查询兑换码失败: %w", err)
			}
			expiresAt, err = resolveBindRace(fresh, emailAddr)
			if err != nil {
				return nil, err
			}
		}
	}

	// 消耗一次使用次数
	ok, err := s.codeRepo.IncrementUsage(ctx, rc.Code)
	if err != nil {
		return nil, fmt.Errorf("核销兑换码失败: %w", err)
	}
	if !ok {
		return nil, ErrCodeExhausted
	}

	// 分配座位
	team, err := s.teamRepo.GetTeamWithFreeSeat(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("查询可用Team失败: %w", err)
	}

	if team == nil {
		// 无空位，入队等待
		queued, err := s.enqueue(ctx, rc, emailAddr)
		if err != nil {
			return nil, err
		}
		return &types.RedeemOutcome{Queued: queued}, nil
	}

	membership := &model.Membership{
		Email:        emailAddr,
		TeamID:       sql.NullInt64{Int64: int64(team.ID), Valid: true},
		RedeemCodeID: rc.ID,
		Status:       model.MembershipStatusPending,
	}
	if err := s.membershipRepo.CreateMembership(ctx, membership); err != nil {
		return nil, fmt.Errorf("创建成员记录失败: %w", err)
	}

	s.dispatchInvite(emailAddr, team.Name, expiresAt)

	s.logger.Info("兑换成功",
		"code", rc.Code,
		"team", team.Name,
		"is_first_use", isFirstUse,
	)

	remaining := remainingDays(expiresAt, now)
	return &types.RedeemOutcome{
		Activated: &types.RedeemActivated{
			TeamName:      team.Name,
			ExpiresAt:     expiresAt,
			RemainingDays: remaining,
			IsFirstUse:    isFirstUse,
		},
	}, nil
}

// checkRedeemable 校验兑换码对指定邮箱是否可用
// 已绑定其他邮箱的码直接拒绝，绑定邮箱不区分大小写
func checkRedeemable(rc *model.RedeemCode, emailAddr string, now time.Time) error {
	if rc == nil {
		return ErrCodeNotFound
	}
	if !rc.IsActive {
		return ErrCodeInactive
	}
	if rc.IsBound() && !strings.EqualFold(rc.BoundEmail.String, emailAddr) {
		return ErrCodeBoundConflict
	}
	if rc.IsExpired(now) {
		return ErrCodeExpired
	}
	return nil
}

// resolveBindRace 绑定竞争失败后根据最新归属判定结果
// 码已归本邮箱则沿用胜者写入的过期时间，否则按冲突拒绝
func resolveBindRace(fresh *model.RedeemCode, emailAddr string) (time.Time, error) {
	if fresh == nil || !strings.EqualFold(fresh.BoundEmail.String, emailAddr) {
		return time.Time{}, ErrCodeBoundConflict
	}
	return fresh.ExpiresAt.Time, nil
}

// currentOutcome 返回已绑定兑换码的当前状态，第二个返回值表示是否命中已有记录
func (s *RedeemService) currentOutcome(ctx context.Context, rc *model.RedeemCode, now time.Time) (*types.RedeemOutcome, bool, error) {
	membership, err := s.membershipRepo.GetByRedeemCodeID(ctx, rc.ID)
	if err != nil {
		return nil, false, fmt.Errorf("查询成员记录失败: %w", err)
	}
	if membership == nil {
		return nil, false, nil
	}

	switch membership.Status {
	case model.MembershipStatusQueued:
		return &types.RedeemOutcome{
			Queued: &types.RedeemQueued{QueuePosition: membership.QueuePosition},
		}, true, nil
	case model.MembershipStatusPending, model.MembershipStatusAccepted:
		teamName := ""
		if membership.TeamID.Valid {
			team, err := s.teamRepo.GetTeamByID(ctx, uint64(membership.TeamID.Int64))
			if err != nil {
				return nil, false, fmt.Errorf("查询Team失败: %w", err)
			}
			if team != nil {
				teamName = team.Name
			}
		}
		return &types.RedeemOutcome{
			Activated: &types.RedeemActivated{
				TeamName:      teamName,
				ExpiresAt:     rc.ExpiresAt.Time,
				RemainingDays: rc.RemainingDays(now),
				IsFirstUse:    false,
			},
		}, true, nil
	}

	// failed状态的成员允许重新兑换
	return nil, false, nil
}

// enqueue 无空位时创建排队记录并通知买家
func (s *RedeemService) enqueue(ctx context.Context, rc *model.RedeemCode, emailAddr string) (*types.RedeemQueued, error) {
	queuedCount, err := s.membershipRepo.CountQueued(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计排队人数失败: %w", err)
	}

	position := queuedCount + 1
	membership := &model.Membership{
		Email:         emailAddr,
		RedeemCodeID:  rc.ID,
		Status:        model.MembershipStatusQueued,
		QueuePosition: position,
	}
	if err := s.membershipRepo.CreateMembership(ctx, membership); err != nil {
		return nil, fmt.Errorf("创建排队记录失败: %w", err)
	}

	s.worker.AddTask(func() {
		if err := s.emailSvc.SendSeatQueued(emailAddr, position); err != nil {
			s.logger.Error("发送排队通知邮件失败", "email", emailAddr, "error", err)
		}
	})

	s.logger.Info("座位已满，进入排队", "code", rc.Code, "position", position)
	return &types.RedeemQueued{QueuePosition: position}, nil
}

// dispatchInvite 异步发送Team邀请邮件
func (s *RedeemService) dispatchInvite(emailAddr, teamName string, expiresAt time.Time) {
	s.worker.AddRetryTask(fmt.Sprintf("invite_%s_%d", emailAddr, time.Now().UnixNano()), 3, func(ctx context.Context) error {
		return s.emailSvc.SendTeamInvite(emailAddr, teamName, expiresAt)
	})
}

// Status 查询兑换码状态，支持按码或按绑定邮箱查询
func (s *RedeemService) Status(ctx context.Context, code, emailAddr string) (*types.CodeStatusResult, error) {
	var rc *model.RedeemCode
	var err error
	if code != "" {
		rc, err = s.codeRepo.GetByCode(ctx, code)
	} else {
		rc, err = s.codeRepo.GetByBoundEmail(ctx, emailAddr)
	}
	if err != nil {
		return nil, fmt.Errorf("查询兑换码失败: %w", err)
	}
	if rc == nil {
		return &types.CodeStatusResult{Found: false}, nil
	}

	now := time.Now()
	result := &types.CodeStatusResult{
		Found:         true,
		Email:         rc.BoundEmail.String,
		RemainingDays: rc.RemainingDays(now),
	}

	membership, err := s.membershipRepo.GetByRedeemCodeID(ctx, rc.ID)
	if err != nil {
		return nil, fmt.Errorf("查询成员记录失败: %w", err)
	}

	var team *model.Team
	if membership != nil && membership.TeamID.Valid {
		team, err = s.teamRepo.GetTeamByID(ctx, uint64(membership.TeamID.Int64))
		if err != nil {
			return nil, fmt.Errorf("查询Team失败: %w", err)
		}
		if team != nil {
			result.TeamName = team.Name
			result.TeamActive = team.IsActive
		}
	}

	result.CanRebind = s.canRebind(rc, team, now)
	return result, nil
}

// canRebind 判断兑换码当前是否允许换车
// Team被封禁时不受次数上限约束，主动换车受 RebindMaxCount 限制
func (s *RedeemService) canRebind(rc *model.RedeemCode, team *model.Team, now time.Time) bool {
	if !rc.IsBound() || !rc.IsActive || rc.IsExpired(now) {
		return false
	}
	if team == nil {
		return false
	}
	if !team.IsActive {
		return true
	}
	return rc.RebindCount < s.redeemCfg.RebindMaxCount
}

// Rebind 换车：将绑定的成员迁移到另一个有空位的Team
// Team被封禁导致的换车不计入次数上限
func (s *RedeemService) Rebind(ctx context.Context, code, emailAddr string) (*types.RebindResult, error) {
	rc, err := s.codeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("查询兑换码失败: %w", err)
	}
	if rc == nil {
		return nil, ErrCodeNotFound
	}
	if !rc.IsActive {
		return nil, ErrCodeInactive
	}
	if !rc.IsBound() {
		return nil, ErrCodeNotBound
	}
	if emailAddr != "" && !strings.EqualFold(rc.BoundEmail.String, emailAddr) {
		return nil, ErrCodeBoundConflict
	}

	now := time.Now()
	if rc.IsExpired(now) {
		return nil, ErrCodeExpired
	}

	membership, err := s.membershipRepo.GetByRedeemCodeID(ctx, rc.ID)
	if err != nil {
		return nil, fmt.Errorf("查询成员记录失败: %w", err)
	}
	if membership == nil || !membership.TeamID.Valid {
		return nil, ErrCodeNotBound
	}

	currentTeamID := uint64(membership.TeamID.Int64)
	currentTeam, err := s.teamRepo.GetTeamByID(ctx, currentTeamID)
	if err != nil {
		return nil, fmt.Errorf("查询Team失败: %w", err)
	}

	// Team正常时为主动换车，受次数上限约束
	voluntary := currentTeam != nil && currentTeam.IsActive
	if voluntary && rc.RebindCount >= s.redeemCfg.RebindMaxCount {
		return nil, ErrRebindCapReached
	}

	newTeam, err := s.teamRepo.GetTeamWithFreeSeat(ctx, currentTeamID)
	if err != nil {
		return nil, fmt.Errorf("查询可用Team失败: %w", err)
	}
	if newTeam == nil {
		return nil, ErrNoAvailableSeat
	}

	if err := s.membershipRepo.AssignTeam(ctx, membership.ID, newTeam.ID, model.MembershipStatusPending); err != nil {
		return nil, fmt.Errorf("迁移成员失败: %w", err)
	}

	if voluntary {
		if err := s.codeRepo.IncrementRebind(ctx, rc.Code); err != nil {
			s.logger.Error("更新换车次数失败", "code", rc.Code, "error", err)
		}
	}

	s.dispatchInvite(rc.BoundEmail.String, newTeam.Name, rc.ExpiresAt.Time)

	s.logger.Info("换车成功",
		"code", rc.Code,
		"from_team", currentTeamID,
		"to_team", newTeam.ID,
		"voluntary", voluntary,
	)

	return &types.RebindResult{NewTeamName: newTeam.Name}, nil
}

// DrainQueue 座位空出后按入队顺序提升排队成员
func (s *RedeemService) DrainQueue(ctx context.Context) error {
	queued, err := s.membershipRepo.ListQueued(ctx, 50)
	if err != nil {
		return fmt.Errorf("获取排队列表失败: %w", err)
	}

	now := time.Now()
	promoted := 0
	dropped := 0
	for _, m := range queued {
		rc, err := s.codeRepo.GetByID(ctx, m.RedeemCodeID)
		if err != nil {
			return fmt.Errorf("查询兑换码失败: %w", err)
		}

		// 排队期间兑换码失效或过期的成员不再提升，标记失败让出队位
		if !promotable(rc, now) {
			if err := s.membershipRepo.UpdateStatus(ctx, m.ID, model.MembershipStatusFailed); err != nil {
				s.logger.Error("标记失效排队成员失败", "membership_id", m.ID, "error", err)
				continue
			}
			dropped++
			continue
		}

		team, err := s.teamRepo.GetTeamWithFreeSeat(ctx, 0)
		if err != nil {
			return fmt.Errorf("查询可用Team失败: %w", err)
		}
		if team == nil {
			break
		}

		if err := s.membershipRepo.AssignTeam(ctx, m.ID, team.ID, model.MembershipStatusPending); err != nil {
			s.logger.Error("提升排队成员失败", "membership_id", m.ID, "error", err)
			continue
		}

		s.dispatchInvite(m.Email, team.Name, rc.ExpiresAt.Time)
		promoted++
	}

	if promoted > 0 || dropped > 0 {
		if err := s.membershipRepo.RecomputeQueuePositions(ctx); err != nil {
			s.logger.Error("重排队位失败", "error", err)
		}
		s.logger.Info("排队处理完成", "promoted", promoted, "dropped", dropped)
	}

	return nil
}

// promotable 排队成员的兑换码仍然有效时才允许提升
func promotable(rc *model.RedeemCode, now time.Time) bool {
	return rc != nil && rc.IsActive && !rc.IsExpired(now)
}

// BatchCreateCodes 批量生成兑换码
func (s *RedeemService) BatchCreateCodes(ctx context.Context, count, validityDays, maxUses int, distributorID int64) ([]string, error) {
	codes := make([]*model.RedeemCode, 0, count)
	codeStrs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		code := strings.ToUpper(rand.String(16))
		codes = append(codes, &model.RedeemCode{
			Code:          code,
			ValidityDays:  validityDays,
			MaxUses:       maxUses,
			DistributorID: sql.NullInt64{Int64: distributorID, Valid: distributorID > 0},
			IsActive:      true,
		})
		codeStrs = append(codeStrs, code)
	}

	if err := s.codeRepo.BatchCreateCodes(ctx, codes); err != nil {
		return nil, fmt.Errorf("批量生成兑换码失败: %w", err)
	}

	s.logger.Info("兑换码已生成", "count", count, "distributor_id", distributorID)
	return codeStrs, nil
}

// SetCodeActive 启用/停用兑换码（管理端）
func (s *RedeemService) SetCodeActive(ctx context.Context, code string, active bool) error {
	if err := s.codeRepo.SetCodeActive(ctx, code, active); err != nil {
		return err
	}
	s.logger.Info("兑换码状态已更新", "code", code, "active", active)
	return nil
}

// remainingDays 剩余有效天数，向上取整
func remainingDays(expiresAt, now time.Time) int {
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
}
