package service

import (
	"context"
	"fmt"

	"teamshop/internal/model"
	"teamshop/internal/repository"
	"teamshop/pkg/logger"
)

// TeamService Team服务
type TeamService struct {
	teamRepo       *repository.TeamRepository
	membershipRepo *repository.MembershipRepository
	logger         *logger.Logger
}

// NewTeamService 创建Team服务
func NewTeamService(
	teamRepo *repository.TeamRepository,
	membershipRepo *repository.MembershipRepository,
	logger *logger.Logger,
) *TeamService {
	return &TeamService{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// TeamWithUsage 带座位占用信息的Team
type TeamWithUsage struct {
	model.Team
	UsedSeats int `json:"used_seats"`
}

// ListTeams 获取全部Team及座位占用
func (s *TeamService) ListTeams(ctx context.Context) ([]TeamWithUsage, error) {
	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取Team列表失败: %w", err)
	}

	result := make([]TeamWithUsage, 0, len(teams))
	for _, t := range teams {
		used, err := s.teamRepo.CountUsedSeats(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("统计座位占用失败: %w", err)
		}
		result = append(result, TeamWithUsage{Team: t, UsedSeats: used})
	}
	return result, nil
}

// CreateTeam 创建Team
func (s *TeamService) CreateTeam(ctx context.Context, name string, capacity int) (*model.Team, error) {
	team := &model.Team{Name: name, Capacity: capacity, IsActive: true}
	if err := s.teamRepo.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("创建Team失败: %w", err)
	}
	return team, nil
}

// SetTeamActive 启用/封禁Team
func (s *TeamService) SetTeamActive(ctx context.Context, id uint64, active bool) error {
	if err := s.teamRepo.SetTeamActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info("Team状态已更新", "team_id", id, "active", active)
	return nil
}

// ListMembers 获取Team的全部成员
func (s *TeamService) ListMembers(ctx context.Context, teamID uint64) ([]model.Membership, error) {
	return s.membershipRepo.ListByTeam(ctx, teamID)
}
