package repository

import (
	"context"
	"database/sql"
	"teamshop/internal/model"

	"github.com/jmoiron/sqlx"
)

// TeamRepository Team存储库
type TeamRepository struct {
	db *sqlx.DB
}

// NewTeamRepository 创建Team存储库
func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetTeamByID 根据ID获取Team
func (r *TeamRepository) GetTeamByID(ctx context.Context, id uint64) (*model.Team, error) {
	var team model.Team
	query := `SELECT * FROM teams WHERE id = ?`
	err := r.db.GetContext(ctx, &team, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &team, err
}

// GetTeamWithFreeSeat 获取一个有空位的可用Team
// 占用座位 = pending + accepted 的成员数
func (r *TeamRepository) GetTeamWithFreeSeat(ctx context.Context, excludeTeamID uint64) (*model.Team, error) {
	var team model.Team
	query := `
		SELECT t.* FROM teams t
		LEFT JOIN (
			SELECT team_id, COUNT(*) AS used
			FROM memberships
			WHERE status IN ('pending', 'accepted')
			GROUP BY team_id
		) m ON m.team_id = t.id
		WHERE t.is_active = 1 AND t.id != ? AND COALESCE(m.used, 0) < t.capacity
		ORDER BY COALESCE(m.used, 0) ASC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &team, query, excludeTeamID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &team, err
}

// ListTeams 获取全部Team
func (r *TeamRepository) ListTeams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	query := `SELECT * FROM teams ORDER BY id ASC`
	err := r.db.SelectContext(ctx, &teams, query)
	return teams, err
}

// CreateTeam 创建Team
func (r *TeamRepository) CreateTeam(ctx context.Context, team *model.Team) error {
	query := `INSERT INTO teams (name, capacity, is_active) VALUES (?, ?, 1)`
	result, err := r.db.ExecContext(ctx, query, team.Name, team.Capacity)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err == nil {
		team.ID = uint64(id)
	}
	return nil
}

// SetTeamActive 启用/封禁Team
func (r *TeamRepository) SetTeamActive(ctx context.Context, id uint64, active bool) error {
	query := `UPDATE teams SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, active, id)
	return err
}

// CountUsedSeats 统计Team的占用座位数
func (r *TeamRepository) CountUsedSeats(ctx context.Context, teamID uint64) (int, error) {
	var used int
	query := `
		SELECT COUNT(*) FROM memberships
		WHERE team_id = ? AND status IN ('pending', 'accepted')
	`
	err := r.db.GetContext(ctx, &used, query, teamID)
	return used, err
}
