package repository

import (
	"context"
	"database/sql"
	"teamshop/internal/model"

	"github.com/jmoiron/sqlx"
)

// MembershipRepository 成员存储库
type MembershipRepository struct {
	db *sqlx.DB
}

// NewMembershipRepository 创建成员存储库
func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// CreateMembership 创建成员记录
func (r *MembershipRepository) CreateMembership(ctx context.Context, m *model.Membership) error {
	query := `
		INSERT INTO memberships (email, team_id, redeem_code_id, status, queue_position)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query, m.Email, m.TeamID, m.RedeemCodeID, m.Status, m.QueuePosition)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err == nil {
		m.ID = uint64(id)
	}
	return nil
}

// GetByRedeemCodeID 获取兑换码当前的成员记录
func (r *MembershipRepository) GetByRedeemCodeID(ctx context.Context, codeID uint64) (*model.Membership, error) {
	var m model.Membership
	query := `SELECT * FROM memberships WHERE redeem_code_id = ? ORDER BY id DESC LIMIT 1`
	err := r.db.GetContext(ctx, &m, query, codeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &m, err
}

// CountQueued 统计当前排队人数
func (r *MembershipRepository) CountQueued(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM memberships WHERE status = 'queued'`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

// ListQueued 按入队顺序获取排队中的成员
func (r *MembershipRepository) ListQueued(ctx context.Context, limit int) ([]model.Membership, error) {
	var members []model.Membership
	query := `SELECT * FROM memberships WHERE status = 'queued' ORDER BY id ASC LIMIT ?`
	err := r.db.SelectContext(ctx, &members, query, limit)
	return members, err
}

// AssignTeam 为成员分配Team并更新状态
func (r *MembershipRepository) AssignTeam(ctx context.Context, id, teamID uint64, status string) error {
	query := `
		UPDATE memberships
		SET team_id = ?, status = ?, queue_position = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, teamID, status, id)
	return err
}

// UpdateStatus 更新成员状态
func (r *MembershipRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	query := `UPDATE memberships SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

// RecomputeQueuePositions 队列变化后按入队顺序重排队位
func (r *MembershipRepository) RecomputeQueuePositions(ctx context.Context) error {
	// MySQL不允许UPDATE中直接子查询同表，借助用户变量重排
	query := `
		UPDATE memberships m
		JOIN (
			SELECT id, (@pos := @pos + 1) AS new_pos
			FROM memberships, (SELECT @pos := 0) AS init
			WHERE status = 'queued'
			ORDER BY id ASC
		) ranked ON ranked.id = m.id
		SET m.queue_position = ranked.new_pos, m.updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// ListByTeam 获取Team的全部成员
func (r *MembershipRepository) ListByTeam(ctx context.Context, teamID uint64) ([]model.Membership, error) {
	var members []model.Membership
	query := `SELECT * FROM memberships WHERE team_id = ? ORDER BY id ASC`
	err := r.db.SelectContext(ctx, &members, query, teamID)
	return members, err
}
