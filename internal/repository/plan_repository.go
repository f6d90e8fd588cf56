package repository

import (
	"context"
	"database/sql"
	"teamshop/internal/model"

	"github.com/jmoiron/sqlx"
)

// PlanRepository 套餐存储库
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository 创建套餐存储库
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// GetActivePlans 获取所有上架套餐
func (r *PlanRepository) GetActivePlans(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	query := `SELECT * FROM plans WHERE is_active = 1 ORDER BY price ASC`
	err := r.db.SelectContext(ctx, &plans, query)
	return plans, err
}

// GetPlanByID 根据ID获取套餐
func (r *PlanRepository) GetPlanByID(ctx context.Context, id uint64) (*model.Plan, error) {
	var plan model.Plan
	query := `SELECT * FROM plans WHERE id = ?`
	err := r.db.GetContext(ctx, &plan, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &plan, err
}

// ListPlans 分页获取全部套餐（含下架）
func (r *PlanRepository) ListPlans(ctx context.Context, page, pageSize int) ([]model.Plan, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM plans`); err != nil {
		return nil, 0, err
	}

	if total == 0 {
		return []model.Plan{}, 0, nil
	}

	offset := (page - 1) * pageSize
	var plans []model.Plan
	query := `SELECT * FROM plans ORDER BY id DESC LIMIT ? OFFSET ?`
	err := r.db.SelectContext(ctx, &plans, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

// CreatePlan 创建套餐
func (r *PlanRepository) CreatePlan(ctx context.Context, plan *model.Plan) error {
	query := `
		INSERT INTO plans (
			name, price, original_price, validity_days, description,
			features, is_recommended, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		plan.Name,
		plan.Price,
		plan.OriginalPrice,
		plan.ValidityDays,
		plan.Description,
		plan.Features,
		plan.IsRecommended,
		plan.IsActive,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err == nil {
		plan.ID = uint64(id)
	}
	return nil
}

// UpdatePlan 更新套餐
func (r *PlanRepository) UpdatePlan(ctx context.Context, plan *model.Plan) error {
	query := `
		UPDATE plans
		SET name = ?, price = ?, original_price = ?, validity_days = ?,
			description = ?, features = ?, is_recommended = ?, is_active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		plan.Name,
		plan.Price,
		plan.OriginalPrice,
		plan.ValidityDays,
		plan.Description,
		plan.Features,
		plan.IsRecommended,
		plan.IsActive,
		plan.ID,
	)
	return err
}

// SetPlanActive 上架/下架套餐
func (r *PlanRepository) SetPlanActive(ctx context.Context, id uint64, active bool) error {
	query := `UPDATE plans SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, active, id)
	return err
}
