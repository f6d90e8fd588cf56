package repository

import (
	"context"
	"database/sql"
	"teamshop/internal/model"

	"github.com/jmoiron/sqlx"
)

// DistributorRepository 分销商存储库
type DistributorRepository struct {
	db *sqlx.DB
}

// NewDistributorRepository 创建分销商存储库
func NewDistributorRepository(db *sqlx.DB) *DistributorRepository {
	return &DistributorRepository{db: db}
}

// GetByUsername 根据用户名获取分销商
func (r *DistributorRepository) GetByUsername(ctx context.Context, username string) (*model.Distributor, error) {
	var d model.Distributor
	query := `SELECT * FROM distributors WHERE username = ?`
	err := r.db.GetContext(ctx, &d, query, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &d, err
}

// GetByID 根据ID获取分销商
func (r *DistributorRepository) GetByID(ctx context.Context, id uint64) (*model.Distributor, error) {
	var d model.Distributor
	query := `SELECT * FROM distributors WHERE id = ?`
	err := r.db.GetContext(ctx, &d, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &d, err
}

// CreateDistributor 创建分销商
func (r *DistributorRepository) CreateDistributor(ctx context.Context, d *model.Distributor) error {
	query := `
		INSERT INTO distributors (username, password, email, remark, is_active)
		VALUES (?, ?, ?, ?, 1)
	`
	result, err := r.db.ExecContext(ctx, query, d.Username, d.Password, d.Email, d.Remark)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err == nil {
		d.ID = uint64(id)
	}
	return nil
}

// ListDistributors 分页获取分销商列表
func (r *DistributorRepository) ListDistributors(ctx context.Context, page, pageSize int) ([]model.Distributor, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM distributors`); err != nil {
		return nil, 0, err
	}

	if total == 0 {
		return []model.Distributor{}, 0, nil
	}

	offset := (page - 1) * pageSize
	var distributors []model.Distributor
	query := `SELECT * FROM distributors ORDER BY id DESC LIMIT ? OFFSET ?`
	err := r.db.SelectContext(ctx, &distributors, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	return distributors, total, nil
}

// SetDistributorActive 启用/禁用分销商
func (r *DistributorRepository) SetDistributorActive(ctx context.Context, id uint64, active bool) error {
	query := `UPDATE distributors SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, active, id)
	return err
}
