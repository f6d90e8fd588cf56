package repository

import (
	"context"
	"database/sql"
	"strings"
	"teamshop/internal/model"
	"time"

	"github.com/jmoiron/sqlx"
)

// RedeemCodeRepository 兑换码存储库
type RedeemCodeRepository struct {
	db *sqlx.DB
}

// NewRedeemCodeRepository 创建兑换码存储库
func NewRedeemCodeRepository(db *sqlx.DB) *RedeemCodeRepository {
	return &RedeemCodeRepository{db: db}
}

// GetByCode 根据兑换码获取记录
func (r *RedeemCodeRepository) GetByCode(ctx context.Context, code string) (*model.RedeemCode, error) {
	var rc model.RedeemCode
	query := `SELECT * FROM redeem_codes WHERE code = ?`
	err := r.db.GetContext(ctx, &rc, query, strings.ToUpper(code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &rc, err
}

// GetByID 根据ID获取记录
func (r *RedeemCodeRepository) GetByID(ctx context.Context, id uint64) (*model.RedeemCode, error) {
	var rc model.RedeemCode
	query := `SELECT * FROM redeem_codes WHERE id = ?`
	err := r.db.GetContext(ctx, &rc, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &rc, err
}

// GetByBoundEmail 根据绑定邮箱获取记录
func (r *RedeemCodeRepository) GetByBoundEmail(ctx context.Context, email string) (*model.RedeemCode, error) {
	var rc model.RedeemCode
	query := `SELECT * FROM redeem_codes WHERE bound_email = ? ORDER BY id DESC LIMIT 1`
	err := r.db.GetContext(ctx, &rc, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &rc, err
}

// CreateCode 创建单个兑换码
func (r *RedeemCodeRepository) CreateCode(ctx context.Context, rc *model.RedeemCode) error {
	query := `
		INSERT INTO redeem_codes (
			code, validity_days, max_uses, used_count, rebind_count,
			distributor_id, is_active
		) VALUES (?, ?, ?, 0, 0, ?, ?)
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		strings.ToUpper(rc.Code),
		rc.ValidityDays,
		rc.MaxUses,
		rc.DistributorID,
		rc.IsActive,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err == nil {
		rc.ID = uint64(id)
	}
	return nil
}

// BatchCreateCodes 在一个事务中批量创建兑换码
func (r *RedeemCodeRepository) BatchCreateCodes(ctx context.Context, codes []*model.RedeemCode) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO redeem_codes (
			code, validity_days, max_uses, used_count, rebind_count,
			distributor_id, is_active
		) VALUES (?, ?, ?, 0, 0, ?, ?)
	`
	for _, rc := range codes {
		if _, err := tx.ExecContext(ctx, query,
			strings.ToUpper(rc.Code), rc.ValidityDays, rc.MaxUses, rc.DistributorID, rc.IsActive); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BindEmail 首次使用时绑定邮箱并写入绝对过期时间
// 条件更新保证只有未绑定的码可以被绑定
func (r *RedeemCodeRepository) BindEmail(ctx context.Context, code, email string, expiresAt time.Time) (bool, error) {
	query := `
		UPDATE redeem_codes
		SET bound_email = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE code = ? AND bound_email IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, email, expiresAt, strings.ToUpper(code))
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// IncrementUsage 核销一次兑换码
func (r *RedeemCodeRepository) IncrementUsage(ctx context.Context, code string) (bool, error) {
	query := `
		UPDATE redeem_codes
		SET used_count = used_count + 1, updated_at = CURRENT_TIMESTAMP
		WHERE code = ? AND (max_uses = 0 OR used_count < max_uses)
	`
	result, err := r.db.ExecContext(ctx, query, strings.ToUpper(code))
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// IncrementRebind 增加一次换车计数
func (r *RedeemCodeRepository) IncrementRebind(ctx context.Context, code string) error {
	query := `
		UPDATE redeem_codes
		SET rebind_count = rebind_count + 1, updated_at = CURRENT_TIMESTAMP
		WHERE code = ?
	`
	_, err := r.db.ExecContext(ctx, query, strings.ToUpper(code))
	return err
}

// SetCodeActive 启用/停用兑换码
func (r *RedeemCodeRepository) SetCodeActive(ctx context.Context, code string, active bool) error {
	query := `UPDATE redeem_codes SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE code = ?`
	_, err := r.db.ExecContext(ctx, query, active, strings.ToUpper(code))
	return err
}

// ListByDistributor 分页获取分销商名下的兑换码
func (r *RedeemCodeRepository) ListByDistributor(ctx context.Context, distributorID uint64, page, pageSize int) ([]model.RedeemCode, int, error) {
	countQuery := `SELECT COUNT(*) FROM redeem_codes WHERE distributor_id = ?`
	var total int
	err := r.db.GetContext(ctx, &total, countQuery, distributorID)
	if err != nil {
		return nil, 0, err
	}

	if total == 0 {
		return []model.RedeemCode{}, 0, nil
	}

	offset := (page - 1) * pageSize
	var codes []model.RedeemCode
	query := `SELECT * FROM redeem_codes WHERE distributor_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`
	err = r.db.SelectContext(ctx, &codes, query, distributorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	return codes, total, nil
}

// DistributorStats 分销商兑换码统计
type DistributorStats struct {
	TotalCodes     int `db:"total_codes" json:"total_codes"`
	ActivatedCodes int `db:"activated_codes" json:"activated_codes"`
}

// GetDistributorStats 统计分销商名下兑换码的发放与激活数量
func (r *RedeemCodeRepository) GetDistributorStats(ctx context.Context, distributorID uint64) (*DistributorStats, error) {
	var stats DistributorStats
	query := `
		SELECT COUNT(*) AS total_codes,
			COUNT(bound_email) AS activated_codes
		FROM redeem_codes WHERE distributor_id = ?
	`
	err := r.db.GetContext(ctx, &stats, query, distributorID)
	return &stats, err
}
