package model

import (
	"database/sql"
	"time"
)

// RedeemCode 兑换码模型
// 首次使用时绑定邮箱并根据有效天数计算绝对过期时间
type RedeemCode struct {
	ID            uint64         `db:"id" json:"id"`
	Code          string         `db:"code" json:"code"`
	BoundEmail    sql.NullString `db:"bound_email" json:"bound_email,omitempty"` // 首次使用前为空
	ValidityDays  int            `db:"validity_days" json:"validity_days"`
	MaxUses       int            `db:"max_uses" json:"max_uses"` // 0表示不限次数
	UsedCount     int            `db:"used_count" json:"used_count"`
	RebindCount   int            `db:"rebind_count" json:"rebind_count"`
	ExpiresAt     sql.NullTime   `db:"expires_at" json:"expires_at,omitempty"` // 首次使用后写入
	DistributorID sql.NullInt64  `db:"distributor_id" json:"distributor_id,omitempty"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// IsBound 兑换码是否已绑定邮箱
func (c *RedeemCode) IsBound() bool {
	return c.BoundEmail.Valid && c.BoundEmail.String != ""
}

// IsExpired 兑换码是否已过期（未绑定的码不存在过期时间）
func (c *RedeemCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt.Valid && now.After(c.ExpiresAt.Time)
}

// RemainingDays 剩余有效天数，向上取整，未绑定时返回有效期总天数
func (c *RedeemCode) RemainingDays(now time.Time) int {
	if !c.ExpiresAt.Valid {
		return c.ValidityDays
	}
	remaining := c.ExpiresAt.Time.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	return days
}
