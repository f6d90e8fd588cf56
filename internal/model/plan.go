package model

import (
	"database/sql"
	"time"
)

// Plan 套餐模型，价格单位为分
type Plan struct {
	ID            uint64        `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Price         int64         `db:"price" json:"price"`
	OriginalPrice sql.NullInt64 `db:"original_price" json:"original_price,omitempty"`
	ValidityDays  int           `db:"validity_days" json:"validity_days"`
	Description   string        `db:"description" json:"description"`
	Features      string        `db:"features" json:"features"` // 逗号分隔的卖点列表
	IsRecommended bool          `db:"is_recommended" json:"is_recommended"`
	IsActive      bool          `db:"is_active" json:"is_active"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
