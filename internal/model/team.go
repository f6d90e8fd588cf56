package model

import (
	"time"
)

// Team 座位池模型，一个Team对应一个ChatGPT Team账号
type Team struct {
	ID        uint64    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"` // 可售座位数
	IsActive  bool      `db:"is_active" json:"is_active"` // 封禁的Team置为false
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
