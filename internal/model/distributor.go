package model

import (
	"time"
)

// Distributor 分销商模型
type Distributor struct {
	ID        uint64    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Password  string    `db:"password" json:"-"` // bcrypt哈希
	Email     string    `db:"email" json:"email"`
	Remark    string    `db:"remark" json:"remark"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
