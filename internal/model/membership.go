package model

import (
	"database/sql"
	"time"
)

// 成员状态
const (
	MembershipStatusPending  = "pending"  // 邀请已发出，等待接受
	MembershipStatusAccepted = "accepted" // 已接受邀请
	MembershipStatusFailed   = "failed"   // 邀请发送失败
	MembershipStatusQueued   = "queued"   // 无空位，排队中
)

// Membership 成员模型，一条记录对应一个邮箱在某个Team中的座位
type Membership struct {
	ID            uint64        `db:"id" json:"id"`
	Email         string        `db:"email" json:"email"`
	TeamID        sql.NullInt64 `db:"team_id" json:"team_id,omitempty"` // 排队中的成员尚未分配Team
	RedeemCodeID  uint64        `db:"redeem_code_id" json:"redeem_code_id"`
	Status        string        `db:"status" json:"status"`
	QueuePosition int           `db:"queue_position" json:"queue_position"` // 仅排队状态有意义
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
