package types

import "time"

// CouponCheckResult 优惠码校验结果
// valid=false 为业务性拒绝而非错误，message给出原因
type CouponCheckResult struct {
	Valid          bool   `json:"valid"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
	Message        string `json:"message,omitempty"`
}

// CreateOrderResult 创建订单结果
type CreateOrderResult struct {
	OrderNo        string    `json:"order_no"`
	Amount         int64     `json:"amount"`
	DiscountAmount int64     `json:"discount_amount"`
	FinalAmount    int64     `json:"final_amount"`
	PayURL         string    `json:"pay_url"`
	ExpireAt       time.Time `json:"expire_at"`
}

// 兑换结果状态
const (
	RedeemStateWaitingForSeat = "WAITING_FOR_SEAT"
)

// RedeemActivated 兑换成功结果（已分配座位并发出邀请）
type RedeemActivated struct {
	TeamName      string    `json:"team_name"`
	ExpiresAt     time.Time `json:"expires_at"`
	RemainingDays int       `json:"remaining_days"`
	IsFirstUse    bool      `json:"is_first_use"`
}

// RedeemQueued 兑换排队结果（暂无座位）
type RedeemQueued struct {
	QueuePosition int `json:"queue_position"`
}

// RedeemOutcome 兑换结果，Activated与Queued互斥，恰有一个非空
type RedeemOutcome struct {
	Activated *RedeemActivated
	Queued    *RedeemQueued
}

// CodeStatusResult 兑换码状态查询结果
type CodeStatusResult struct {
	Found         bool   `json:"found"`
	Email         string `json:"email,omitempty"`
	TeamName      string `json:"team_name,omitempty"`
	TeamActive    bool   `json:"team_active"`
	RemainingDays int    `json:"remaining_days"`
	CanRebind     bool   `json:"can_rebind"`
}

// RebindResult 换车结果
type RebindResult struct {
	NewTeamName string `json:"new_team_name"`
}

// PaymentConfigResult 支付配置
type PaymentConfigResult struct {
	PayTypes []string `json:"pay_types"`
	Notice   string   `json:"notice,omitempty"`
}
