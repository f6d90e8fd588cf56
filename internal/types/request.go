package types

// CouponCheckRequest 优惠码校验请求
type CouponCheckRequest struct {
	Code   string `json:"code" binding:"required"`
	PlanID uint64 `json:"plan_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	PlanID     uint64 `json:"plan_id" binding:"required"`
	Email      string `json:"email" binding:"required"`
	PayType    string `json:"pay_type" binding:"required,oneof=alipay wxpay"`
	CouponCode string `json:"coupon_code"`
}

// DirectRedeemRequest 兑换请求
type DirectRedeemRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// RebindRequest 换车请求，email可选（部分前端仅传code）
type RebindRequest struct {
	Code  string `json:"code" binding:"required"`
	Email string `json:"email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PlanUpsertRequest 套餐创建/更新请求
type PlanUpsertRequest struct {
	Name          string `json:"name" binding:"required"`
	Price         int64  `json:"price" binding:"required"`
	OriginalPrice int64  `json:"original_price"`
	ValidityDays  int    `json:"validity_days" binding:"required"`
	Description   string `json:"description"`
	Features      string `json:"features"`
	IsRecommended bool   `json:"is_recommended"`
	IsActive      *bool  `json:"is_active"`
}

// CouponUpsertRequest 优惠券创建/更新请求
type CouponUpsertRequest struct {
	Code          string `json:"code" binding:"required"`
	DiscountType  string `json:"discount_type" binding:"required,oneof=fixed percentage"`
	DiscountValue int64  `json:"discount_value" binding:"required"`
	MinAmount     int64  `json:"min_amount"`
	MaxDiscount   int64  `json:"max_discount"`
	MaxUses       int    `json:"max_uses"`
	ValidFrom     string `json:"valid_from"`  // RFC3339，可为空
	ValidUntil    string `json:"valid_until"` // RFC3339，可为空
	PlanIDs       string `json:"plan_ids"`    // 逗号分隔，空表示全部套餐
	IsActive      *bool  `json:"is_active"`
}

// BatchCreateCodesRequest 批量生成兑换码请求
type BatchCreateCodesRequest struct {
	Count         int   `json:"count" binding:"required,min=1,max=500"`
	ValidityDays  int   `json:"validity_days" binding:"required"`
	MaxUses       int   `json:"max_uses"`
	DistributorID int64 `json:"distributor_id"` // 0表示不归属分销商
}

// CreateDistributorRequest 创建分销商请求
type CreateDistributorRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required"`
	Remark   string `json:"remark"`
}

// CreateTeamRequest 创建Team请求
type CreateTeamRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}
