package constants

// 通用错误消息
const (
	// 认证相关错误
	ErrUnauthorized           = "未授权，请先登录"
	ErrInvalidToken           = "无效的Token"
	ErrInsufficientPermission = "权限不足"
	ErrAccountDisabled        = "账号已被禁用"
	ErrPasswordIncorrect      = "用户名或密码错误"

	// 参数相关错误
	ErrInvalidParams = "参数错误"
	ErrInvalidEmail  = "邮箱格式错误"
	ErrInvalidRequest = "无效请求格式"

	// 套餐相关错误
	ErrPlanNotFound = "套餐不存在或已下架"

	// 优惠券相关错误
	ErrCouponNotFound   = "优惠码不存在"
	ErrCouponInactive   = "优惠码已停用"
	ErrCouponExpired    = "优惠码不在有效期内"
	ErrCouponExhausted  = "优惠码已被用完"
	ErrCouponMinAmount  = "订单金额未达到优惠码使用门槛"
	ErrCouponPlanScope  = "优惠码不适用于该套餐"

	// 订单相关错误
	ErrOrderNotFound    = "订单不存在"
	ErrOrderNoEmpty     = "订单号不能为空"
	ErrPayTypeInvalid   = "不支持的支付方式"
	ErrPayTypeDisabled  = "该支付方式暂未开放"

	// 兑换码相关错误
	ErrCodeNotFound      = "兑换码不存在"
	ErrCodeInactive      = "兑换码已被停用"
	ErrCodeExpired       = "兑换码已过期"
	ErrCodeExhausted     = "兑换码使用次数已用完"
	ErrCodeBoundConflict = "兑换码已绑定其他邮箱"
	ErrCodeNotBound      = "兑换码尚未使用，无法换车"
	ErrRebindNotAllowed  = "当前状态不允许换车"
	ErrRebindCapReached  = "换车次数已达上限"
	ErrNoAvailableSeat   = "暂无可用座位"

	// 系统错误
	ErrInternalServer       = "服务器内部错误"
	ErrOperationTooFrequent = "请求过于频繁，请稍后重试"
)

// 成功消息
const (
	SuccessLogin  = "登录成功"
	SuccessCreate = "创建成功"
	SuccessUpdate = "更新成功"
	SuccessDelete = "删除成功"
	SuccessGet    = "获取成功"
)
