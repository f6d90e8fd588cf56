package handler

import (
	"errors"
	"strconv"

	"teamshop/internal/service"

	"github.com/gin-gonic/gin"
)

// businessErrors 预期内的业务拒绝，以400码和原始消息返回给前端
var businessErrors = []error{
	service.ErrPlanNotFound,
	service.ErrInvalidEmail,
	service.ErrPayTypeInvalid,
	service.ErrPayTypeDisabled,
	service.ErrCouponRejected,
	service.ErrOrderNotFound,
	service.ErrCodeNotFound,
	service.ErrCodeInactive,
	service.ErrCodeExpired,
	service.ErrCodeExhausted,
	service.ErrCodeBoundConflict,
	service.ErrCodeNotBound,
	service.ErrRebindCapReached,
	service.ErrNoAvailableSeat,
	service.ErrLoginFailed,
	service.ErrAccountDisabled,
}

// businessMessage 判断错误是否为业务拒绝，并返回可直接展示的消息
func businessMessage(err error) (string, bool) {
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return err.Error(), true
		}
	}
	return "", false
}

// parseIntQuery 解析整型查询参数，非法时返回默认值
func parseIntQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
