package admin

import (
	"net/http"
	"teamshop/config"
	"teamshop/internal/auth"
	"teamshop/internal/constants"
	"teamshop/internal/types"
	"teamshop/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthAdminHandler 管理员认证处理器
// 管理员为单账号，凭据来自环境配置而非数据库
type AuthAdminHandler struct {
	adminCfg    config.AdminConfig
	tokenIssuer *auth.TokenIssuer
	logger      *logger.Logger
}

// NewAuthAdminHandler 创建管理员认证处理器
func NewAuthAdminHandler(adminCfg config.AdminConfig, tokenIssuer *auth.TokenIssuer, logger *logger.Logger) *AuthAdminHandler {
	return &AuthAdminHandler{
		adminCfg:    adminCfg,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// Login 管理员登录
func (h *AuthAdminHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  constants.ErrInvalidParams,
		})
		return
	}

	if req.Username != h.adminCfg.Username {
		c.JSON(http.StatusOK, gin.H{
			"code": 401,
			"msg":  constants.ErrPasswordIncorrect,
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.adminCfg.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.Warn("管理员登录失败", "username", req.Username, "ip", c.ClientIP())
		c.JSON(http.StatusOK, gin.H{
			"code": 401,
			"msg":  constants.ErrPasswordIncorrect,
		})
		return
	}

	token, err := h.tokenIssuer.Issue(0, auth.RoleAdmin)
	if err != nil {
		h.logger.Error("签发管理员Token失败", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  constants.ErrInternalServer,
		})
		return
	}

	h.logger.Info("管理员登录成功", "ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"code":  200,
		"msg":   constants.SuccessLogin,
		"token": token,
	})
}
