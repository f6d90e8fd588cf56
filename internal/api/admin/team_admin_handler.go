package admin

import (
	"net/http"
	"strconv"
	"teamshop/internal/service"
	"teamshop/internal/types"
	"teamshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TeamAdminHandler 管理员Team处理器
type TeamAdminHandler struct {
	teamService   *service.TeamService
	redeemService *service.RedeemService
	logger        *logger.Logger
}

// NewTeamAdminHandler 创建管理员Team处理器
func NewTeamAdminHandler(teamService *service.TeamService, redeemService *service.RedeemService, logger *logger.Logger) *TeamAdminHandler {
	return &TeamAdminHandler{
		teamService:   teamService,
		redeemService: redeemService,
		logger:        logger,
	}
}

// ListTeams 获取Team列表及座位占用
func (h *TeamAdminHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams(c.Request.Context())
	if err != nil {
		h.logger.Error("获取Team列表失败", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "获取Team列表失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":  200,
		"msg":   "获取Team列表成功",
		"teams": teams,
	})
}

// CreateTeam 创建Team
func (h *TeamAdminHandler) CreateTeam(c *gin.Context) {
	var req types.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), req.Name, req.Capacity)
	if err != nil {
		h.logger.Error("创建Team失败", "name", req.Name, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "创建Team失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "创建Team成功",
		"team": team,
	})
}

// SetTeamActive 启用/封禁Team
// 封禁后该Team的成员可免费换车，新空位随之释放，触发排队提升
func (h *TeamAdminHandler) SetTeamActive(c *gin.Context) {
	var req struct {
		ID     uint64 `json:"id" binding:"required"`
		Active *bool  `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的请求参数",
		})
		return
	}

	if err := h.teamService.SetTeamActive(c.Request.Context(), req.ID, *req.Active); err != nil {
		h.logger.Error("更新Team状态失败", "team_id", req.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "更新Team状态失败",
		})
		return
	}

	// 恢复启用的Team可能释放座位，立即尝试提升排队成员
	if *req.Active {
		if err := h.redeemService.DrainQueue(c.Request.Context()); err != nil {
			h.logger.Error("提升排队成员失败", "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "更新Team状态成功",
	})
}

// ListMembers 获取Team成员列表
func (h *TeamAdminHandler) ListMembers(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"code": 400,
			"msg":  "无效的TeamID",
		})
		return
	}

	members, err := h.teamService.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		h.logger.Error("获取Team成员失败", "team_id", teamID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"code": 500,
			"msg":  "获取Team成员失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"msg":     "获取Team成员成功",
		"members": members,
	})
}
