package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskup/internal/api/middleware"
	"taskup/internal/chat"
	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/pkg/jwt"
	"taskup/internal/pkg/logger"
	"taskup/internal/service"
	"taskup/pkg/constants"
	"taskup/pkg/responses"
	"taskup/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域交给CORS中间件与反向代理处理
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ChatHandler struct {
	hub         *chat.Hub
	chatService service.ChatService
	access      *lifecycle.AccessEngine
}

func NewChatHandler(hub *chat.Hub, chatService service.ChatService, access *lifecycle.AccessEngine) *ChatHandler {
	return &ChatHandler{
		hub:         hub,
		chatService: chatService,
		access:      access,
	}
}

// Join 进入项目聊天室
// @Summary 升级为websocket并进入项目聊天室
// @Tags Chat
// @Param id path string true "项目ID"
// @Param token query string true "访问Token"
// @Router /api/v1/projects/{id}/chat [get]
func (h *ChatHandler) Join(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	// websocket握手无法带Authorization header, token走query参数
	token := c.Query("token")
	if token == "" {
		responses.ErrorWithCode(c, 401, "缺少Token")
		return
	}
	claims, err := jwt.ValidateToken(token)
	if err != nil || claims.Type != constants.JWTTypeAccess {
		responses.ErrorWithCode(c, 401, "无效的Token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket升级失败", zap.Error(err))
		return
	}

	// 升级后再做访问判定, 拒绝时走websocket关闭码
	if err := h.access.RequireAccess(param.ID, claims.UserID); err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "无项目访问权限"),
			time.Now().Add(5*time.Second))
		_ = conn.Close()
		return
	}

	h.hub.Join(conn, param.ID, claims.UserID)
}

// MarkRead 标记已读
// @Summary 将项目内他人发送的消息标记为已读
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/projects/{id}/chat/read [post]
func (h *ChatHandler) MarkRead(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.chatService.MarkRead(param.ID, middleware.CurrentUserID(c)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "消息已标记为已读", nil)
}
