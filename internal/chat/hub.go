package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskup/internal/dto"
	"taskup/internal/pkg/logger"
	"taskup/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// Hub 项目聊天室集线器。
// 每个项目一个房间, 消息先持久化再广播给房间内全部连接。
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}

	chatService service.ChatService
	historySize int
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	projectId string
	userId    string
	send      chan *dto.ChatMessageResponse
}

func NewHub(chatService service.ChatService, historySize int) *Hub {
	if historySize <= 0 {
		historySize = 50
	}
	return &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		chatService: chatService,
		historySize: historySize,
	}
}

// Join 接管一条已升级的websocket连接。
// 接入时回放最近的历史消息, 之后进入读写循环, 直到连接关闭。
func (h *Hub) Join(conn *websocket.Conn, projectId, userId string) {
	c := &client{
		hub:       h,
		conn:      conn,
		projectId: projectId,
		userId:    userId,
		send:      make(chan *dto.ChatMessageResponse, 32),
	}

	h.register(c)

	// 历史直接写连接, 此时还没有并发写者, 回放条数不受发送缓冲限制
	history, err := h.chatService.History(projectId, userId, h.historySize)
	if err != nil {
		logger.Warn("回放聊天历史失败", zap.String("project_id", projectId), zap.Error(err))
	} else {
		for _, msg := range history {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.unregister(c)
				_ = conn.Close()
				return
			}
		}
	}

	go c.writeLoop()
	c.readLoop()
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.projectId]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[c.projectId] = room
	}
	room[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.projectId]
	if !ok {
		return
	}
	if _, ok := room[c]; ok {
		delete(room, c)
		close(c.send)
	}
	if len(room) == 0 {
		delete(h.rooms, c.projectId)
	}
}

// broadcast 向项目房间内全部连接投递消息, 投递不动阻塞的慢连接
func (h *Hub) broadcast(projectId string, msg *dto.ChatMessageResponse) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[projectId] {
		select {
		case c.send <- msg:
		default:
			// 发送缓冲已满, 丢弃该连接的这条消息
		}
	}
}

// CloseProject 项目删除后踢掉房间内全部连接
func (h *Hub) CloseProject(projectId string) {
	h.mu.Lock()
	room := h.rooms[projectId]
	delete(h.rooms, projectId)
	h.mu.Unlock()

	for c := range room {
		close(c.send)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "项目已删除"),
			time.Now().Add(writeWait))
		_ = c.conn.Close()
	}
}

func (c *client) readLoop() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var inbound dto.ChatInbound
		if err := c.conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("聊天连接异常断开", zap.String("user_id", c.userId), zap.Error(err))
			}
			return
		}
		if inbound.Content == "" {
			continue
		}

		msg, err := c.hub.chatService.SaveMessage(c.projectId, c.userId, inbound.Content)
		if err != nil {
			// 权限随项目状态变化, 保存失败则断开连接
			logger.Warn("保存聊天消息失败",
				zap.String("project_id", c.projectId),
				zap.String("user_id", c.userId),
				zap.Error(err))
			return
		}

		c.hub.broadcast(c.projectId, msg)
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
