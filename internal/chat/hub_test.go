package chat

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskup/internal/dto"
	"taskup/internal/pkg/config"
	"taskup/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(&config.LogConfig{Level: "error", Format: "console", Output: "stdout"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubChatService 固定历史、回显消息的内存聊天服务
type stubChatService struct {
	mu      sync.Mutex
	history []*dto.ChatMessageResponse
	saved   []string
}

func (s *stubChatService) SaveMessage(projectId, userId, content string) (*dto.ChatMessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, content)
	return &dto.ChatMessageResponse{
		ProjectID: projectId,
		UserID:    userId,
		Content:   content,
		SentAt:    time.Now(),
	}, nil
}

func (s *stubChatService) History(projectId, userId string, limit int) ([]*dto.ChatMessageResponse, error) {
	return s.history, nil
}

func (s *stubChatService) MarkRead(projectId, userId string) error {
	return nil
}

var testUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// startChatServer 起一个把连接交给hub的websocket测试服务
func startChatServer(t *testing.T, hub *Hub, projectId, userId string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Join(conn, projectId, userId)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// waitRoomSize 等待房间内连接数达到期望值
func waitRoomSize(t *testing.T, hub *Hub, projectId string, size int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		n := len(hub.rooms[projectId])
		hub.mu.RUnlock()
		if n == size {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("房间 %s 连接数未达到 %d", projectId, size)
}

func TestJoinReplaysFullHistory(t *testing.T) {
	// 历史条数大于客户端发送缓冲, 回放不得依赖缓冲容量
	const historySize = 50

	stub := &stubChatService{}
	for i := 1; i <= historySize; i++ {
		stub.history = append(stub.history, &dto.ChatMessageResponse{
			ProjectID: "p1",
			UserID:    "u1",
			Content:   fmt.Sprintf("历史消息%d", i),
		})
	}

	hub := NewHub(stub, historySize)
	conn := startChatServer(t, hub, "p1", "u1")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for i := 1; i <= historySize; i++ {
		var msg dto.ChatMessageResponse
		require.NoError(t, conn.ReadJSON(&msg), "第%d条历史消息未送达", i)
		assert.Equal(t, fmt.Sprintf("历史消息%d", i), msg.Content)
	}
}

func TestBroadcastReachesRoomPeers(t *testing.T) {
	stub := &stubChatService{}
	hub := NewHub(stub, 10)

	connA := startChatServer(t, hub, "p1", "ua")
	connB := startChatServer(t, hub, "p1", "ub")
	waitRoomSize(t, hub, "p1", 2)

	require.NoError(t, connA.WriteJSON(dto.ChatInbound{Content: "大家好"}))

	for _, conn := range []*websocket.Conn{connA, connB} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg dto.ChatMessageResponse
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "大家好", msg.Content)
		assert.Equal(t, "ua", msg.UserID)
	}
}

func TestCloseProjectEvictsRoom(t *testing.T) {
	stub := &stubChatService{}
	hub := NewHub(stub, 10)

	conn := startChatServer(t, hub, "p1", "u1")
	waitRoomSize(t, hub, "p1", 1)

	hub.CloseProject("p1")

	// 房间立即消失, 客户端读到连接终止
	hub.mu.RLock()
	_, ok := hub.rooms["p1"]
	hub.mu.RUnlock()
	assert.False(t, ok)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}
