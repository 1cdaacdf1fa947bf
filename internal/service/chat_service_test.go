package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskup/internal/model"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

func buildChatService(t *testing.T) (ChatService, *testFixture) {
	t.Helper()
	f := newFixture(t)
	svc := NewChatService(
		repository.NewChatRepository(f.db),
		repository.NewUserRepository(f.db),
		f.access,
	)
	return svc, f
}

func TestChatSaveMessage(t *testing.T) {
	svc, f := buildChatService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	msg, err := svc.SaveMessage(project.ID, f.member.ID, "早上好")
	require.NoError(t, err)
	assert.Equal(t, "早上好", msg.Content)
	assert.Equal(t, f.member.ID, msg.UserID)
	require.NotNil(t, msg.User)
	assert.Equal(t, f.member.ID, msg.User.ID)

	// 外人不能发消息
	_, err = svc.SaveMessage(project.ID, f.outsider.ID, "蹭个热度")
	assert.ErrorIs(t, err, pkgErrors.ErrNoProjectAccess)
}

func TestChatHistoryOrderAndLimit(t *testing.T) {
	svc, f := buildChatService(t)
	project := newTestProject(t, f.db, f.owner.ID)

	for i := 1; i <= 5; i++ {
		_, err := svc.SaveMessage(project.ID, f.owner.ID, fmt.Sprintf("消息%d", i))
		require.NoError(t, err)
	}

	// 限流时保留最近的消息, 且按发送时间升序返回
	history, err := svc.History(project.ID, f.owner.ID, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "消息3", history[0].Content)
	assert.Equal(t, "消息5", history[2].Content)

	_, err = svc.History(project.ID, f.outsider.ID, 3)
	assert.ErrorIs(t, err, pkgErrors.ErrNoProjectAccess)
}

func TestChatMarkRead(t *testing.T) {
	svc, f := buildChatService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	_, err := svc.SaveMessage(project.ID, f.owner.ID, "所有者的消息")
	require.NoError(t, err)
	_, err = svc.SaveMessage(project.ID, f.member.ID, "成员的消息")
	require.NoError(t, err)

	_, err = svc.History(project.ID, f.member.ID, 10)
	require.NoError(t, err)

	// 外人不能标记已读
	assert.ErrorIs(t, svc.MarkRead(project.ID, f.outsider.ID), pkgErrors.ErrNoProjectAccess)

	require.NoError(t, svc.MarkRead(project.ID, f.member.ID))

	// 只有他人的消息被标记, 自己发的保持未读状态
	var messages []*model.ChatMessage
	require.NoError(t, f.db.Order("sent_at").Find(&messages).Error)
	require.Len(t, messages, 2)
	assert.True(t, messages[0].IsRead, "他人消息应被标记已读")
	assert.False(t, messages[1].IsRead, "自己的消息不应被标记")
}
