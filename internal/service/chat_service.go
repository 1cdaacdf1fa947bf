package service

import (
	"github.com/samber/lo"

	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/repository"
)

type ChatService interface {
	// SaveMessage 持久化消息并返回带用户信息的响应帧
	SaveMessage(projectId, userId, content string) (*dto.ChatMessageResponse, error)
	History(projectId, userId string, limit int) ([]*dto.ChatMessageResponse, error)
	MarkRead(projectId, userId string) error
}

type chatService struct {
	repo     repository.ChatRepository
	userRepo repository.UserRepository
	access   *lifecycle.AccessEngine
}

func NewChatService(repo repository.ChatRepository, userRepo repository.UserRepository, access *lifecycle.AccessEngine) ChatService {
	return &chatService{
		repo:     repo,
		userRepo: userRepo,
		access:   access,
	}
}

func (s *chatService) SaveMessage(projectId, userId, content string) (*dto.ChatMessageResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		ProjectId: projectId,
		UserId:    userId,
		Content:   content,
	}
	if err := s.repo.Create(message); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.FindByID(userId); err == nil {
		message.User = user
	}
	return dto.ToChatMessageResponse(message), nil
}

func (s *chatService) History(projectId, userId string, limit int) ([]*dto.ChatMessageResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListRecent(projectId, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(messages, func(m *model.ChatMessage, _ int) *dto.ChatMessageResponse {
		return dto.ToChatMessageResponse(m)
	}), nil
}

func (s *chatService) MarkRead(projectId, userId string) error {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return err
	}
	return s.repo.MarkRead(projectId, userId)
}
