package service

import (
	"github.com/samber/lo"

	"taskup/internal/dto"
	"taskup/internal/model"
	"taskup/internal/repository"
)

type UserService interface {
	Search(query *dto.UserSearchQuery) ([]*dto.UserSimpleResponse, error)
	GetByID(id string) (*dto.UserResponse, error)
	Update(userId string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Search(query *dto.UserSearchQuery) ([]*dto.UserSimpleResponse, error) {
	users, err := s.repo.Search(query.Keyword, query.Limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u *model.User, _ int) *dto.UserSimpleResponse {
		return dto.ToUserSimpleResponse(u)
	}), nil
}

func (s *userService) GetByID(id string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

func (s *userService) Update(userId string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(userId)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.JobTitle != nil {
		user.JobTitle = req.JobTitle
	}
	if req.ProfileUrl != nil {
		user.ProfileUrl = req.ProfileUrl
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}
