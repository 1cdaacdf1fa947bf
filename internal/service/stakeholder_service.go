package service

import (
	"github.com/samber/lo"

	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

type StakeholderService interface {
	Create(projectId, userId string, req *dto.CreateStakeholderRequest) (*dto.StakeholderResponse, error)
	ListByProject(projectId, userId string) ([]*dto.StakeholderResponse, error)
	Update(stakeholderId, userId string, req *dto.UpdateStakeholderRequest) (*dto.StakeholderResponse, error)
	Delete(stakeholderId, userId string) error
}

type stakeholderService struct {
	repo     repository.StakeholderRepository
	userRepo repository.UserRepository
	access   *lifecycle.AccessEngine
}

func NewStakeholderService(
	repo repository.StakeholderRepository,
	userRepo repository.UserRepository,
	access *lifecycle.AccessEngine,
) StakeholderService {
	return &stakeholderService{
		repo:     repo,
		userRepo: userRepo,
		access:   access,
	}
}

// Create 创建干系人, 仅项目所有者可调用
// Percentage 越界在落库前拒绝
func (s *stakeholderService) Create(projectId, userId string, req *dto.CreateStakeholderRequest) (*dto.StakeholderResponse, error) {
	if err := s.access.RequireOwner(projectId, userId); err != nil {
		return nil, err
	}

	if err := validatePercentage(req.Percentage); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, err
	}

	stakeholder := &model.Stakeholder{
		ProjectId:  projectId,
		UserId:     req.UserID,
		Role:       req.Role,
		Percentage: req.Percentage,
	}
	if err := s.repo.Create(stakeholder); err != nil {
		return nil, err
	}

	return dto.ToStakeholderResponse(stakeholder), nil
}

func (s *stakeholderService) ListByProject(projectId, userId string) ([]*dto.StakeholderResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	stakeholders, err := s.repo.ListByProject(projectId)
	if err != nil {
		return nil, err
	}
	return lo.Map(stakeholders, func(st *model.Stakeholder, _ int) *dto.StakeholderResponse {
		return dto.ToStakeholderResponse(st)
	}), nil
}

// Update 更新干系人, 仅项目所有者可调用
func (s *stakeholderService) Update(stakeholderId, userId string, req *dto.UpdateStakeholderRequest) (*dto.StakeholderResponse, error) {
	stakeholder, err := s.repo.FindByID(stakeholderId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOwner(stakeholder.ProjectId, userId); err != nil {
		return nil, err
	}

	if req.Percentage != nil {
		if err := validatePercentage(*req.Percentage); err != nil {
			return nil, err
		}
		stakeholder.Percentage = *req.Percentage
	}
	if req.Role != nil {
		stakeholder.Role = req.Role
	}

	if err := s.repo.Update(stakeholder); err != nil {
		return nil, err
	}
	return dto.ToStakeholderResponse(stakeholder), nil
}

// Delete 软删除干系人, 仅项目所有者可调用
func (s *stakeholderService) Delete(stakeholderId, userId string) error {
	stakeholder, err := s.repo.FindByID(stakeholderId)
	if err != nil {
		return err
	}
	if err := s.access.RequireOwner(stakeholder.ProjectId, userId); err != nil {
		return err
	}

	return s.repo.MarkDeleted(stakeholderId)
}

func validatePercentage(p float64) error {
	if p < 0 || p > 100 {
		return pkgErrors.New(pkgErrors.CodeValidationError, "参与度百分比必须在0到100之间")
	}
	return nil
}
