package service

import (
	"time"

	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

type ScopeService interface {
	Create(projectId, userId string, req *dto.CreateScopeRequest) (*dto.ScopeResponse, error)
	GetByProject(projectId, userId string) (*dto.ScopeResponse, error)
	Update(projectId, userId string, req *dto.UpdateScopeRequest) (*dto.ScopeResponse, error)
}

type scopeService struct {
	repo   repository.ScopeRepository
	access *lifecycle.AccessEngine
}

func NewScopeService(repo repository.ScopeRepository, access *lifecycle.AccessEngine) ScopeService {
	return &scopeService{repo: repo, access: access}
}

// Create 创建项目范围, 每个项目至多一份, 仅所有者可调用
func (s *scopeService) Create(projectId, userId string, req *dto.CreateScopeRequest) (*dto.ScopeResponse, error) {
	if err := s.access.RequireOwner(projectId, userId); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByProject(projectId)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgErrors.New(pkgErrors.CodeConflict, "项目范围已存在")
	}

	if err := validateScopeDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	scope := &model.Scope{
		ProjectId:           projectId,
		IncludedItems:       req.IncludedItems,
		ExcludedItems:       req.ExcludedItems,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		ManagementPlan:      req.ManagementPlan,
		RequirementDocument: req.RequirementDocument,
		ScopeStatement:      req.ScopeStatement,
		WorkBreakdown:       req.WorkBreakdown,
	}
	if err := s.repo.Create(scope); err != nil {
		return nil, err
	}

	return dto.ToScopeResponse(scope), nil
}

func (s *scopeService) GetByProject(projectId, userId string) (*dto.ScopeResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	scope, err := s.repo.FindByProject(projectId)
	if err != nil {
		return nil, err
	}
	return dto.ToScopeResponse(scope), nil
}

// Update 更新项目范围, 仅所有者可调用
func (s *scopeService) Update(projectId, userId string, req *dto.UpdateScopeRequest) (*dto.ScopeResponse, error) {
	if err := s.access.RequireOwner(projectId, userId); err != nil {
		return nil, err
	}

	scope, err := s.repo.FindByProject(projectId)
	if err != nil {
		return nil, err
	}

	if req.IncludedItems != nil {
		scope.IncludedItems = req.IncludedItems
	}
	if req.ExcludedItems != nil {
		scope.ExcludedItems = req.ExcludedItems
	}
	if req.StartDate != nil {
		scope.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		scope.EndDate = req.EndDate
	}
	if err := validateScopeDates(scope.StartDate, scope.EndDate); err != nil {
		return nil, err
	}

	if req.ManagementPlan != nil {
		scope.ManagementPlan = req.ManagementPlan
	}
	if req.RequirementDocument != nil {
		scope.RequirementDocument = req.RequirementDocument
	}
	if req.ScopeStatement != nil {
		scope.ScopeStatement = req.ScopeStatement
	}
	if req.WorkBreakdown != nil {
		scope.WorkBreakdown = req.WorkBreakdown
	}

	if err := s.repo.Update(scope); err != nil {
		return nil, err
	}
	return dto.ToScopeResponse(scope), nil
}

func validateScopeDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return pkgErrors.New(pkgErrors.CodeValidationError, "结束日期不能早于开始日期")
	}
	return nil
}
