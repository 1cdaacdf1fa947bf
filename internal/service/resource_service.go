package service

import (
	"github.com/samber/lo"

	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

type ResourceService interface {
	Create(projectId, userId string, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	ListByProject(projectId, userId string) ([]*dto.ResourceResponse, error)
	Update(resourceId, userId string, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error)
	Delete(resourceId, userId string) error
}

type resourceService struct {
	repo   repository.ResourceRepository
	access *lifecycle.AccessEngine
}

func NewResourceService(repo repository.ResourceRepository, access *lifecycle.AccessEngine) ResourceService {
	return &resourceService{repo: repo, access: access}
}

// Create 创建资源, 项目所有者与成员均可
func (s *resourceService) Create(projectId, userId string, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	if err := validateResourceAmounts(req.Total, req.Available); err != nil {
		return nil, err
	}

	resource := &model.Resource{
		ProjectId:   projectId,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Unit:        req.Unit,
		Total:       req.Total,
		Available:   req.Available,
	}
	if err := s.repo.Create(resource); err != nil {
		return nil, err
	}

	return dto.ToResourceResponse(resource), nil
}

func (s *resourceService) ListByProject(projectId, userId string) ([]*dto.ResourceResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	resources, err := s.repo.ListByProject(projectId)
	if err != nil {
		return nil, err
	}
	return lo.Map(resources, func(r *model.Resource, _ int) *dto.ResourceResponse {
		return dto.ToResourceResponse(r)
	}), nil
}

func (s *resourceService) Update(resourceId, userId string, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	resource, err := s.repo.FindByID(resourceId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(resource.ProjectId, userId); err != nil {
		return nil, err
	}

	if req.Name != nil {
		resource.Name = *req.Name
	}
	if req.Type != nil {
		resource.Type = *req.Type
	}
	if req.Description != nil {
		resource.Description = req.Description
	}
	if req.Unit != nil {
		resource.Unit = *req.Unit
	}
	if req.Total != nil {
		resource.Total = req.Total
	}
	if req.Available != nil {
		resource.Available = req.Available
	}
	if err := validateResourceAmounts(resource.Total, resource.Available); err != nil {
		return nil, err
	}

	if err := s.repo.Update(resource); err != nil {
		return nil, err
	}
	return dto.ToResourceResponse(resource), nil
}

// Delete 软删除资源, 仅项目所有者可调用
func (s *resourceService) Delete(resourceId, userId string) error {
	resource, err := s.repo.FindByID(resourceId)
	if err != nil {
		return err
	}
	if err := s.access.RequireOwner(resource.ProjectId, userId); err != nil {
		return err
	}

	return s.repo.MarkDeleted(resourceId)
}

func validateResourceAmounts(total, available *float64) error {
	if total != nil && available != nil && *available > *total {
		return pkgErrors.New(pkgErrors.CodeValidationError, "可用数量不能超过总数量")
	}
	return nil
}
