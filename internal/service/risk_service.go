package service

import (
	"github.com/samber/lo"

	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/repository"
	"taskup/pkg/constants"
)

type RiskService interface {
	Create(projectId, userId string, req *dto.CreateRiskRequest) (*dto.RiskResponse, error)
	ListByProject(projectId, userId string) ([]*dto.RiskResponse, error)
	Update(riskId, userId string, req *dto.UpdateRiskRequest) (*dto.RiskResponse, error)
	Delete(riskId, userId string) error
}

type riskService struct {
	repo   repository.RiskRepository
	access *lifecycle.AccessEngine
}

func NewRiskService(repo repository.RiskRepository, access *lifecycle.AccessEngine) RiskService {
	return &riskService{repo: repo, access: access}
}

// Create 创建风险, 项目所有者与成员均可
// Severity 由概率与影响推导, 不接受外部传入
func (s *riskService) Create(projectId, userId string, req *dto.CreateRiskRequest) (*dto.RiskResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = constants.RiskStatusOpen
	}

	risk := &model.Risk{
		ProjectId:   projectId,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Probability: req.Probability,
		Impact:      req.Impact,
		Severity:    req.Probability * float64(req.Impact),
		OwnerId:     req.OwnerID,
		Status:      status,
	}
	if err := s.repo.Create(risk); err != nil {
		return nil, err
	}

	return dto.ToRiskResponse(risk), nil
}

func (s *riskService) ListByProject(projectId, userId string) ([]*dto.RiskResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	risks, err := s.repo.ListByProject(projectId)
	if err != nil {
		return nil, err
	}
	return lo.Map(risks, func(r *model.Risk, _ int) *dto.RiskResponse {
		return dto.ToRiskResponse(r)
	}), nil
}

func (s *riskService) Update(riskId, userId string, req *dto.UpdateRiskRequest) (*dto.RiskResponse, error) {
	risk, err := s.repo.FindByID(riskId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(risk.ProjectId, userId); err != nil {
		return nil, err
	}

	if req.Name != nil {
		risk.Name = *req.Name
	}
	if req.Description != nil {
		risk.Description = req.Description
	}
	if req.Category != nil {
		risk.Category = *req.Category
	}
	if req.Probability != nil {
		risk.Probability = *req.Probability
	}
	if req.Impact != nil {
		risk.Impact = *req.Impact
	}
	if req.Status != nil {
		risk.Status = *req.Status
	}
	risk.Severity = risk.Probability * float64(risk.Impact)

	if err := s.repo.Update(risk); err != nil {
		return nil, err
	}
	return dto.ToRiskResponse(risk), nil
}

// Delete 软删除风险, 仅项目所有者可调用
func (s *riskService) Delete(riskId, userId string) error {
	risk, err := s.repo.FindByID(riskId)
	if err != nil {
		return err
	}
	if err := s.access.RequireOwner(risk.ProjectId, userId); err != nil {
		return err
	}

	return s.repo.MarkDeleted(riskId)
}
