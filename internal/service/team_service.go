package service

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/pkg/logger"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

type TeamService interface {
	Create(userId string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetByID(teamId, userId string) (*dto.TeamResponse, error)
	ListByProject(projectId, userId string) ([]*dto.TeamResponse, error)
	Update(teamId, userId string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	Delete(teamId, userId string) error
}

type teamService struct {
	repo     repository.TeamRepository
	access   *lifecycle.AccessEngine
	resolver *lifecycle.Resolver
}

func NewTeamService(repo repository.TeamRepository, access *lifecycle.AccessEngine, resolver *lifecycle.Resolver) TeamService {
	return &teamService{
		repo:     repo,
		access:   access,
		resolver: resolver,
	}
}

// Create 创建团队, 仅项目所有者可调用
func (s *teamService) Create(userId string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if err := s.access.RequireOwner(req.ProjectID, userId); err != nil {
		return nil, err
	}

	team := &model.Team{
		Name:        req.Name,
		ProjectId:   req.ProjectID,
		Description: req.Description,
		ColorIndex:  req.ColorIndex,
		CreatedBy:   userId,
	}

	if err := s.repo.Create(team); err != nil {
		return nil, err
	}

	logger.Info("团队创建成功", zap.String("team_id", team.ID), zap.String("project_id", team.ProjectId))
	return dto.ToTeamResponse(team), nil
}

func (s *teamService) GetByID(teamId, userId string) (*dto.TeamResponse, error) {
	team, err := s.repo.FindByID(teamId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(team.ProjectId, userId); err != nil {
		return nil, err
	}
	return dto.ToTeamResponse(team), nil
}

func (s *teamService) ListByProject(projectId, userId string) ([]*dto.TeamResponse, error) {
	if err := s.access.RequireAccess(projectId, userId); err != nil {
		return nil, err
	}

	teams, err := s.repo.ListByProject(projectId)
	if err != nil {
		return nil, err
	}
	return lo.Map(teams, func(t *model.Team, _ int) *dto.TeamResponse {
		return dto.ToTeamResponse(t)
	}), nil
}

// Update 更新团队, 仅创建者可调用
func (s *teamService) Update(teamId, userId string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := s.repo.FindByID(teamId)
	if err != nil {
		return nil, err
	}
	if team.CreatedBy != userId {
		return nil, pkgErrors.New(pkgErrors.CodeForbidden, "仅团队创建者可执行此操作")
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = req.Description
	}
	if req.ColorIndex != nil {
		team.ColorIndex = *req.ColorIndex
	}

	if err := s.repo.Update(team); err != nil {
		return nil, err
	}
	return dto.ToTeamResponse(team), nil
}

// Delete 软删除团队及成员关系、团队任务, 仅创建者可调用
func (s *teamService) Delete(teamId, userId string) error {
	team, err := s.repo.FindByID(teamId)
	if err != nil {
		return err
	}
	if team.CreatedBy != userId {
		return pkgErrors.New(pkgErrors.CodeForbidden, "仅团队创建者可执行此操作")
	}

	if err := s.resolver.DeleteTeam(teamId); err != nil {
		return err
	}

	logger.Info("团队已删除", zap.String("team_id", teamId), zap.String("operator", userId))
	return nil
}
