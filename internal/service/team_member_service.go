package service

import (
	"github.com/samber/lo"

	"taskup/internal/dto"
	"taskup/internal/lifecycle"
	"taskup/internal/model"
	"taskup/internal/repository"
	"taskup/pkg/constants"
	pkgErrors "taskup/pkg/errors"
)

type TeamMemberService interface {
	Add(teamId, operatorId string, req *dto.AddTeamMemberRequest) (*dto.TeamMemberResponse, error)
	List(teamId, userId string) ([]*dto.TeamMemberResponse, error)
	Remove(teamId, operatorId, memberUserId string) error
}

type teamMemberService struct {
	repo       repository.TeamMemberRepository
	teamRepo   repository.TeamRepository
	memberRepo repository.ProjectMemberRepository
	access     *lifecycle.AccessEngine
	resolver   *lifecycle.Resolver
}

func NewTeamMemberService(
	repo repository.TeamMemberRepository,
	teamRepo repository.TeamRepository,
	memberRepo repository.ProjectMemberRepository,
	access *lifecycle.AccessEngine,
	resolver *lifecycle.Resolver,
) TeamMemberService {
	return &teamMemberService{
		repo:       repo,
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		access:     access,
		resolver:   resolver,
	}
}

// Add 添加团队成员, 仅项目所有者可调用
// 被添加者必须已是项目成员或所有者
func (s *teamMemberService) Add(teamId, operatorId string, req *dto.AddTeamMemberRequest) (*dto.TeamMemberResponse, error) {
	team, err := s.teamRepo.FindByID(teamId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOwner(team.ProjectId, operatorId); err != nil {
		return nil, err
	}

	isOwner, err := s.access.IsOwner(team.ProjectId, req.UserID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		isMember, err := s.access.IsMember(team.ProjectId, req.UserID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, pkgErrors.New(pkgErrors.CodeValidationError, "用户不是项目成员, 无法加入团队")
		}
	}

	exists, err := s.repo.ExistsActive(teamId, req.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgErrors.ErrMemberExists
	}

	role := req.Role
	if role == "" {
		role = constants.DefaultTeamMemberRole
	}

	member := &model.TeamMember{
		TeamId:   teamId,
		UserId:   req.UserID,
		Role:     role,
		IsLeader: req.IsLeader,
		IsActive: true,
	}
	if err := s.repo.Create(member); err != nil {
		return nil, err
	}

	return dto.ToTeamMemberResponse(member), nil
}

// List 团队成员列表, 项目所有者与成员可查看
func (s *teamMemberService) List(teamId, userId string) ([]*dto.TeamMemberResponse, error) {
	team, err := s.teamRepo.FindByID(teamId)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireAccess(team.ProjectId, userId); err != nil {
		return nil, err
	}

	members, err := s.repo.ListByTeam(teamId)
	if err != nil {
		return nil, err
	}
	return lo.Map(members, func(m *model.TeamMember, _ int) *dto.TeamMemberResponse {
		return dto.ToTeamMemberResponse(m)
	}), nil
}

// Remove 移除团队成员并失活其团队内任务, 仅项目所有者可调用
func (s *teamMemberService) Remove(teamId, operatorId, memberUserId string) error {
	team, err := s.teamRepo.FindByID(teamId)
	if err != nil {
		return err
	}
	if err := s.access.RequireOwner(team.ProjectId, operatorId); err != nil {
		return err
	}

	return s.resolver.RemoveTeamMember(teamId, memberUserId)
}
