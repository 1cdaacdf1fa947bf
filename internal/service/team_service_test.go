package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskup/internal/dto"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

func buildTeamServices(t *testing.T) (TeamService, TeamMemberService, *testFixture) {
	t.Helper()
	f := newFixture(t)
	teamRepo := repository.NewTeamRepository(f.db)
	teamMemberRepo := repository.NewTeamMemberRepository(f.db)
	memberRepo := repository.NewProjectMemberRepository(f.db)

	teamSvc := NewTeamService(teamRepo, f.access, f.resolver)
	teamMemberSvc := NewTeamMemberService(teamMemberRepo, teamRepo, memberRepo, f.access, f.resolver)
	return teamSvc, teamMemberSvc, f
}

func TestTeamCreateOwnerOnly(t *testing.T) {
	teamSvc, _, f := buildTeamServices(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	_, err := teamSvc.Create(f.member.ID, &dto.CreateTeamRequest{
		Name:      "成员建的团队",
		ProjectID: project.ID,
	})
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)

	team, err := teamSvc.Create(f.owner.ID, &dto.CreateTeamRequest{
		Name:      "开发团队",
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, team.CreatedBy)

	// 成员可查看团队
	got, err := teamSvc.GetByID(team.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, "开发团队", got.Name)

	_, err = teamSvc.GetByID(team.ID, f.outsider.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrNoProjectAccess)
}

func TestTeamDeleteCreatorOnly(t *testing.T) {
	teamSvc, _, f := buildTeamServices(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	team, err := teamSvc.Create(f.owner.ID, &dto.CreateTeamRequest{
		Name:      "开发团队",
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	err = teamSvc.Delete(team.ID, f.member.ID)
	var appErr *pkgErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgErrors.CodeForbidden, appErr.Code)

	require.NoError(t, teamSvc.Delete(team.ID, f.owner.ID))

	// 删除后不可见, 重复删除NotFound
	_, err = teamSvc.GetByID(team.ID, f.owner.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrTeamNotFound)
	assert.ErrorIs(t, teamSvc.Delete(team.ID, f.owner.ID), pkgErrors.ErrTeamNotFound)
}

func TestTeamMemberAdd(t *testing.T) {
	teamSvc, teamMemberSvc, f := buildTeamServices(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	team, err := teamSvc.Create(f.owner.ID, &dto.CreateTeamRequest{
		Name:      "开发团队",
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	// 仅项目所有者可添加
	_, err = teamMemberSvc.Add(team.ID, f.member.ID, &dto.AddTeamMemberRequest{UserID: f.member.ID})
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)

	// 外人不能入队
	_, err = teamMemberSvc.Add(team.ID, f.owner.ID, &dto.AddTeamMemberRequest{UserID: f.outsider.ID})
	assertValidationError(t, err)

	resp, err := teamMemberSvc.Add(team.ID, f.owner.ID, &dto.AddTeamMemberRequest{UserID: f.member.ID})
	require.NoError(t, err)
	assert.Equal(t, "member", resp.Role)

	// 重复添加冲突
	_, err = teamMemberSvc.Add(team.ID, f.owner.ID, &dto.AddTeamMemberRequest{UserID: f.member.ID})
	assert.ErrorIs(t, err, pkgErrors.ErrMemberExists)

	list, err := teamMemberSvc.List(team.ID, f.member.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTeamMemberRemove(t *testing.T) {
	teamSvc, teamMemberSvc, f := buildTeamServices(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	team, err := teamSvc.Create(f.owner.ID, &dto.CreateTeamRequest{
		Name:      "开发团队",
		ProjectID: project.ID,
	})
	require.NoError(t, err)

	_, err = teamMemberSvc.Add(team.ID, f.owner.ID, &dto.AddTeamMemberRequest{UserID: f.member.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, teamMemberSvc.Remove(team.ID, f.member.ID, f.member.ID), pkgErrors.ErrNotProjectOwner)
	require.NoError(t, teamMemberSvc.Remove(team.ID, f.owner.ID, f.member.ID))

	list, err := teamMemberSvc.List(team.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// 已移除成员再移除返回NotFound
	assert.ErrorIs(t, teamMemberSvc.Remove(team.ID, f.owner.ID, f.member.ID), pkgErrors.ErrRecordNotFound)
}
