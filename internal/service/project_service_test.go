package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskup/internal/dto"
	"taskup/internal/repository"
	pkgErrors "taskup/pkg/errors"
)

// fakeRoomCloser 记录被关闭的聊天房间
type fakeRoomCloser struct {
	closed []string
}

func (f *fakeRoomCloser) CloseProject(projectId string) {
	f.closed = append(f.closed, projectId)
}

func buildProjectService(t *testing.T) (ProjectService, *fakeRoomCloser, *testFixture) {
	t.Helper()
	f := newFixture(t)
	rooms := &fakeRoomCloser{}
	svc := NewProjectService(
		repository.NewProjectRepository(f.db),
		repository.NewProjectMemberRepository(f.db),
		repository.NewUserRepository(f.db),
		f.access,
		f.resolver,
		rooms,
	)
	return svc, rooms, f
}

func TestProjectCreate(t *testing.T) {
	svc, _, f := buildProjectService(t)

	resp, err := svc.Create(f.owner.ID, &dto.CreateProjectRequest{
		Name:        "新项目",
		TotalBudget: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, resp.OwnerID)
	assert.Equal(t, 1000.0, resp.TotalBudget)
	// 初始剩余预算等于总预算
	assert.Equal(t, 1000.0, resp.RemainingBudget)
}

func TestProjectGetByIDAccess(t *testing.T) {
	svc, _, f := buildProjectService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	_, err := svc.GetByID(project.ID, f.owner.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(project.ID, f.member.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(project.ID, f.outsider.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrNoProjectAccess)
}

func TestProjectListByUserUnion(t *testing.T) {
	svc, _, f := buildProjectService(t)

	owned := newTestProject(t, f.db, f.member.ID)
	joined := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, joined.ID, f.member.ID)
	newTestProject(t, f.db, f.outsider.ID) // 无关项目

	projects, err := svc.ListByUser(f.member.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	ids := []string{projects[0].ID, projects[1].ID}
	assert.Contains(t, ids, owned.ID)
	assert.Contains(t, ids, joined.ID)
}

func TestProjectUpdateBudget(t *testing.T) {
	svc, _, f := buildProjectService(t)

	resp, err := svc.Create(f.owner.ID, &dto.CreateProjectRequest{Name: "预算项目", TotalBudget: 100})
	require.NoError(t, err)

	newBudget := 150.0
	updated, err := svc.Update(resp.ID, f.owner.ID, &dto.UpdateProjectRequest{TotalBudget: &newBudget})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.TotalBudget)
	// 总预算变化量同步进剩余预算
	assert.Equal(t, 150.0, updated.RemainingBudget)

	_, err = svc.Update(resp.ID, f.outsider.ID, &dto.UpdateProjectRequest{TotalBudget: &newBudget})
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)
}

func TestProjectDeleteOwnerOnlyAndIdempotent(t *testing.T) {
	svc, rooms, f := buildProjectService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	_, err := svc.Delete(project.ID, f.member.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)
	assert.Empty(t, rooms.closed)

	result, err := svc.Delete(project.ID, f.owner.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyDeleted)
	// 删除成功时关闭项目聊天房间
	assert.Equal(t, []string{project.ID}, rooms.closed)

	// 重复删除幂等, 依然要求所有者身份, 房间不再重复关闭
	result, err = svc.Delete(project.ID, f.owner.ID)
	require.NoError(t, err)
	assert.True(t, result.AlreadyDeleted)
	assert.Len(t, rooms.closed, 1)

	_, err = svc.Delete(project.ID, f.member.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)

	_, err = svc.Delete("00000000-0000-4000-8000-000000000000", f.owner.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)
}

func TestProjectAddMember(t *testing.T) {
	svc, _, f := buildProjectService(t)
	project := newTestProject(t, f.db, f.owner.ID)

	_, err := svc.AddMember(project.ID, f.member.ID, &dto.AddMemberRequest{UserID: f.outsider.ID})
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)

	resp, err := svc.AddMember(project.ID, f.owner.ID, &dto.AddMemberRequest{UserID: f.member.ID})
	require.NoError(t, err)
	assert.Equal(t, "member", resp.Role)

	_, err = svc.AddMember(project.ID, f.owner.ID, &dto.AddMemberRequest{UserID: f.member.ID})
	assert.ErrorIs(t, err, pkgErrors.ErrMemberExists)

	_, err = svc.AddMember(project.ID, f.owner.ID, &dto.AddMemberRequest{UserID: "00000000-0000-4000-8000-000000000000"})
	assert.ErrorIs(t, err, pkgErrors.ErrUserNotFound)
}

func TestProjectRemoveMember(t *testing.T) {
	svc, _, f := buildProjectService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	err := svc.RemoveMember(project.ID, f.member.ID, f.member.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)

	require.NoError(t, svc.RemoveMember(project.ID, f.owner.ID, f.member.ID))

	// 移除后失去访问权
	_, err = svc.GetByID(project.ID, f.member.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrNoProjectAccess)

	err = svc.RemoveMember(project.ID, f.owner.ID, f.member.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
}
