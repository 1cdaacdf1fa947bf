package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskup/internal/dto"
	"taskup/internal/model"
	"taskup/internal/repository"
	"taskup/pkg/constants"
	pkgErrors "taskup/pkg/errors"
)

func buildTaskService(t *testing.T) (TaskService, *testFixture) {
	t.Helper()
	f := newFixture(t)
	svc := NewTaskService(
		repository.NewTaskRepository(f.db),
		repository.NewTeamRepository(f.db),
		repository.NewTeamMemberRepository(f.db),
		repository.NewProjectMemberRepository(f.db),
		f.access,
		f.resolver,
	)
	return svc, f
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *pkgErrors.AppError
	require.True(t, errors.As(err, &appErr), "期望AppError, 实际: %v", err)
	assert.Equal(t, pkgErrors.CodeValidationError, appErr.Code)
}

func TestTaskCreateDefaults(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)

	resp, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "首个任务",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.TaskStatusNotStarted, resp.Status)
	assert.Equal(t, constants.TaskPriorityMedium, resp.Priority)
	assert.Equal(t, f.owner.ID, resp.CreatedBy)
	assert.False(t, resp.Completed)
}

func TestTaskCreateOwnerOnly(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	_, err := svc.Create(f.member.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "越权任务",
	})
	assert.ErrorIs(t, err, pkgErrors.ErrNotProjectOwner)
}

func TestTaskAssignmentExclusive(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	team := &model.Team{Name: "团队A", ProjectId: project.ID, CreatedBy: f.owner.ID}
	require.NoError(t, f.db.Create(team).Error)

	// 团队与个人不能同时指定
	_, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "双重分配",
		TeamID:    &team.ID,
		UserID:    &f.member.ID,
	})
	assertValidationError(t, err)

	// 不能分配给自己
	_, err = svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "自我分配",
		UserID:    &f.owner.ID,
	})
	assertValidationError(t, err)

	// 被分配者必须是项目成员
	_, err = svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "外人分配",
		UserID:    &f.outsider.ID,
	})
	assertValidationError(t, err)

	// 合法: 分配给项目成员
	resp, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "成员任务",
		UserID:    &f.member.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, f.member.ID, *resp.UserID)
}

func TestTaskAssignmentForeignTeam(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	other := newTestProject(t, f.db, f.owner.ID)

	foreignTeam := &model.Team{Name: "别家团队", ProjectId: other.ID, CreatedBy: f.owner.ID}
	require.NoError(t, f.db.Create(foreignTeam).Error)

	_, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "跨项目团队",
		TeamID:    &foreignTeam.ID,
	})
	assertValidationError(t, err)
}

func TestTaskSingleLevelSubtasks(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)

	parent, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "父任务",
	})
	require.NoError(t, err)

	child, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID:    project.ID,
		Title:        "子任务",
		ParentTaskID: &parent.ID,
	})
	require.NoError(t, err)

	// 子任务下不能再挂子任务
	_, err = svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID:    project.ID,
		Title:        "孙任务",
		ParentTaskID: &child.ID,
	})
	assertValidationError(t, err)

	subtasks, err := svc.ListSubtasks(parent.ID, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, subtasks, 1)
	assert.Equal(t, child.ID, subtasks[0].ID)
}

func TestTaskUpdateCreatorOnly(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	task, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "任务",
	})
	require.NoError(t, err)

	newTitle := "改名"
	_, err = svc.Update(task.ID, f.member.ID, &dto.UpdateTaskRequest{Title: &newTitle})
	assert.ErrorIs(t, err, pkgErrors.ErrNotTaskCreator)

	updated, err := svc.Update(task.ID, f.owner.ID, &dto.UpdateTaskRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "改名", updated.Title)
}

func TestTaskReassignmentClearsOtherSide(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	team := &model.Team{Name: "团队A", ProjectId: project.ID, CreatedBy: f.owner.ID}
	require.NoError(t, f.db.Create(team).Error)

	task, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "任务",
		TeamID:    &team.ID,
	})
	require.NoError(t, err)

	// 改派给个人时团队分配被清空
	updated, err := svc.Update(task.ID, f.owner.ID, &dto.UpdateTaskRequest{UserID: &f.member.ID})
	require.NoError(t, err)
	assert.Nil(t, updated.TeamID)
	require.NotNil(t, updated.UserID)
	assert.Equal(t, f.member.ID, *updated.UserID)
}

func TestTaskComplete(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	task, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "待完成",
		UserID:    &f.member.ID,
	})
	require.NoError(t, err)

	// 外人不能变更完成状态
	_, err = svc.Complete(task.ID, f.outsider.ID, true)
	var appErr *pkgErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgErrors.CodeForbidden, appErr.Code)

	// 被分配者可以
	completed, err := svc.Complete(task.ID, f.member.ID, true)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	assert.Equal(t, constants.TaskStatusCompleted, completed.Status)
}

func TestTaskCompleteByTeamMember(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	team := &model.Team{Name: "团队A", ProjectId: project.ID, CreatedBy: f.owner.ID}
	require.NoError(t, f.db.Create(team).Error)
	require.NoError(t, f.db.Create(&model.TeamMember{
		TeamId: team.ID, UserId: f.member.ID, Role: "member", IsActive: true,
	}).Error)

	task, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "团队任务",
		TeamID:    &team.ID,
	})
	require.NoError(t, err)

	completed, err := svc.Complete(task.ID, f.member.ID, true)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
}

func TestTaskDelete(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	task, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "待删除",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(task.ID, f.member.ID), pkgErrors.ErrNotTaskCreator)
	require.NoError(t, svc.Delete(task.ID, f.owner.ID))

	// 删除后读取返回NotFound
	_, err = svc.GetByID(task.ID, f.owner.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrTaskNotFound)
}

func TestTaskListByTeam(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	team := &model.Team{Name: "团队A", ProjectId: project.ID, CreatedBy: f.owner.ID}
	require.NoError(t, f.db.Create(team).Error)

	_, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "团队任务",
		TeamID:    &team.ID,
	})
	require.NoError(t, err)
	_, err = svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "散件任务",
	})
	require.NoError(t, err)

	tasks, err := svc.ListByTeam(team.ID, f.member.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "团队任务", tasks[0].Title)

	_, err = svc.ListByTeam(team.ID, f.outsider.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrNoProjectAccess)
}

func TestTaskListMine(t *testing.T) {
	svc, f := buildTaskService(t)
	project := newTestProject(t, f.db, f.owner.ID)
	addTestMember(t, f.db, project.ID, f.member.ID)

	_, err := svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "成员任务",
		UserID:    &f.member.ID,
	})
	require.NoError(t, err)
	_, err = svc.Create(f.owner.ID, &dto.CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "未分配任务",
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(f.member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "成员任务", mine[0].Title)
}
