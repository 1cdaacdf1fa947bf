package lifecycle

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskup/internal/model"
	pkgErrors "taskup/pkg/errors"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Stakeholder{},
		&model.Team{},
		&model.TeamMember{},
		&model.Task{},
		&model.Scope{},
		&model.Risk{},
		&model.Resource{},
		&model.Attachment{},
		&model.ChatMessage{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		FirstName: "测试",
		LastName:  "用户",
		Email:     email,
		Password:  "hashed",
		Role:      "User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProject(t *testing.T, db *gorm.DB, ownerId string) *model.Project {
	t.Helper()
	project := &model.Project{
		Name:    "测试项目",
		OwnerId: ownerId,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// seedProjectTree 构造一棵完整的项目从属树, 返回各实体ID
type projectTree struct {
	project     *model.Project
	member      *model.ProjectMember
	team        *model.Team
	teamMember  *model.TeamMember
	task        *model.Task
	subtask     *model.Task
	stakeholder *model.Stakeholder
	scope       *model.Scope
	risk        *model.Risk
	resource    *model.Resource
	attachment  *model.Attachment
}

func seedProjectTree(t *testing.T, db *gorm.DB, ownerId, memberId string) *projectTree {
	t.Helper()

	project := createProject(t, db, ownerId)

	member := &model.ProjectMember{ProjectId: project.ID, UserId: memberId, Role: "member"}
	require.NoError(t, db.Create(member).Error)

	team := &model.Team{Name: "团队A", ProjectId: project.ID, CreatedBy: ownerId}
	require.NoError(t, db.Create(team).Error)

	teamMember := &model.TeamMember{TeamId: team.ID, UserId: memberId, Role: "member", IsActive: true}
	require.NoError(t, db.Create(teamMember).Error)

	task := &model.Task{
		ProjectId: project.ID,
		CreatedBy: ownerId,
		Title:     "父任务",
		Status:    "Not Started",
		Priority:  "Medium",
	}
	require.NoError(t, db.Create(task).Error)

	subtask := &model.Task{
		ProjectId:    project.ID,
		CreatedBy:    ownerId,
		Title:        "子任务",
		Status:       "Not Started",
		Priority:     "Low",
		ParentTaskId: &task.ID,
	}
	require.NoError(t, db.Create(subtask).Error)

	stakeholder := &model.Stakeholder{ProjectId: project.ID, UserId: memberId, Percentage: 30}
	require.NoError(t, db.Create(stakeholder).Error)

	scope := &model.Scope{ProjectId: project.ID}
	require.NoError(t, db.Create(scope).Error)

	risk := &model.Risk{
		ProjectId:   project.ID,
		Name:        "进度风险",
		Category:    "Schedule",
		Probability: 0.5,
		Impact:      3,
		Severity:    1.5,
		OwnerId:     ownerId,
		Status:      "Open",
	}
	require.NoError(t, db.Create(risk).Error)

	resource := &model.Resource{ProjectId: project.ID, Name: "服务器", Type: "Equipment", Unit: "台"}
	require.NoError(t, db.Create(resource).Error)

	attachment := &model.Attachment{
		ProjectId:  project.ID,
		EntityType: "project",
		EntityId:   project.ID,
		FileName:   "方案.pdf",
		ObjectPath: "attachments/x",
		UploadedBy: ownerId,
	}
	require.NoError(t, db.Create(attachment).Error)

	return &projectTree{
		project:     project,
		member:      member,
		team:        team,
		teamMember:  teamMember,
		task:        task,
		subtask:     subtask,
		stakeholder: stakeholder,
		scope:       scope,
		risk:        risk,
		resource:    resource,
		attachment:  attachment,
	}
}

func TestFlagStoreIsActive(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	project := createProject(t, db, owner.ID)

	store := NewFlagStore(db)

	active, err := store.IsActive(KindProject, project.ID)
	require.NoError(t, err)
	assert.True(t, active)

	// 缺失行返回NotFound而不是false
	_, err = store.IsActive(KindProject, "missing-id")
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
}

func TestFlagStoreMarkInactiveIdempotent(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	project := createProject(t, db, owner.ID)

	store := NewFlagStore(db)

	require.NoError(t, store.MarkInactive(KindProject, project.ID))
	// 第二次调用不报错, 终态一致
	require.NoError(t, store.MarkInactive(KindProject, project.ID))

	active, err := store.IsActive(KindProject, project.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestFlagStoreTeamMemberPolarity(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	store := NewFlagStore(db)

	// TeamMember 用 is_active 而非 is_deleted, 语义对上层透明
	active, err := store.IsActive(KindTeamMember, tree.teamMember.ID)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, store.MarkInactive(KindTeamMember, tree.teamMember.ID))

	var tm model.TeamMember
	require.NoError(t, db.First(&tm, "id = ?", tree.teamMember.ID).Error)
	assert.False(t, tm.IsActive)
}

func TestDeleteProjectCascadesAllChildren(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	resolver := NewResolver(db)
	result, err := resolver.DeleteProject(tree.project.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyDeleted)

	store := NewFlagStore(db)
	checks := []struct {
		kind Kind
		id   string
	}{
		{KindProject, tree.project.ID},
		{KindProjectMember, tree.member.ID},
		{KindTeam, tree.team.ID},
		{KindTeamMember, tree.teamMember.ID},
		{KindTask, tree.task.ID},
		{KindTask, tree.subtask.ID},
		{KindStakeholder, tree.stakeholder.ID},
		{KindScope, tree.scope.ID},
		{KindRisk, tree.risk.ID},
		{KindResource, tree.resource.ID},
		{KindAttachment, tree.attachment.ID},
	}
	for _, c := range checks {
		active, err := store.IsActive(c.kind, c.id)
		require.NoError(t, err)
		assert.False(t, active, "kind=%s id=%s 应已失活", c.kind, c.id)
	}

	// 用户不受项目级联影响
	var u model.User
	require.NoError(t, db.First(&u, "id = ?", owner.ID).Error)
	assert.False(t, u.IsDeleted)
}

func TestDeleteProjectIdempotent(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	project := createProject(t, db, owner.ID)

	resolver := NewResolver(db)

	first, err := resolver.DeleteProject(project.ID)
	require.NoError(t, err)
	assert.False(t, first.AlreadyDeleted)

	second, err := resolver.DeleteProject(project.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyDeleted)
}

func TestDeleteProjectNotFound(t *testing.T) {
	db := setupDB(t)
	resolver := NewResolver(db)

	_, err := resolver.DeleteProject("missing-id")
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)
}

func TestDeleteTeamNotFoundAfterDelete(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	resolver := NewResolver(db)
	require.NoError(t, resolver.DeleteTeam(tree.team.ID))

	// 团队删除不幂等, 重复删除返回NotFound
	err := resolver.DeleteTeam(tree.team.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrTeamNotFound)

	// 团队成员与团队任务随之失活, 个人任务不受影响
	store := NewFlagStore(db)
	active, err := store.IsActive(KindTeamMember, tree.teamMember.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = store.IsActive(KindTask, tree.task.ID)
	require.NoError(t, err)
	assert.True(t, active, "非团队任务不应被级联")
}

func TestDeleteTaskCascadesSubtasks(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	resolver := NewResolver(db)
	require.NoError(t, resolver.DeleteTask(tree.task.ID))

	store := NewFlagStore(db)
	active, err := store.IsActive(KindTask, tree.subtask.ID)
	require.NoError(t, err)
	assert.False(t, active)

	err = resolver.DeleteTask(tree.task.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrTaskNotFound)
}

func TestDeleteProjectRollbackOnFailure(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	// 弄丢孙子层的表, 级联走到团队成员时失败
	require.NoError(t, db.Migrator().DropTable(&model.TeamMember{}))

	resolver := NewResolver(db)
	_, err := resolver.DeleteProject(tree.project.ID)
	require.Error(t, err)

	// 事务整体回滚, 已处理过的各层全部保持存活
	store := NewFlagStore(db)
	for _, c := range []struct {
		kind Kind
		id   string
	}{
		{KindProject, tree.project.ID},
		{KindProjectMember, tree.member.ID},
		{KindTeam, tree.team.ID},
		{KindTask, tree.task.ID},
		{KindStakeholder, tree.stakeholder.ID},
	} {
		active, err := store.IsActive(c.kind, c.id)
		require.NoError(t, err)
		assert.True(t, active, "kind=%s id=%s 应随回滚保持存活", c.kind, c.id)
	}
}

func TestRemoveProjectMemberRollbackOnFailure(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	// 任务表失效后, 成员移除的最后一步失败
	require.NoError(t, db.Migrator().DropTable(&model.Task{}))

	resolver := NewResolver(db)
	err := resolver.RemoveProjectMember(tree.project.ID, member.ID)
	require.Error(t, err)

	// 成员关系与团队成员关系都已回滚
	store := NewFlagStore(db)
	active, err := store.IsActive(KindProjectMember, tree.member.ID)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = store.IsActive(KindTeamMember, tree.teamMember.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestRemoveProjectMemberCascade(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	// 给成员一个项目内直接任务
	userTask := &model.Task{
		ProjectId: tree.project.ID,
		UserId:    &member.ID,
		CreatedBy: owner.ID,
		Title:     "成员任务",
		Status:    "Not Started",
		Priority:  "Medium",
	}
	require.NoError(t, db.Create(userTask).Error)

	resolver := NewResolver(db)
	require.NoError(t, resolver.RemoveProjectMember(tree.project.ID, member.ID))

	store := NewFlagStore(db)

	// 成员关系、团队成员关系、个人任务均失活
	active, err := store.IsActive(KindProjectMember, tree.member.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = store.IsActive(KindTeamMember, tree.teamMember.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = store.IsActive(KindTask, userTask.ID)
	require.NoError(t, err)
	assert.False(t, active)

	// 团队本身保持存活
	active, err = store.IsActive(KindTeam, tree.team.ID)
	require.NoError(t, err)
	assert.True(t, active)

	// 不是成员时返回NotFound
	err = resolver.RemoveProjectMember(tree.project.ID, member.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
}

func TestRemoveTeamMemberCascade(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	teamTask := &model.Task{
		ProjectId: tree.project.ID,
		TeamId:    &tree.team.ID,
		UserId:    &member.ID,
		CreatedBy: owner.ID,
		Title:     "团队内个人任务",
		Status:    "Not Started",
		Priority:  "Medium",
	}
	require.NoError(t, db.Create(teamTask).Error)

	resolver := NewResolver(db)
	require.NoError(t, resolver.RemoveTeamMember(tree.team.ID, member.ID))

	store := NewFlagStore(db)
	active, err := store.IsActive(KindTeamMember, tree.teamMember.ID)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = store.IsActive(KindTask, teamTask.ID)
	require.NoError(t, err)
	assert.False(t, active)

	err = resolver.RemoveTeamMember(tree.team.ID, member.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)
}

func TestAccessEngine(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	outsider := createUser(t, db, "outsider@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	engine := NewAccessEngine(db)

	// 所有者: IsOwner真, IsMember假(所有权不落member表)
	isOwner, err := engine.IsOwner(tree.project.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, isOwner)

	isMember, err := engine.IsMember(tree.project.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	hasAccess, err := engine.HasAccess(tree.project.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, hasAccess)

	// 成员: IsOwner假, IsMember真
	isOwner, err = engine.IsOwner(tree.project.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, isOwner)

	hasAccess, err = engine.HasAccess(tree.project.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, hasAccess)

	// 外人: 全假
	hasAccess, err = engine.HasAccess(tree.project.ID, outsider.ID)
	require.NoError(t, err)
	assert.False(t, hasAccess)

	assert.ErrorIs(t, engine.RequireOwner(tree.project.ID, member.ID), pkgErrors.ErrNotProjectOwner)
	assert.ErrorIs(t, engine.RequireAccess(tree.project.ID, outsider.ID), pkgErrors.ErrNoProjectAccess)
	require.NoError(t, engine.RequireOwner(tree.project.ID, owner.ID))
	require.NoError(t, engine.RequireAccess(tree.project.ID, member.ID))
}

func TestAccessEngineDeletedProjectNotFound(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	project := createProject(t, db, owner.ID)

	resolver := NewResolver(db)
	_, err := resolver.DeleteProject(project.ID)
	require.NoError(t, err)

	engine := NewAccessEngine(db)

	// 已删除项目返回NotFound而非false
	_, err = engine.IsOwner(project.ID, owner.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)

	_, err = engine.HasAccess(project.ID, owner.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)

	err = engine.RequireOwner(project.ID, owner.ID)
	var appErr *pkgErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgErrors.CodeNotFound, appErr.Code)
}

func TestRemovedMemberLosesAccess(t *testing.T) {
	db := setupDB(t)
	owner := createUser(t, db, "owner@test.com")
	member := createUser(t, db, "member@test.com")
	tree := seedProjectTree(t, db, owner.ID, member.ID)

	resolver := NewResolver(db)
	require.NoError(t, resolver.RemoveProjectMember(tree.project.ID, member.ID))

	engine := NewAccessEngine(db)
	hasAccess, err := engine.HasAccess(tree.project.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, hasAccess)
}

func TestRegistryDescribe(t *testing.T) {
	d, ok := Describe(KindProject)
	require.True(t, ok)
	assert.Equal(t, model.ProjectTableName, d.Table)
	assert.Equal(t, "is_deleted", d.FlagColumn)
	assert.False(t, d.ActiveValue)
	assert.True(t, d.InactiveValue())

	d, ok = Describe(KindTeamMember)
	require.True(t, ok)
	assert.Equal(t, "is_active", d.FlagColumn)
	assert.True(t, d.ActiveValue)
	assert.False(t, d.InactiveValue())

	_, ok = Describe(Kind("unknown"))
	assert.False(t, ok)
}
