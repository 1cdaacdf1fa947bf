package lifecycle

import (
	"taskup/internal/model"
)

// Kind 实体类型
type Kind string

const (
	KindProject       Kind = "project"
	KindProjectMember Kind = "project_member"
	KindTeam          Kind = "team"
	KindTeamMember    Kind = "team_member"
	KindTask          Kind = "task"
	KindStakeholder   Kind = "stakeholder"
	KindScope         Kind = "scope"
	KindUser          Kind = "user"
	KindRisk          Kind = "risk"
	KindResource      Kind = "resource"
	KindAttachment    Kind = "attachment"
)

// ChildRelation 子实体关系: 子实体类型 + 指向父实体的外键列
type ChildRelation struct {
	Kind       Kind
	ForeignKey string
}

// Descriptor 实体在级联与可见性判断中需要的静态事实:
// 表名、存活标志列、存活极性、子关系列表。
// 部分实体使用 IsDeleted(true=删除), TeamMember 使用 IsActive(false=删除),
// ActiveValue 统一表达"存活"时该列的取值, 级联器不感知具体约定。
type Descriptor struct {
	Table       string
	FlagColumn  string
	ActiveValue bool
	Children    []ChildRelation
}

// InactiveValue 非存活状态的列值
func (d Descriptor) InactiveValue() bool {
	return !d.ActiveValue
}

// registry 实体关系注册表。
// 为项目新增一类从属实体时, 只需在此追加一条子关系。
var registry = map[Kind]Descriptor{
	KindProject: {
		Table:       model.ProjectTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
		Children: []ChildRelation{
			{Kind: KindProjectMember, ForeignKey: "project_id"},
			{Kind: KindTeam, ForeignKey: "project_id"},
			{Kind: KindTask, ForeignKey: "project_id"},
			{Kind: KindStakeholder, ForeignKey: "project_id"},
			{Kind: KindScope, ForeignKey: "project_id"},
			{Kind: KindRisk, ForeignKey: "project_id"},
			{Kind: KindResource, ForeignKey: "project_id"},
			{Kind: KindAttachment, ForeignKey: "project_id"},
		},
	},
	KindProjectMember: {
		Table:       model.ProjectMemberTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
	},
	KindTeam: {
		Table:       model.TeamTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
		Children: []ChildRelation{
			{Kind: KindTeamMember, ForeignKey: "team_id"},
			{Kind: KindTask, ForeignKey: "team_id"},
		},
	},
	KindTeamMember: {
		Table:       model.TeamMemberTableName,
		FlagColumn:  "is_active",
		ActiveValue: true,
	},
	KindTask: {
		Table:       model.TaskTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
		Children: []ChildRelation{
			{Kind: KindTask, ForeignKey: "parent_task_id"},
		},
	},
	KindStakeholder: {
		Table:       model.StakeholderTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
	},
	KindScope: {
		Table:       model.ScopeTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
	},
	KindUser: {
		Table:       model.UserTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
	},
	KindRisk: {
		Table:       model.RiskTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
	},
	KindResource: {
		Table:       model.ResourceTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
	},
	KindAttachment: {
		Table:       model.AttachmentTableName,
		FlagColumn:  "is_deleted",
		ActiveValue: false,
	},
}

// Describe 查询实体描述
func Describe(kind Kind) (Descriptor, bool) {
	d, ok := registry[kind]
	return d, ok
}
