package constants

// 项目状态
const (
	ProjectStatusNotStarted = "Not Started"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusCompleted  = "Completed"
	ProjectStatusOnHold     = "On Hold"
)

// 任务状态
const (
	TaskStatusNotStarted = "Not Started"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// 任务优先级
const (
	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

// 风险状态
const (
	RiskStatusOpen      = "Open"
	RiskStatusMitigated = "Mitigated"
	RiskStatusClosed    = "Closed"
)

// 附件归属实体类型
const (
	AttachmentEntityProject = "project"
	AttachmentEntityTask    = "task"
)

// 用户角色
const (
	UserRoleDefault = "User"
	UserRoleAdmin   = "Admin"
)

// 项目成员默认角色
const DefaultProjectMemberRole = "member"

// 团队成员默认角色
const DefaultTeamMemberRole = "member"

// JWT 相关
const (
	JWTContextKey  = "jwt_user"
	JWTTypeAccess  = "access"
	JWTTypeRefresh = "refresh"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)
