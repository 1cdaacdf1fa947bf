package dto

import (
	"time"

	"taskup/internal/model"
)

// AddTeamMemberRequest 添加团队成员请求
type AddTeamMemberRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid4"`
	Role     string `json:"role" binding:"omitempty,max=50"`
	IsLeader bool   `json:"is_leader"`
}

// TeamMemberResponse 团队成员响应
type TeamMemberResponse struct {
	ID        string              `json:"id"`
	TeamID    string              `json:"team_id"`
	Role      string              `json:"role"`
	IsLeader  bool                `json:"is_leader"`
	User      *UserSimpleResponse `json:"user,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// ToTeamMemberResponse 模型转响应
func ToTeamMemberResponse(m *model.TeamMember) *TeamMemberResponse {
	return &TeamMemberResponse{
		ID:        m.ID,
		TeamID:    m.TeamId,
		Role:      m.Role,
		IsLeader:  m.IsLeader,
		User:      ToUserSimpleResponse(m.User),
		CreatedAt: m.CreatedAt,
	}
}
