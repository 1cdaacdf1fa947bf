package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskup/internal/api/middleware"
	"taskup/internal/dto"
	"taskup/internal/service"
	"taskup/pkg/responses"
	"taskup/pkg/utils"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Search 搜索用户
// @Summary 搜索用户, 用于成员选择
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "关键字"
// @Param limit query int false "返回条数上限"
// @Success 200 {object} responses.Response{data=[]dto.UserSimpleResponse}
// @Router /api/v1/users [get]
func (h *UserHandler) Search(c *gin.Context) {
	var query dto.UserSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	users, err := h.userService.Search(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, users)
}

// GetByID 获取用户信息
// @Summary 获取用户信息
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户ID"
// @Success 200 {object} responses.Response{data=dto.UserResponse}
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	user, err := h.userService.GetByID(param.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, user)
}

// Update 更新个人资料
// @Summary 更新个人资料
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "更新资料请求"
// @Success 200 {object} responses.Response{data=dto.UserResponse}
// @Router /api/v1/users/me [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	user, err := h.userService.Update(middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, user)
}
