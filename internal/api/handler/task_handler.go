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

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create 创建任务
// @Summary 创建任务, 仅项目所有者, 团队与个人分配互斥
// @Tags Task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTaskRequest true "创建任务请求"
// @Success 200 {object} responses.Response{data=dto.TaskResponse}
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	task, err := h.taskService.Create(middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, task)
}

// GetByID 获取任务详情
// @Summary 获取任务详情
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务ID"
// @Success 200 {object} responses.Response{data=dto.TaskResponse}
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	task, err := h.taskService.GetByID(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, task)
}

// ListByProject 项目任务列表
// @Summary 项目任务列表
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} responses.Response{data=[]dto.TaskResponse}
// @Router /api/v1/projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	tasks, err := h.taskService.ListByProject(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, tasks)
}

// ListByTeam 团队任务列表
// @Summary 团队任务列表
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path string true "团队ID"
// @Success 200 {object} responses.Response{data=[]dto.TaskResponse}
// @Router /api/v1/teams/{id}/tasks [get]
func (h *TaskHandler) ListByTeam(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	tasks, err := h.taskService.ListByTeam(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, tasks)
}

// ListMine 我的任务列表
// @Summary 直接分配给当前用户的任务
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.Response{data=[]dto.TaskResponse}
// @Router /api/v1/tasks/mine [get]
func (h *TaskHandler) ListMine(c *gin.Context) {
	tasks, err := h.taskService.ListMine(middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, tasks)
}

// ListSubtasks 子任务列表
// @Summary 子任务列表
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务ID"
// @Success 200 {object} responses.Response{data=[]dto.TaskResponse}
// @Router /api/v1/tasks/{id}/subtasks [get]
func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	subtasks, err := h.taskService.ListSubtasks(param.ID, middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, subtasks)
}

// Update 更新任务
// @Summary 更新任务, 仅创建者
// @Tags Task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务ID"
// @Param request body dto.UpdateTaskRequest true "更新任务请求"
// @Success 200 {object} responses.Response{data=dto.TaskResponse}
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	task, err := h.taskService.Update(param.ID, middleware.CurrentUserID(c), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, task)
}

// Complete 变更完成状态
// @Summary 变更完成状态, 创建者或被分配者
// @Tags Task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务ID"
// @Param request body dto.CompleteTaskRequest true "完成状态请求"
// @Success 200 {object} responses.Response{data=dto.TaskResponse}
// @Router /api/v1/tasks/{id}/complete [patch]
func (h *TaskHandler) Complete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	var req dto.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	task, err := h.taskService.Complete(param.ID, middleware.CurrentUserID(c), req.Completed)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, task)
}

// Delete 删除任务
// @Summary 删除任务及其子任务, 仅创建者
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		responses.ErrorWithDetail(c, http.StatusBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.taskService.Delete(param.ID, middleware.CurrentUserID(c)); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, "任务已删除", nil)
}
