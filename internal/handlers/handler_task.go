package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// taskHandler handles HTTP requests related to tasks.
type taskHandler struct {
	taskService portssvc.TaskSvcFacade
}

func newTaskHandler(taskService portssvc.TaskSvcFacade) *taskHandler {
	return &taskHandler{taskService: taskService}
}

// registerTaskRoutes registers task specific routes.
func registerTaskRoutes(group *gin.RouterGroup, taskService portssvc.TaskSvcFacade) {
	h := newTaskHandler(taskService)

	tasks := group.Group("/tasks")
	{
		tasks.POST("", h.createTask)
		tasks.GET("", h.listTasks)
		tasks.GET("/:taskID", h.getTask)
		tasks.PUT("/:taskID", h.updateTask)
		tasks.PATCH("/:taskID/status", h.updateTaskStatus)
	}
}

// createTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body dto.CreateTaskRequest true "Task"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Assignee not found"
// @Router /tasks [post]
func (h *taskHandler) createTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "failed to create task")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// listTasks godoc
// @Summary List tasks by branch or by the authenticated assignee
// @Description With ?branch= lists the branch's tasks; otherwise lists tasks assigned to the caller.
// @Tags tasks
// @Produce json
// @Param branch query string false "Branch code"
// @Param status query string false "Task status filter"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTasksResponse
// @Router /tasks [get]
func (h *taskHandler) listTasks(c *gin.Context) {
	var params dto.ListTasksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	if branch := c.Query("branch"); branch != "" {
		resp, err := h.taskService.ListTasksByBranch(c.Request.Context(), branch, params)
		if err != nil {
			respondError(c, err, "failed to list tasks")
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	resp, err := h.taskService.ListTasksByAssignee(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTask godoc
// @Summary Get a task by ID
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{taskID} [get]
func (h *taskHandler) getTask(c *gin.Context) {
	task, err := h.taskService.GetTaskByID(c.Request.Context(), c.Param("taskID"))
	if err != nil {
		respondError(c, err, "failed to get task")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// updateTask godoc
// @Summary Update content fields of a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path string true "Task ID"
// @Param task body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{taskID} [put]
func (h *taskHandler) updateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("taskID"), req, editorID)
	if err != nil {
		respondError(c, err, "failed to update task")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// updateTaskStatus godoc
// @Summary Move a task through its lifecycle
// @Description Applies a status transition. Completing a task stamps CompletedAt and notifies the assigner.
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path string true "Task ID"
// @Param status body dto.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Router /tasks/{taskID}/status [patch]
func (h *taskHandler) updateTaskStatus(c *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), c.Param("taskID"), domain.TaskStatus(req.Status), editorID)
	if err != nil {
		respondError(c, err, "failed to update task status")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}
