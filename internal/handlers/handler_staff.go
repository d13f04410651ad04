package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// staffHandler handles HTTP requests related to staff members.
type staffHandler struct {
	staffService portssvc.StaffSvcFacade
}

func newStaffHandler(staffService portssvc.StaffSvcFacade) *staffHandler {
	return &staffHandler{staffService: staffService}
}

// registerStaffRoutes registers staff specific routes.
func registerStaffRoutes(group *gin.RouterGroup, staffService portssvc.StaffSvcFacade) {
	h := newStaffHandler(staffService)

	staff := group.Group("/staff")
	{
		staff.POST("", h.createStaff)
		staff.GET("", h.listStaff)
		staff.GET("/me", h.getMe)
		staff.GET("/:staffID", h.getStaff)
		staff.PUT("/:staffID", h.updateStaff)
		staff.DELETE("/:staffID", h.deactivateStaff)
	}
}

// createStaff godoc
// @Summary Register a staff member
// @Tags staff
// @Accept json
// @Produce json
// @Param staff body dto.CreateStaffRequest true "Staff"
// @Success 201 {object} dto.StaffResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /staff [post]
func (h *staffHandler) createStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "failed to create staff member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStaffResponse(staff))
}

// listStaff godoc
// @Summary List staff of a branch, or all admins
// @Tags staff
// @Produce json
// @Param branch query string false "Branch code"
// @Param role query string false "Filter: ADMIN lists all admins"
// @Success 200 {array} dto.StaffResponse
// @Failure 400 {object} ErrorResponse
// @Router /staff [get]
func (h *staffHandler) listStaff(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("role") == "ADMIN" {
		admins, err := h.staffService.ListAdmins(ctx)
		if err != nil {
			respondError(c, err, "failed to list admins")
			return
		}
		c.JSON(http.StatusOK, dto.ToStaffResponses(admins))
		return
	}

	branch := c.Query("branch")
	if branch == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "branch query parameter is required"})
		return
	}
	staff, err := h.staffService.ListStaffByBranch(ctx, branch)
	if err != nil {
		respondError(c, err, "failed to list staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponses(staff))
}

// getMe godoc
// @Summary Get the authenticated staff member
// @Tags staff
// @Produce json
// @Success 200 {object} dto.StaffResponse
// @Failure 401 {object} ErrorResponse
// @Router /staff/me [get]
func (h *staffHandler) getMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	staff, err := h.staffService.GetStaffByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get staff member")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// getStaff godoc
// @Summary Get a staff member by ID
// @Tags staff
// @Produce json
// @Param staffID path string true "Staff ID"
// @Success 200 {object} dto.StaffResponse
// @Failure 404 {object} ErrorResponse
// @Router /staff/{staffID} [get]
func (h *staffHandler) getStaff(c *gin.Context) {
	staff, err := h.staffService.GetStaffByID(c.Request.Context(), c.Param("staffID"))
	if err != nil {
		respondError(c, err, "failed to get staff member")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// updateStaff godoc
// @Summary Update a staff member
// @Tags staff
// @Accept json
// @Produce json
// @Param staffID path string true "Staff ID"
// @Param staff body dto.UpdateStaffRequest true "Fields to update"
// @Success 200 {object} dto.StaffResponse
// @Failure 404 {object} ErrorResponse
// @Router /staff/{staffID} [put]
func (h *staffHandler) updateStaff(c *gin.Context) {
	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), c.Param("staffID"), req, editorID)
	if err != nil {
		respondError(c, err, "failed to update staff member")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// deactivateStaff godoc
// @Summary Deactivate a staff member
// @Tags staff
// @Produce json
// @Param staffID path string true "Staff ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} ErrorResponse
// @Router /staff/{staffID} [delete]
func (h *staffHandler) deactivateStaff(c *gin.Context) {
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.staffService.DeactivateStaff(c.Request.Context(), c.Param("staffID"), editorID); err != nil {
		respondError(c, err, "failed to deactivate staff member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
