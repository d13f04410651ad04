package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// branchHandler handles HTTP requests related to branches.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

func newBranchHandler(branchService portssvc.BranchSvcFacade) *branchHandler {
	return &branchHandler{branchService: branchService}
}

// registerBranchRoutes registers branch specific routes.
func registerBranchRoutes(group *gin.RouterGroup, branchService portssvc.BranchSvcFacade) {
	h := newBranchHandler(branchService)

	branches := group.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("", h.listBranches)
		branches.GET("/:code", h.getBranch)
		branches.PUT("/:code", h.updateBranch)
	}
}

// createBranch godoc
// @Summary Create a branch
// @Tags branches
// @Accept json
// @Produce json
// @Param branch body dto.CreateBranchRequest true "Branch"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /branches [post]
func (h *branchHandler) createBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "failed to create branch")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Tags branches
// @Produce json
// @Param includeInactive query bool false "Include inactive branches"
// @Success 200 {array} dto.BranchResponse
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	branches, err := h.branchService.ListBranches(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err, "failed to list branches")
		return
	}
	responses := make([]dto.BranchResponse, len(branches))
	for i, b := range branches {
		responses[i] = dto.ToBranchResponse(&b)
	}
	c.JSON(http.StatusOK, responses)
}

// getBranch godoc
// @Summary Get a branch by code
// @Tags branches
// @Produce json
// @Param code path string true "Branch code"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} ErrorResponse
// @Router /branches/{code} [get]
func (h *branchHandler) getBranch(c *gin.Context) {
	branch, err := h.branchService.GetBranchByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "failed to get branch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// updateBranch godoc
// @Summary Update a branch
// @Tags branches
// @Accept json
// @Produce json
// @Param code path string true "Branch code"
// @Param branch body dto.UpdateBranchRequest true "Fields to update"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} ErrorResponse
// @Router /branches/{code} [put]
func (h *branchHandler) updateBranch(c *gin.Context) {
	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), c.Param("code"), req, editorID)
	if err != nil {
		respondError(c, err, "failed to update branch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}
