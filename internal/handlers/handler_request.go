package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// requestHandler handles HTTP requests related to service requests.
type requestHandler struct {
	requestService portssvc.RequestSvcFacade
}

func newRequestHandler(requestService portssvc.RequestSvcFacade) *requestHandler {
	return &requestHandler{requestService: requestService}
}

// registerRequestRoutes registers service request specific routes.
func registerRequestRoutes(group *gin.RouterGroup, requestService portssvc.RequestSvcFacade) {
	h := newRequestHandler(requestService)

	requests := group.Group("/requests")
	{
		requests.POST("", h.submitRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:requestID", h.getRequest)
		requests.POST("/:requestID/review", h.reviewRequest)
		requests.POST("/:requestID/fulfill", h.fulfillRequest)
	}
}

// submitRequest godoc
// @Summary Submit a service request
// @Tags requests
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequestRequest true "Service request"
// @Success 201 {object} dto.ServiceRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Router /requests [post]
func (h *requestHandler) submitRequest(c *gin.Context) {
	var req dto.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	submitterID, ok := requireUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.SubmitRequest(c.Request.Context(), req, submitterID)
	if err != nil {
		respondError(c, err, "failed to submit request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToServiceRequestResponse(request))
}

// listRequests godoc
// @Summary List service requests
// @Tags requests
// @Produce json
// @Param branch query string false "Branch code"
// @Param type query string false "Request type"
// @Param status query string false "Request status"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListServiceRequestsResponse
// @Router /requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
	var params dto.ListServiceRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.requestService.ListRequests(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getRequest godoc
// @Summary Get a service request by ID
// @Tags requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.ServiceRequestResponse
// @Failure 404 {object} ErrorResponse
// @Router /requests/{requestID} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	request, err := h.requestService.GetRequestByID(c.Request.Context(), c.Param("requestID"))
	if err != nil {
		respondError(c, err, "failed to get request")
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceRequestResponse(request))
}

// reviewRequest godoc
// @Summary Approve or reject a submitted request
// @Tags requests
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param review body dto.ReviewServiceRequestRequest true "Verdict"
// @Success 200 {object} dto.ServiceRequestResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is not awaiting review"
// @Router /requests/{requestID}/review [post]
func (h *requestHandler) reviewRequest(c *gin.Context) {
	var req dto.ReviewServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	reviewerID, ok := requireUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.ReviewRequest(c.Request.Context(), c.Param("requestID"), req.Approve, req.Notes, reviewerID)
	if err != nil {
		respondError(c, err, "failed to review request")
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceRequestResponse(request))
}

// fulfillRequest godoc
// @Summary Mark an approved request fulfilled
// @Tags requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.ServiceRequestResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Only approved requests can be fulfilled"
// @Router /requests/{requestID}/fulfill [post]
func (h *requestHandler) fulfillRequest(c *gin.Context) {
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.FulfillRequest(c.Request.Context(), c.Param("requestID"), editorID)
	if err != nil {
		respondError(c, err, "failed to fulfill request")
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceRequestResponse(request))
}
