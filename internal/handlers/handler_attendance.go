package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// attendanceHandler handles HTTP requests related to attendance.
type attendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

func newAttendanceHandler(attendanceService portssvc.AttendanceSvcFacade) *attendanceHandler {
	return &attendanceHandler{attendanceService: attendanceService}
}

// registerAttendanceRoutes registers attendance specific routes.
func registerAttendanceRoutes(group *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade) {
	h := newAttendanceHandler(attendanceService)

	attendance := group.Group("/attendance")
	{
		attendance.POST("/check-in", h.checkIn)
		attendance.POST("/check-out", h.checkOut)
		attendance.GET("/me", h.listMyRecords)
		attendance.GET("/summary", h.getBranchSummary)
	}
}

// checkIn godoc
// @Summary Mark attendance for today
// @Tags attendance
// @Accept json
// @Produce json
// @Param checkIn body dto.CheckInRequest true "Attendance status"
// @Success 201 {object} dto.AttendanceRecordResponse
// @Failure 409 {object} ErrorResponse "Already checked in today"
// @Router /attendance/check-in [post]
func (h *attendanceHandler) checkIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckIn(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "failed to check in")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAttendanceRecordResponse(record))
}

// checkOut godoc
// @Summary Stamp the check-out time on today's record
// @Tags attendance
// @Produce json
// @Success 200 {object} dto.AttendanceRecordResponse
// @Failure 404 {object} ErrorResponse "No record for today"
// @Failure 409 {object} ErrorResponse "Already checked out"
// @Router /attendance/check-out [post]
func (h *attendanceHandler) checkOut(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckOut(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to check out")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttendanceRecordResponse(record))
}

// listMyRecords godoc
// @Summary List the caller's attendance for a month
// @Tags attendance
// @Produce json
// @Param month query string false "Month as YYYY-MM (defaults to current)"
// @Success 200 {array} dto.AttendanceRecordResponse
// @Router /attendance/me [get]
func (h *attendanceHandler) listMyRecords(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	month := time.Now()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month, expected YYYY-MM"})
			return
		}
		month = parsed
	}

	records, err := h.attendanceService.ListMonthlyRecords(c.Request.Context(), userID, month)
	if err != nil {
		respondError(c, err, "failed to list attendance records")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttendanceRecordResponses(records))
}

// getBranchSummary godoc
// @Summary Get a branch's attendance summary for a day
// @Tags attendance
// @Produce json
// @Param branch query string true "Branch code"
// @Param date query string false "Day as YYYY-MM-DD (defaults to today)"
// @Success 200 {object} domain.AttendanceSummary
// @Failure 400 {object} ErrorResponse
// @Router /attendance/summary [get]
func (h *attendanceHandler) getBranchSummary(c *gin.Context) {
	branch := c.Query("branch")
	if branch == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "branch query parameter is required"})
		return
	}

	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	summary, err := h.attendanceService.GetBranchSummary(c.Request.Context(), branch, date)
	if err != nil {
		respondError(c, err, "failed to get attendance summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
