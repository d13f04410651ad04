package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// cashbookHandler handles HTTP requests for the cash book: transaction entry,
// the approval workflow and branch balances.
type cashbookHandler struct {
	cashbookService portssvc.CashbookSvcFacade
}

func newCashbookHandler(cashbookService portssvc.CashbookSvcFacade) *cashbookHandler {
	return &cashbookHandler{cashbookService: cashbookService}
}

// RegisterCashbookRoutes registers cash book specific routes.
func RegisterCashbookRoutes(group *gin.RouterGroup, cashbookService portssvc.CashbookSvcFacade) {
	h := newCashbookHandler(cashbookService)

	cashbook := group.Group("/cashbook")
	{
		cashbook.POST("/transactions", h.createTransaction)
		cashbook.POST("/transactions/approve", h.approveTransaction)
		cashbook.POST("/transactions/reject", h.rejectTransaction)
		cashbook.GET("/transactions/:transactionID", h.getTransaction)
		cashbook.PUT("/transactions/:transactionID", h.updateTransaction)
		cashbook.DELETE("/transactions/:transactionID", h.deleteTransaction)

		cashbook.GET("/branches/:branch/transactions", h.listTransactions)
		cashbook.GET("/branches/:branch/balance", h.getBranchBalance)
		cashbook.GET("/branches/:branch/opening-balance", h.getOpeningBalance)
		cashbook.PUT("/branches/:branch/opening-balance", h.setOpeningBalance)
	}
}

// createTransaction godoc
// @Summary Record a cash movement
// @Description Creates a cash transaction. Auto-approve branches store it approved with its running balance; others store it pending.
// @Tags cashbook
// @Accept json
// @Produce json
// @Param transaction body dto.CreateCashTransactionRequest true "Transaction"
// @Success 201 {object} dto.CashTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate voucher number"
// @Router /cashbook/transactions [post]
func (h *cashbookHandler) createTransaction(c *gin.Context) {
	var req dto.CreateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	creatorID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.cashbookService.CreateTransaction(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "failed to create cash transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCashTransactionResponse(txn))
}

// approveTransaction godoc
// @Summary Approve a pending transaction
// @Description Transitions a pending transaction to approved, computing and storing its running balance.
// @Tags cashbook
// @Accept json
// @Produce json
// @Param verdict body dto.VerifyCashTransactionRequest true "Approval"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid body or transaction is not pending"
// @Failure 404 {object} ErrorResponse
// @Router /cashbook/transactions/approve [post]
func (h *cashbookHandler) approveTransaction(c *gin.Context) {
	var req dto.VerifyCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.cashbookService.ApproveTransaction(c.Request.Context(), req.ID, req.VerifierID, req.Note)
	if err != nil {
		respondError(c, err, "failed to approve transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.ToCashTransactionResponse(txn)})
}

// rejectTransaction godoc
// @Summary Reject a pending transaction
// @Description Transitions a pending transaction to rejected. The stored balance is untouched.
// @Tags cashbook
// @Accept json
// @Produce json
// @Param verdict body dto.VerifyCashTransactionRequest true "Rejection"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid body or transaction is not pending"
// @Failure 404 {object} ErrorResponse
// @Router /cashbook/transactions/reject [post]
func (h *cashbookHandler) rejectTransaction(c *gin.Context) {
	var req dto.VerifyCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.cashbookService.RejectTransaction(c.Request.Context(), req.ID, req.VerifierID, req.Note)
	if err != nil {
		respondError(c, err, "failed to reject transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.ToCashTransactionResponse(txn)})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags cashbook
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.CashTransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /cashbook/transactions/{transactionID} [get]
func (h *cashbookHandler) getTransaction(c *gin.Context) {
	txn, err := h.cashbookService.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Edit content fields of a transaction
// @Description Updates content fields only. Stored balances of other rows are not recomputed.
// @Tags cashbook
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateCashTransactionRequest true "Fields to update"
// @Success 200 {object} dto.CashTransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /cashbook/transactions/{transactionID} [put]
func (h *cashbookHandler) updateTransaction(c *gin.Context) {
	var req dto.UpdateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.cashbookService.UpdateTransaction(c.Request.Context(), c.Param("transactionID"), req, editorID)
	if err != nil {
		respondError(c, err, "failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags cashbook
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} ErrorResponse
// @Router /cashbook/transactions/{transactionID} [delete]
func (h *cashbookHandler) deleteTransaction(c *gin.Context) {
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.cashbookService.DeleteTransaction(c.Request.Context(), c.Param("transactionID"), editorID); err != nil {
		respondError(c, err, "failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// listTransactions godoc
// @Summary List a branch's transactions
// @Tags cashbook
// @Produce json
// @Param branch path string true "Branch code"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListCashTransactionsResponse
// @Router /cashbook/branches/{branch}/transactions [get]
func (h *cashbookHandler) listTransactions(c *gin.Context) {
	var params dto.ListCashTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.cashbookService.ListTransactions(c.Request.Context(), c.Param("branch"), params)
	if err != nil {
		respondError(c, err, "failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getBranchBalance godoc
// @Summary Get a branch's current running balance
// @Tags cashbook
// @Produce json
// @Param branch path string true "Branch code"
// @Success 200 {object} dto.BranchBalanceResponse
// @Router /cashbook/branches/{branch}/balance [get]
func (h *cashbookHandler) getBranchBalance(c *gin.Context) {
	resp, err := h.cashbookService.GetBranchBalance(c.Request.Context(), c.Param("branch"))
	if err != nil {
		respondError(c, err, "failed to get branch balance")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getOpeningBalance godoc
// @Summary Get a branch's opening balance
// @Tags cashbook
// @Produce json
// @Param branch path string true "Branch code"
// @Success 200 {object} dto.OpeningBalanceResponse
// @Failure 404 {object} ErrorResponse
// @Router /cashbook/branches/{branch}/opening-balance [get]
func (h *cashbookHandler) getOpeningBalance(c *gin.Context) {
	ob, err := h.cashbookService.GetOpeningBalance(c.Request.Context(), c.Param("branch"))
	if err != nil {
		respondError(c, err, "failed to get opening balance")
		return
	}
	c.JSON(http.StatusOK, dto.OpeningBalanceResponse{
		Branch:         ob.Branch,
		OpeningBalance: ob.OpeningBalance,
		History:        ob.History,
	})
}

// setOpeningBalance godoc
// @Summary Set a branch's opening balance
// @Description Creates or replaces the opening balance, appending the change to the adjustment history.
// @Tags cashbook
// @Accept json
// @Produce json
// @Param branch path string true "Branch code"
// @Param balance body dto.SetOpeningBalanceRequest true "Opening balance"
// @Success 200 {object} dto.OpeningBalanceResponse
// @Failure 404 {object} ErrorResponse
// @Router /cashbook/branches/{branch}/opening-balance [put]
func (h *cashbookHandler) setOpeningBalance(c *gin.Context) {
	var req dto.SetOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	editorID, ok := requireUserID(c)
	if !ok {
		return
	}

	ob, err := h.cashbookService.SetOpeningBalance(c.Request.Context(), c.Param("branch"), req, editorID)
	if err != nil {
		respondError(c, err, "failed to set opening balance")
		return
	}
	c.JSON(http.StatusOK, dto.OpeningBalanceResponse{
		Branch:         ob.Branch,
		OpeningBalance: ob.OpeningBalance,
		History:        ob.History,
	})
}
