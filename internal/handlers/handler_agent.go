package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
)

// agentHandler serves the review surface: the pending queue and the
// approve/reject decisions.
type agentHandler struct {
	operationService portssvc.OperationSvcFacade
	accountService   portssvc.AccountSvcFacade
	documentService  portssvc.DocumentSvcFacade
}

func newAgentHandler(os portssvc.OperationSvcFacade, as portssvc.AccountSvcFacade, ds portssvc.DocumentSvcFacade) *agentHandler {
	return &agentHandler{
		operationService: os,
		accountService:   as,
		documentService:  ds,
	}
}

// registerAgentRoutes registers the agent route group.
func registerAgentRoutes(rg *gin.RouterGroup, os portssvc.OperationSvcFacade, as portssvc.AccountSvcFacade, ds portssvc.DocumentSvcFacade) {
	h := newAgentHandler(os, as, ds)

	operations := rg.Group("/operations")
	{
		operations.GET("/pending", h.listPendingOperations)
		operations.GET("/:id", h.getOperation)
		operations.GET("/:id/documents", h.listDocuments)
		operations.POST("/:id/approve", h.approveOperation)
		operations.POST("/:id/reject", h.rejectOperation)
	}
	rg.GET("/documents/:id", h.downloadDocument)
	rg.GET("/accounts/:number", h.getAccountByNumber)
}

// listPendingOperations godoc
// @Summary List the review queue
// @Description Retrieves operations awaiting review, oldest first
// @Tags agent
// @Produce  json
// @Success 200 {array} dto.OperationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /agent/operations/pending [get]
func (h *agentHandler) listPendingOperations(c *gin.Context) {
	ops, err := h.operationService.ListPendingOperations(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list pending operations")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponses(ops))
}

// getOperation godoc
// @Summary Get any operation
// @Tags agent
// @Produce  json
// @Param   id path string true "Operation ID"
// @Success 200 {object} dto.OperationResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /agent/operations/{id} [get]
func (h *agentHandler) getOperation(c *gin.Context) {
	op, err := h.operationService.GetOperationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve operation")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

// approveOperation godoc
// @Summary Approve a pending operation
// @Description Applies the operation's balance effect and marks it APPROVED. Source balance and transfer target are re-validated.
// @Tags agent
// @Produce  json
// @Param   id path string true "Operation ID"
// @Success 200 {object} dto.OperationResponse
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Operation already finalized"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /agent/operations/{id}/approve [post]
func (h *agentHandler) approveOperation(c *gin.Context) {
	reviewerUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	op, err := h.operationService.ApproveOperation(c.Request.Context(), c.Param("id"), reviewerUserID)
	if err != nil {
		respondWithError(c, err, "Failed to approve operation")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

// rejectOperation godoc
// @Summary Reject a pending operation
// @Description Marks the operation REJECTED. Balances are not touched.
// @Tags agent
// @Produce  json
// @Param   id path string true "Operation ID"
// @Success 200 {object} dto.OperationResponse
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Operation already finalized"
// @Security BearerAuth
// @Router /agent/operations/{id}/reject [post]
func (h *agentHandler) rejectOperation(c *gin.Context) {
	reviewerUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	op, err := h.operationService.RejectOperation(c.Request.Context(), c.Param("id"), reviewerUserID)
	if err != nil {
		respondWithError(c, err, "Failed to reject operation")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

// listDocuments godoc
// @Summary List documents attached to any operation
// @Tags agent
// @Produce  json
// @Param   id path string true "Operation ID"
// @Success 200 {array} dto.DocumentResponse
// @Security BearerAuth
// @Router /agent/operations/{id}/documents [get]
func (h *agentHandler) listDocuments(c *gin.Context) {
	docs, err := h.documentService.ListDocumentsByOperation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponses(docs))
}

// downloadDocument godoc
// @Summary Download any document
// @Tags agent
// @Produce  octet-stream
// @Param   id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /agent/documents/{id} [get]
func (h *agentHandler) downloadDocument(c *gin.Context) {
	doc, data, err := h.documentService.DownloadDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to download document")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Name+`"`)
	c.Data(http.StatusOK, doc.ContentType, data)
}

// getAccountByNumber godoc
// @Summary Look up an account by number
// @Tags agent
// @Produce  json
// @Param   number path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /agent/accounts/{number} [get]
func (h *agentHandler) getAccountByNumber(c *gin.Context) {
	acc, err := h.accountService.GetAccountByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}
