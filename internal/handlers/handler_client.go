package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
)

// clientHandler serves the client-facing surface: their accounts, their
// operations and the documents they attach.
type clientHandler struct {
	operationService portssvc.OperationSvcFacade
	accountService   portssvc.AccountSvcFacade
	documentService  portssvc.DocumentSvcFacade
	maxUploadBytes   int64
}

func newClientHandler(os portssvc.OperationSvcFacade, as portssvc.AccountSvcFacade, ds portssvc.DocumentSvcFacade, maxUploadBytes int64) *clientHandler {
	return &clientHandler{
		operationService: os,
		accountService:   as,
		documentService:  ds,
		maxUploadBytes:   maxUploadBytes,
	}
}

// registerClientRoutes registers the client route group.
func registerClientRoutes(rg *gin.RouterGroup, os portssvc.OperationSvcFacade, as portssvc.AccountSvcFacade, ds portssvc.DocumentSvcFacade, maxUploadBytes int64) {
	h := newClientHandler(os, as, ds, maxUploadBytes)

	rg.GET("/accounts", h.listAccounts)
	operations := rg.Group("/operations")
	{
		operations.POST("", h.createOperation)
		operations.GET("", h.listOperations)
		operations.GET("/:id", h.getOperation)
		operations.POST("/:id/documents", h.uploadDocument)
		operations.GET("/:id/documents", h.listDocuments)
	}
	rg.GET("/documents/:id", h.downloadDocument)
}

// mustUserID pulls the authenticated user's ID out of the request context.
func mustUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// ownsOperation checks that the operation's source account belongs to the
// user.
func (h *clientHandler) ownsOperation(c *gin.Context, op *domain.Operation, userID string) bool {
	accounts, err := h.accountService.ListAccountsByUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to verify operation ownership")
		return false
	}
	for _, acc := range accounts {
		if acc.AccountID == op.SourceAccountID {
			return true
		}
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	return false
}

// listAccounts godoc
// @Summary List own accounts
// @Tags client
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /client/accounts [get]
func (h *clientHandler) listAccounts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccountsByUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// createOperation godoc
// @Summary Submit a new operation
// @Description Creates a deposit, withdrawal or transfer. Amounts at or below the auto-validation threshold execute immediately; larger amounts await review.
// @Tags client
// @Accept  json
// @Produce  json
// @Param   operation body dto.CreateOperationRequest true "Operation details"
// @Success 201 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /client/operations [post]
func (h *clientHandler) createOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind operation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, err := h.operationService.CreateOperation(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create operation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOperationResponse(op))
}

// listOperations godoc
// @Summary List own operations
// @Tags client
// @Produce  json
// @Success 200 {array} dto.OperationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /client/operations [get]
func (h *clientHandler) listOperations(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	ops, err := h.operationService.ListOperationsByUser(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list operations")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponses(ops))
}

// getOperation godoc
// @Summary Get one of own operations
// @Tags client
// @Produce  json
// @Param   id path string true "Operation ID"
// @Success 200 {object} dto.OperationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /client/operations/{id} [get]
func (h *clientHandler) getOperation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	op, err := h.operationService.GetOperationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve operation")
		return
	}
	if !h.ownsOperation(c, op, userID) {
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationResponse(op))
}

// uploadDocument godoc
// @Summary Attach a supporting document to an operation
// @Description Uploads a file for one of the caller's operations. For operations pending review the automated validation check runs and may finalize the operation.
// @Tags client
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "Operation ID"
// @Param   file formData file true "Document file"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid file"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Operation not found"
// @Security BearerAuth
// @Router /client/operations/{id}/documents [post]
func (h *clientHandler) uploadDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	operationID := c.Param("id")
	op, err := h.operationService.GetOperationByID(c.Request.Context(), operationID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve operation")
		return
	}
	if !h.ownsOperation(c, op, userID) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in upload request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file form field is required"})
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, err, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		respondWithError(c, err, "Failed to read uploaded file")
		return
	}

	upload := dto.DocumentUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	doc, err := h.documentService.UploadDocument(c.Request.Context(), operationID, upload, userID)
	if err != nil {
		respondWithError(c, err, "Failed to upload document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List documents attached to one of own operations
// @Tags client
// @Produce  json
// @Param   id path string true "Operation ID"
// @Success 200 {array} dto.DocumentResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /client/operations/{id}/documents [get]
func (h *clientHandler) listDocuments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	operationID := c.Param("id")
	op, err := h.operationService.GetOperationByID(c.Request.Context(), operationID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve operation")
		return
	}
	if !h.ownsOperation(c, op, userID) {
		return
	}

	docs, err := h.documentService.ListDocumentsByOperation(c.Request.Context(), operationID)
	if err != nil {
		respondWithError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponses(docs))
}

// downloadDocument godoc
// @Summary Download one of own documents
// @Tags client
// @Produce  octet-stream
// @Param   id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /client/documents/{id} [get]
func (h *clientHandler) downloadDocument(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	doc, data, err := h.documentService.DownloadDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to download document")
		return
	}

	op, err := h.operationService.GetOperationByID(c.Request.Context(), doc.OperationID)
	if err != nil {
		respondWithError(c, err, "Failed to verify document ownership")
		return
	}
	if !h.ownsOperation(c, op, userID) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Name+`"`)
	c.Data(http.StatusOK, doc.ContentType, data)
}
