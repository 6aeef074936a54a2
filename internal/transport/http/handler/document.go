package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pdfsearch/internal/app"
	"pdfsearch/internal/model"
	"pdfsearch/internal/pkg/snippet"
	"pdfsearch/internal/transport/http/middleware"
	"pdfsearch/internal/transport/http/response"
)

const (
	msgUploaded        = "File has been uploaded."
	msgOnlyPDF         = "Only PDF files are allowed."
	msgTooLarge        = "File exceeds the maximum upload size."
	msgNameTooLong     = "File name is too long."
	msgExtractFailed   = "Failed to extract text from the PDF."
	msgUploadFailed    = "File upload failed."
	uploadFormFieldKey = "file"
	defaultUploadLimit = 10 << 20
	// room for multipart boundaries and headers around the file itself
	multipartOverhead = 1 << 20
)

type DocumentHandler struct {
	documents      *app.DocumentService
	search         *app.SearchService
	maxUploadBytes int64
}

func NewDocumentHandler(documents *app.DocumentService, search *app.SearchService, maxUploadBytes int64) *DocumentHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultUploadLimit
	}
	return &DocumentHandler{
		documents:      documents,
		search:         search,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.UploadFailed(c, http.StatusUnauthorized, "user not found in token")
		return
	}

	bodyLimit := h.maxUploadBytes + multipartOverhead
	if c.Request.ContentLength > bodyLimit {
		response.UploadFailed(c, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)

	header, err := c.FormFile(uploadFormFieldKey)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.UploadFailed(c, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		response.UploadFailed(c, http.StatusBadRequest, msgOnlyPDF)
		return
	}
	file, err := header.Open()
	if err != nil {
		response.UploadFailed(c, http.StatusBadRequest, msgOnlyPDF)
		return
	}
	defer file.Close()

	// One byte past the limit is enough for the service to reject it.
	content, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		response.UploadFailed(c, http.StatusBadRequest, msgUploadFailed)
		return
	}

	doc, err := h.documents.Ingest(c.Request.Context(), app.IngestInput{
		UserID:       userID,
		OriginalName: header.Filename,
		Content:      content,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotPDF), errors.Is(err, app.ErrInvalidInput):
			response.UploadFailed(c, http.StatusBadRequest, msgOnlyPDF)
		case errors.Is(err, app.ErrFileTooLarge):
			response.UploadFailed(c, http.StatusBadRequest, msgTooLarge)
		case errors.Is(err, app.ErrFileNameTooLong):
			response.UploadFailed(c, http.StatusBadRequest, msgNameTooLong)
		case errors.Is(err, app.ErrExtraction):
			response.UploadFailed(c, http.StatusUnprocessableEntity, msgExtractFailed)
		default:
			response.UploadFailed(c, http.StatusInternalServerError, msgUploadFailed)
		}
		return
	}

	response.Uploaded(c, msgUploaded, doc)
}

// Search always answers 200; anything unusable in the request yields no results.
func (h *DocumentHandler) Search(c *gin.Context) {
	results := make([]snippet.Result, 0)

	userID, ok := middleware.CurrentUserID(c)
	documentID, err := strconv.ParseUint(strings.TrimSpace(c.Query("document")), 10, 0)
	if ok && err == nil {
		results = h.search.Search(c.Request.Context(), app.SearchInput{
			UserID:     userID,
			DocumentID: uint(documentID),
			Query:      c.Query("query"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *DocumentHandler) Documents(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	docs, err := h.documents.ListDocuments(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	if docs == nil {
		docs = make([]model.Document, 0)
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}
