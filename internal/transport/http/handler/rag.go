package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"echoai/internal/app"
	"echoai/internal/model"
	"echoai/internal/pkg/extract"
	"echoai/internal/transport/http/middleware"
	"echoai/internal/transport/http/response"
)

type RAGHandler struct {
	ragService  *app.RAGService
	maxFileSize int64
}

func NewRAGHandler(ragService *app.RAGService, maxFileSize int64) *RAGHandler {
	return &RAGHandler{
		ragService:  ragService,
		maxFileSize: maxFileSize,
	}
}

// Upload accepts a multipart form with "files", extracts text from the first
// file and stores it for the caller's session, replacing any previous document.
func (h *RAGHandler) Upload(c *gin.Context) {
	start := time.Now()
	sessionID := sessionIDFromContext(c)

	file, err := c.FormFile("files")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No files provided")
		return
	}
	if file.Size > h.maxFileSize {
		response.Error(c, http.StatusBadRequest, "File too large")
		return
	}
	if !extract.Supported(file.Filename) {
		response.Error(c, http.StatusBadRequest, "File type not supported")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read file")
		return
	}

	text, err := extract.Text(file.Filename, data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			response.Error(c, http.StatusBadRequest, "File type not supported")
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to extract text from file")
		return
	}
	if text == "" {
		response.Error(c, http.StatusBadRequest, "No text could be extracted from the file")
		return
	}

	if err := h.ragService.Upload(sessionID, text, file.Filename); err != nil {
		response.Error(c, http.StatusBadRequest, "Upload processing failed")
		return
	}

	c.JSON(http.StatusOK, model.UploadResponse{
		Message:        "Successfully processed " + file.Filename,
		DocumentCount:  1,
		ChunkCount:     1,
		ProcessingTime: time.Since(start).Seconds(),
		Timestamp:      time.Now(),
	})
}

// Query answers a question against the caller's session document.
func (h *RAGHandler) Query(c *gin.Context) {
	sessionID := sessionIDFromContext(c)

	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Question cannot be empty")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		response.Error(c, http.StatusBadRequest, "Question cannot be empty")
		return
	}

	result := h.ragService.Query(c.Request.Context(), sessionID, question)

	c.JSON(http.StatusOK, model.QueryResponse{
		Answer:         result.Answer,
		Sources:        result.Sources,
		Confidence:     result.Confidence,
		ProcessingTime: result.ProcessingTime,
		Timestamp:      time.Now(),
	})
}

// Status reports whether the caller's session has a document loaded.
func (h *RAGHandler) Status(c *gin.Context) {
	sessionID := sessionIDFromContext(c)

	loaded, filename := h.ragService.Status(sessionID)
	resp := model.StatusResponse{
		Status:          "operational",
		DocumentsLoaded: loaded,
	}
	if loaded {
		resp.DocumentFilename = &filename
	}
	c.JSON(http.StatusOK, resp)
}

// ClearDocuments removes the caller's session document.
func (h *RAGHandler) ClearDocuments(c *gin.Context) {
	sessionID := sessionIDFromContext(c)

	h.ragService.Clear(sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "All documents cleared successfully"})
}

func sessionIDFromContext(c *gin.Context) string {
	if v, ok := c.Get(middleware.ContextSessionIDKey); ok {
		if sessionID, ok := v.(string); ok {
			return sessionID
		}
	}
	return ""
}
