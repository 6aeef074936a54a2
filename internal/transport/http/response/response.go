package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfsearch/internal/model"
)

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeUnauthorized       = 40100
	CodeInternalServer     = 50000
	CodeUsernameExists     = 40001
	CodeEmailExists        = 40002
	CodeInvalidCredentials = 40101
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// UploadResponse is the envelope of POST /upload: message on success, error otherwise.
type UploadResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message,omitempty"`
	Error    string          `json:"error,omitempty"`
	Document *model.Document `json:"document,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

func Uploaded(c *gin.Context, message string, doc *model.Document) {
	c.JSON(http.StatusOK, UploadResponse{
		Success:  true,
		Message:  message,
		Document: doc,
	})
}

func UploadFailed(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, UploadResponse{
		Success: false,
		Error:   message,
	})
}
