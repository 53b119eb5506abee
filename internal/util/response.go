package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaanoztekin99/3d-object-generation/pkg/logger"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// StatusResponse /save 成功时的响应体
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse /save 失败时的响应体
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

func StatusOK(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

func FailDetail(c *gin.Context, code int, message, detail string) {
	c.JSON(code, ErrorResponse{Error: message, Detail: detail})
}
