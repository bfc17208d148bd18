package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResponseData represents the structure of a standard API response: a
// success flag, the payload or null, and the error or an empty object.
type ResponseData struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries the error half of the response envelope.
type APIError struct {
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// Pagination wraps one page of results together with the total match count,
// so clients can render page controls without a second request.
type Pagination struct {
	PageIndex int         `json:"pageIndex"`
	PageSize  int         `json:"pageSize"`
	Count     int64       `json:"count"`
	Data      interface{} `json:"data"`
}

func defaultMessage(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusUnauthorized:
		return "Not authorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "No content found"
	case http.StatusTooManyRequests:
		return "Too many requests"
	case http.StatusInternalServerError:
		return "Internal error"
	default:
		return ""
	}
}

// Success sends a standard success response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Success: true,
		Data:    data,
		Error:   &APIError{},
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Success: true,
		Data:    data,
		Error:   &APIError{},
	})
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, details string) {
	c.JSON(statusCode, ResponseData{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Message: defaultMessage(statusCode),
			Details: details,
		},
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, details string) {
	Error(c, http.StatusBadRequest, details)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, details string) {
	Error(c, http.StatusUnauthorized, details)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, details string) {
	Error(c, http.StatusForbidden, details)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, details string) {
	Error(c, http.StatusNotFound, details)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, details string) {
	Error(c, http.StatusInternalServerError, details)
}
