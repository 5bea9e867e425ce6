package common

import "net/http"

// Error codes surfaced to clients alongside the HTTP status.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeInsufficientTcGold = "INSUFFICIENT_TCGOLD"
	CodeInvalidState       = "INVALID_STATE"
	CodeServerError        = "SERVER_ERROR"
)

type SuccessResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Error   string      `json:"error"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Status:  http.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message, code string, status int) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Success: false,
		Code:    code,
		Error:   message,
	}
}

// NewErrorResponseWithData attaches detail (e.g. required vs current amounts
// for a shortfall) for client display.
func NewErrorResponseWithData(message, code string, status int, data interface{}) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Success: false,
		Code:    code,
		Error:   message,
		Data:    data,
	}
}
