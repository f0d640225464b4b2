package dto

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	ErrorCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrorCodeServerError  ErrorCode = "SERVER_ERROR"
)

// ErrorDetail carries the sanitized error information returned to clients.
// Internal error detail never crosses this boundary; it is logged
// server-side only.
type ErrorDetail struct {
	Code    ErrorCode `json:"code" example:"NOT_FOUND"`
	Message string    `json:"message" example:"Notice not found"`
}

// APIResponse is the uniform envelope used by every endpoint
type APIResponse struct {
	Success bool         `json:"success" example:"true"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// NewSuccessResponse wraps a payload in the success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse wraps an error code and message in the error envelope
func NewErrorResponse(code ErrorCode, message string) APIResponse {
	return APIResponse{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}
