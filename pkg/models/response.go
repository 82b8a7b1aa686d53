package models

// ErrorType categorizes API errors for clients.
type ErrorType string

const (
	GeneralErrorType    ErrorType = "general"
	ValidationErrorType ErrorType = "validation"
	NotFoundErrorType   ErrorType = "not_found"
)

// APIResponse is the uniform envelope returned by every HTTP handler.
type APIResponse struct {
	Status    string      `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	ErrorType ErrorType   `json:"error_type,omitempty"`
}
