package dto

import "errors"

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
)

// ActionResult is the {success, data|error} answer of every admin mutation
type ActionResult struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func ActionOK(data any) *ActionResult {
	return &ActionResult{Success: true, Data: data}
}

func ActionFailed(message string) *ActionResult {
	return &ActionResult{Success: false, Error: message}
}

func ActionNotFound(message string) *ActionResult {
	return &ActionResult{Success: false, Error: message, Code: CodeNotFound}
}

// ActionInvalid converts a form validation error into a failed result
func ActionInvalid(err error) *ActionResult {
	var fe *FormError
	if errors.As(err, &fe) {
		return &ActionResult{Success: false, Error: fe.Message, Code: CodeValidation, Fields: fe.Fields}
	}
	return &ActionResult{Success: false, Error: err.Error(), Code: CodeValidation}
}

func (r *ActionResult) IsValidationFailure() bool {
	return r != nil && !r.Success && r.Code == CodeValidation
}
