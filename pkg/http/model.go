package http

// ErrorBody is the body of every non-2xx JSON response.
type ErrorBody struct {
	Error   string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}

// ResultBody wraps a successful tool result.
type ResultBody struct {
	Result interface{} `json:"result"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"prices"`
	Message string                 `json:"message,omitempty" example:"prices is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
