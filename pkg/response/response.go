package response

// Response is the envelope every API reply uses
type Response struct {
	Status     string      `json:"status"`      // "success", "partial" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Partial reports work that was only partly applied: data holds what succeeded
func Partial(statusCode int, data interface{}, err string) Response {
	return Response{
		Status:     "partial",
		StatusCode: statusCode,
		Data:       data,
		Error:      err,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
