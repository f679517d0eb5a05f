package response

import "vendordocs/pkg/pagination"

// Response is the envelope every endpoint returns.
type Response struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Listing wraps a paginated collection with its paging metadata.
type Listing struct {
	Items interface{}     `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// List wraps a collection page in a success envelope.
func List(statusCode int, items interface{}, meta pagination.Meta) Response {
	return Success(statusCode, Listing{Items: items, Meta: meta})
}

// Error wraps a message in an error envelope.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
