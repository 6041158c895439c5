// Package result defines the envelope every service operation returns.
// The shape is transport-agnostic: handlers serialize it as-is.
package result

import "net/http"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ServiceError struct {
	Code             string       `json:"code"`
	Message          string       `json:"message"`
	ValidationErrors []FieldError `json:"validationErrors,omitempty"`
}

type Result[T any] struct {
	IsSuccess      bool          `json:"isSuccess"`
	HTTPStatusCode int           `json:"httpStatusCode"`
	Error          *ServiceError `json:"error"`
	Data           T             `json:"data"`
}

func OK[T any](status int, data T) Result[T] {
	return Result[T]{
		IsSuccess:      true,
		HTTPStatusCode: status,
		Data:           data,
	}
}

func Fail[T any](status int, err ServiceError) Result[T] {
	return Result[T]{
		IsSuccess:      false,
		HTTPStatusCode: status,
		Error:          &err,
	}
}

// Internal collapses any unexpected failure to a generic 500 without
// leaking detail to the caller.
func Internal[T any]() Result[T] {
	return Fail[T](http.StatusInternalServerError, SomethingWentWrong)
}
