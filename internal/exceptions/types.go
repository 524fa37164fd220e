package exceptions

import (
	"fmt"
	"net/http"
)

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

func (se *ServiceError) Unwrap() error {
	return se.Cause
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

type ConflictError struct {
	Resource string
	Id       string
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("Found conflicting %s with id: %s", ce.Resource, ce.Id)
}

func (ce *ConflictError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusConflict,
		Cause:      ce,
	}
}

func Conflict(resource string, id string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Id:       id,
	}
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusNotFound,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusBadRequest,
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

func InvalidInputf(format string, args ...any) *InvalidInputError {
	return InvalidInput(fmt.Sprintf(format, args...))
}

// UnprocessableError reports a well formed body that breaks a field rule.
// Fields maps a field path (e.g. "steps.0.tool") to its message.
type UnprocessableError struct {
	Resource string
	Fields   map[string]string
}

func (ue *UnprocessableError) Error() string {
	return fmt.Sprintf("Invalid %s: %d field(s) failed validation", ue.Resource, len(ue.Fields))
}

func (ue *UnprocessableError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      ue,
	}
}

func Invalid(resource string, fields map[string]string) *UnprocessableError {
	return &UnprocessableError{
		Resource: resource,
		Fields:   fields,
	}
}

func InternalServer(message string) *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Cause:      fmt.Errorf("%s", message),
	}
}
