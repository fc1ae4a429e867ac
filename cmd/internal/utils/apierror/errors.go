package apierror

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"net/http"
	"strings"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
// Domain failures travel as *Error and are converted with FromError.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	ID      string `json:"id,omitempty"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Kind   Kind                `json:"kind"`
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError         = NewSimple(404, "Resource not found")
	InvalidAuthTokenError = NewSimple(401, "Invalid or missing authorization token")
	UnauthorizedError     = NewSimple(401, "Unauthorized")
)

// FromError converts any error returned by the services into an API response.
// Unknown errors are logged by the caller and reported as 500s.
func FromError(err error) ErrorResponse {
	if err == nil {
		return nil
	}

	var se *StructuredError
	if errors.As(err, &se) {
		return se
	}

	var de *Error
	if !errors.As(err, &de) {
		return InternalServerError
	}

	if de.Validation != nil {
		if structured := FromValidationError(de.Validation); structured != nil {
			return structured
		}
	}

	return &APIError{
		Kind:    de.Kind,
		Message: de.Message,
		Field:   de.Field,
		ID:      de.ID,
		Status:  de.Kind.HTTPStatus(),
	}
}

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "required_with":
			problems[field] = append(problems[field], "This field is required together with "+strings.ToLower(fe.Param()))
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "gte":
			problems[field] = append(problems[field], "Value must be at least "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "url":
			problems[field] = append(problems[field], "Value must be a valid URL")
		case "latitude":
			problems[field] = append(problems[field], "Value must be a valid latitude")
		case "longitude":
			problems[field] = append(problems[field], "Value must be a valid longitude")
		case "phone":
			problems[field] = append(problems[field], "Value must be a valid phone number")
		case "nospaces":
			problems[field] = append(problems[field], "Value must not contain whitespace")
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Kind:   KindInvalidArgument,
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return &APIError{
		Kind:    KindInvalidArgument,
		Message: fmt.Sprintf("Parameter '%s' has invalid type, expected: %s", name, dataType),
		Field:   name,
		Status:  http.StatusBadRequest,
	}
}

func NewMissingParamError(name string) *APIError {
	return &APIError{
		Kind:    KindInvalidArgument,
		Message: fmt.Sprintf("Parameter '%s' is required", name),
		Field:   name,
		Status:  http.StatusBadRequest,
	}
}

// NewPermissionError reports the missing permission bits so clients can tell which capability is lacking.
func NewPermissionError(perm int64) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Missing permission: %d", perm),
		Status:  http.StatusForbidden,
	}
}
