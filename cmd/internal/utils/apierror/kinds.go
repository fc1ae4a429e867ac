package apierror

import "net/http"

// Kind classifies domain failures so callers can react without parsing messages.
type Kind string

const (
	KindDuplicateEntry       Kind = "DUPLICATE_ENTRY"
	KindDuplicateInvitation  Kind = "DUPLICATE_INVITATION"
	KindMissingContactMethod Kind = "MISSING_CONTACT_METHOD"
	KindNotFound             Kind = "NOT_FOUND"
	KindAlreadyConnected     Kind = "ALREADY_CONNECTED"
	KindStorageUnavailable   Kind = "STORAGE_UNAVAILABLE"
	KindInvalidArgument      Kind = "INVALID_ARGUMENT"
	KindInvalidTransition    Kind = "INVALID_TRANSITION"
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindDuplicateEntry, KindDuplicateInvitation, KindAlreadyConnected:
		return http.StatusConflict
	case KindMissingContactMethod, KindInvalidArgument, KindInvalidTransition:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is the failure type returned by every core operation.
//
// ID and Field carry the offending record id or input field, so the caller
// can build a meaningful message without string matching.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	ID      string
	Cause   error

	// Validation holds the raw validator error for InvalidArgument failures
	// produced by struct validation.
	Validation error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, apierror.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrDuplicateEntry       = &Error{Kind: KindDuplicateEntry, Message: "duplicate entry"}
	ErrDuplicateInvitation  = &Error{Kind: KindDuplicateInvitation, Message: "duplicate invitation"}
	ErrMissingContactMethod = &Error{Kind: KindMissingContactMethod, Message: "missing contact method"}
	ErrNotFound             = &Error{Kind: KindNotFound, Message: "not found"}
	ErrAlreadyConnected     = &Error{Kind: KindAlreadyConnected, Message: "already connected"}
	ErrStorageUnavailable   = &Error{Kind: KindStorageUnavailable, Message: "storage unavailable"}
	ErrInvalidArgument      = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrInvalidTransition    = &Error{Kind: KindInvalidTransition, Message: "invalid status transition"}
)

func DuplicateEntry(field, value string) *Error {
	return &Error{
		Kind:    KindDuplicateEntry,
		Message: "a business with the same " + field + " already exists",
		Field:   field,
		ID:      value,
	}
}

func DuplicateInvitation(businessID, eventID string) *Error {
	return &Error{
		Kind:    KindDuplicateInvitation,
		Message: "business " + businessID + " already has an active invitation for event " + eventID,
		Field:   "event_id",
		ID:      businessID,
	}
}

func MissingContactMethod() *Error {
	return &Error{
		Kind:    KindMissingContactMethod,
		Message: "at least one of email or phone is required",
		Field:   "email",
	}
}

func NotFound(resource, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: resource + " " + id + " not found",
		ID:      id,
	}
}

func AlreadyConnected(code, accountID string) *Error {
	return &Error{
		Kind:    KindAlreadyConnected,
		Message: "invitation code " + code + " is already connected to account " + accountID,
		Field:   "code",
		ID:      code,
	}
}

func StorageUnavailable(collection string, cause error) *Error {
	return &Error{
		Kind:    KindStorageUnavailable,
		Message: "collection " + collection + " is unavailable",
		ID:      collection,
		Cause:   cause,
	}
}

func InvalidArgument(field, msg string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: msg,
		Field:   field,
	}
}

func InvalidValidation(err error) *Error {
	return &Error{
		Kind:       KindInvalidArgument,
		Message:    "request validation failed",
		Validation: err,
		Cause:      err,
	}
}

func InvalidTransition(id, from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: "cannot move proposal " + id + " from " + from + " to " + to,
		Field:   "status",
		ID:      id,
	}
}
