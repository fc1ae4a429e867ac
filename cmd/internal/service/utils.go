package service

import (
	"time"

	"eventmarket/cmd/internal/utils"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Clock and IDGenerator are swapped in tests to get deterministic records.
type (
	Clock       func() time.Time
	IDGenerator func() (string, error)
)

func systemClock() time.Time {
	return time.Now().UTC()
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// validateRequest trims every string field and runs the struct validation tags.
func validateRequest(validate *validator.Validate, req any) error {
	utils.Sanitize(req)
	if err := validate.Struct(req); err != nil {
		return apierror.InvalidValidation(err)
	}
	return nil
}

func indexOf[T any](records []T, match func(*T) bool) int {
	for i := range records {
		if match(&records[i]) {
			return i
		}
	}
	return -1
}
