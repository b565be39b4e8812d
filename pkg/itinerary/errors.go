package itinerary

import (
	"errors"
	"fmt"
)

var ErrMissingField = errors.New("missing field")

// DataError reports a required field of the route search document that is
// absent or malformed. Field is the dotted path inside the course.
type DataError struct {
	Field string
	Err   error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("route search document field %s: %v", e.Field, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return &DataError{Field: field, Err: ErrMissingField}
}
