package domain

import (
	"errors"
	"fmt"
)

// DataValidationError is returned when product data is malformed or an
// update targets a row that does not exist.
type DataValidationError struct {
	Message string
}

func NewDataValidationError(format string, args ...interface{}) *DataValidationError {
	return &DataValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *DataValidationError) Error() string {
	return e.Message
}

// IsDataValidationError reports whether err or anything it wraps is a DataValidationError
func IsDataValidationError(err error) bool {
	var target *DataValidationError
	return errors.As(err, &target)
}
