package hidreport

import (
	"fmt"

	"github.com/pkg/errors"
)

// OutOfBoundsError is returned when the byte stream ends before an item's
// declared data length (or a long item's header) is satisfied.
type OutOfBoundsError struct {
	// Offset is the byte offset of the item that ran out of data.
	Offset int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("hidreport: out of bounds at offset %d", e.Offset)
}

// InvalidDataError is a semantic violation: an empty globals stack on Pop, mixed report-ID presence within one
// direction, missing globals required to emit a field, or
// logical_minimum > logical_maximum.
type InvalidDataError struct {
	Offset  int
	Data    uint32
	Message string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("hidreport: invalid data 0x%X at offset %d: %s", e.Data, e.Offset, e.Message)
}

func outOfBounds(offset int) error {
	return errors.WithStack(&OutOfBoundsError{Offset: offset})
}

func invalidData(offset int, data uint32, format string, args ...any) error {
	return errors.WithStack(&InvalidDataError{
		Offset:  offset,
		Data:    data,
		Message: fmt.Sprintf(format, args...),
	})
}
