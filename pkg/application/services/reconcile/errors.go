package reconcile

import "fmt"

// Side names the input sheet a failure belongs to
type Side string

const (
	SideRequisition Side = "requisition"
	SideStock       Side = "stock"
)

// ProcessingError reports an input sheet that could not be parsed into rows
type ProcessingError struct {
	Side Side
	Err  error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("failed to read %s sheet: %v", e.Side, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
