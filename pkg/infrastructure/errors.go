package infrastructure

import "fmt"

// ConversionError reports that HTML could not be turned into a PDF document.
type ConversionError struct {
	Engine string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("pdf conversion (%s): %v", e.Engine, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func conversionError(engine string, err error) error {
	return &ConversionError{Engine: engine, Err: err}
}

// checkPDF verifies the document signature of converter output.
func checkPDF(engine string, b []byte) error {
	if len(b) < 4 || string(b[:4]) != "%PDF" {
		return conversionError(engine, fmt.Errorf("invalid PDF output (len=%d)", len(b)))
	}
	return nil
}
