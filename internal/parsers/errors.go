package parsers

import (
	"fmt"

	"log-insights/internal/shared/svcerrors"
)

// LineParser errors
const (
	CodeFieldCount   = "PRS_1000"
	CodeStatusFormat = "PRS_1001"

	codeInternalInputRead = "PRS_9000"
)

// ParseError is a per-line, recoverable parse failure.
type ParseError struct {
	Line int
	Err  *svcerrors.ServiceError
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

// Unwrap exposes the underlying ServiceError to errors.As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// errFieldCount returns an error for a line splitting into fewer than 5 fields.
func errFieldCount(line, got int) *ParseError {
	return &ParseError{
		Line: line,
		Err: svcerrors.NewInvalidArgumentError(CodeFieldCount,
			fmt.Sprintf("expected %d fields, got %d", recordFieldCount, got), nil),
	}
}

// errEmptyField returns an error for a line with a present but empty field.
func errEmptyField(line int, field string) *ParseError {
	return &ParseError{
		Line: line,
		Err: svcerrors.NewInvalidArgumentError(CodeFieldCount,
			fmt.Sprintf("field %q is empty", field), nil),
	}
}

// errStatusFormat returns an error for a non-integer status field.
func errStatusFormat(line int, raw string) *ParseError {
	return &ParseError{
		Line: line,
		Err: svcerrors.NewInvalidArgumentError(CodeStatusFormat,
			fmt.Sprintf("status %q is not an integer", raw), nil),
	}
}

// errInputRead returns an error when the underlying reader fails mid-scan.
func errInputRead(line int, cause error) *ParseError {
	return &ParseError{
		Line: line,
		Err:  svcerrors.NewInternalError(codeInternalInputRead, "failed to read input", cause),
	}
}
