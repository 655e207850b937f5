package app

import (
	"fmt"

	"log-insights/internal/shared/svcerrors"
)

// Run errors
const (
	codeInputUnavailable = "RUN_1000"
)

// errInputUnavailable returns an error when the input source cannot be opened.
func errInputUnavailable(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInputUnavailable,
		fmt.Sprintf("input %q unavailable", path), cause)
}
