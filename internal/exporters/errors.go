package exporters

import (
	"fmt"

	"log-insights/internal/shared/svcerrors"
)

// Exporter errors
const (
	codeInternalExportFailed = "EXP_9000"
)

// errExportFailed returns an error when an output target cannot be written.
func errExportFailed(target string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalExportFailed,
		fmt.Sprintf("failed to write target %q", target), cause)
}
