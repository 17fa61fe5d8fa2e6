package certgen

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions across the pipeline.
var (
	ErrEmptyDataset      = errors.New("certgen: dataset has no columns")
	ErrDuplicateHeader   = errors.New("certgen: duplicate column header")
	ErrRaggedDataset     = errors.New("certgen: row width does not match header count")
	ErrTemplateDecode    = errors.New("certgen: template image cannot be decoded")
	ErrUnknownFormat     = errors.New("certgen: unknown output format")
	ErrUnknownColumn     = errors.New("certgen: column not present in dataset")
	ErrPlacementNotFound = errors.New("certgen: placement not found")
	ErrUnboundElement    = errors.New("certgen: canvas element not bound to a placement")
	ErrArchive           = errors.New("certgen: archive assembly failed")
)

// RowError reports a failure while rendering one dataset row. Row is the
// 1-based ordinal used in output filenames.
type RowError struct {
	Row int   // 1-based row ordinal
	Err error // underlying render failure
}

func (e *RowError) Error() string {
	return fmt.Sprintf("certgen: row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
