// Package listing enumerates the remote units of a dataset: object keys
// under an S3 prefix, or numbered archive threads on an HTTP origin. Both
// styles sit behind the Lister interface so callers never see the
// pagination protocol.
package listing

import (
	"context"
	"fmt"
)

// Object describes one addressable remote unit.
type Object struct {
	// Key is the remote path, unique within a listing prefix.
	Key string

	// Size is the object size in bytes, 0 when the remote does not
	// report one.
	Size int64
}

// Lister produces a bounded sequence of remote objects. A max of 0 means
// unbounded. Each call starts a fresh pagination cursor.
type Lister interface {
	List(ctx context.Context, max int) ([]Object, error)
}

// PartialError reports a listing that failed partway through. The objects
// accumulated before the failure are still returned alongside it; the
// caller decides whether a partial enumeration is acceptable.
type PartialError struct {
	// Listed is the number of objects accumulated before the failure.
	Listed int

	// Err is the underlying listing error.
	Err error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("listing failed after %d objects: %v", e.Listed, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}
