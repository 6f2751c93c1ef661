package listing

import (
	"context"
	"fmt"

	"github.com/viperdavethesnake/gathermedata/internal/catalog"
)

// ThreadKey formats a thread number as its archive key (e.g. "007.zip").
func ThreadKey(n int) string {
	return fmt.Sprintf("%03d.zip", n)
}

// ThreadLister enumerates a contiguous range of archive threads. The range
// is known up front, so listing needs no network round-trips.
type ThreadLister struct {
	start int
	count int
}

// NewThreadLister creates a lister for threads [start, start+count). The
// range must lie within the corpus bounds.
func NewThreadLister(start, count int) (*ThreadLister, error) {
	if start < 0 || start >= catalog.ThreadCount {
		return nil, fmt.Errorf("thread start %d out of range 0-%d", start, catalog.ThreadCount-1)
	}
	if count <= 0 {
		return nil, fmt.Errorf("thread count must be positive, got %d", count)
	}
	if start+count > catalog.ThreadCount {
		return nil, fmt.Errorf("thread range %d-%d exceeds maximum %d",
			start, start+count-1, catalog.ThreadCount-1)
	}
	return &ThreadLister{start: start, count: count}, nil
}

// List yields the archive keys for the configured range. Sizes are unknown
// until fetch time and reported as 0.
func (l *ThreadLister) List(ctx context.Context, max int) ([]Object, error) {
	count := l.count
	if max > 0 && max < count {
		count = max
	}

	objects := make([]Object, 0, count)
	for i := l.start; i < l.start+count; i++ {
		objects = append(objects, Object{Key: ThreadKey(i)})
	}
	return objects, nil
}
