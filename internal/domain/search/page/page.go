package page

import (
	"fmt"

	"github.com/kailas-cloud/autospecs/internal/domain"
)

// Pagination limits.
const (
	DefaultSize = 20
	MaxSize     = 100
)

// Spec is a validated 1-indexed page window.
type Spec struct {
	page int
	size int
}

// New validates a page window: page >= 1 and 1 <= size <= maxSize.
func New(page, size, maxSize int) (Spec, error) {
	if page < 1 || size < 1 || size > maxSize {
		return Spec{}, domain.NewInvalidInput("pagination",
			fmt.Sprintf("page must be >= 1, size must be between 1 and %d", maxSize))
	}
	return Spec{page: page, size: size}, nil
}

// Page returns the 1-indexed page number.
func (s Spec) Page() int { return s.page }

// Size returns the page size.
func (s Spec) Size() int { return s.size }

// Offset returns the zero-based index of the first row of the page.
func (s Spec) Offset() int { return (s.page - 1) * s.size }

// TotalPages returns how many pages of this size cover total rows.
func (s Spec) TotalPages(total int64) int {
	if s.size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(s.size) - 1) / int64(s.size))
}

// Window returns the [start, end) slice bounds of this page over n items.
func (s Spec) Window(n int) (int, int) {
	start := s.Offset()
	if start > n {
		start = n
	}
	end := start + s.size
	if end > n {
		end = n
	}
	return start, end
}
