package sorting

import (
	"fmt"

	"github.com/kailas-cloud/autospecs/internal/domain"
)

// Direction is a sort order.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid reports whether the direction is asc or desc.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// ParseDirection validates a sort order. Empty input means ascending.
func ParseDirection(s string) (Direction, error) {
	if s == "" {
		return Asc, nil
	}
	d := Direction(s)
	if !d.IsValid() {
		return "", domain.NewInvalidInput("sortOrder", fmt.Sprintf("sortOrder must be either %q or %q", Asc, Desc))
	}
	return d, nil
}

// Field is one key of an engine sort, already resolved to its sortable field.
type Field struct {
	Name      string
	Direction Direction
}
