package rewards

import (
	"errors"
	"fmt"

	"ecorewards/internal/domain"
)

// Failure cases the handlers map onto HTTP statuses.
var (
	ErrBinNotFound     = errors.New("invalid or inactive bin")
	ErrProductNotFound = errors.New("invalid or inactive product")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// MaterialMismatchError rejects a disposal whose product material the bin
// does not take. It carries the bin's accepted set so the client can tell
// the user where the item actually belongs.
type MaterialMismatchError struct {
	RecyclableType domain.RecyclableType
	AcceptedTypes  []domain.RecyclableType
}

func (e *MaterialMismatchError) Error() string {
	return fmt.Sprintf("this bin does not accept %s items", e.RecyclableType)
}
