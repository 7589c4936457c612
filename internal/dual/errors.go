package dual

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by Div when the divisor's real part is
// exactly zero.
var ErrDivisionByZero = errors.New("dual: division by zero")

// DomainError is returned when an operation is evaluated outside the real
// domain of the underlying function, e.g. Log of a non-positive real part.
type DomainError struct {
	Op  string
	Arg float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("dual: %s domain error for real part %g", e.Op, e.Arg)
}
