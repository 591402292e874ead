package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrBufferUnderflow indicates a pop larger than the buffer holds
type ErrBufferUnderflow struct {
	Buffer    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *ErrBufferUnderflow) Error() string {
	return fmt.Sprintf("buffer %s underflow: requested %s, available %s",
		e.Buffer, e.Requested.String(), e.Available.String())
}
