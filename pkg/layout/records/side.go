package records

import "fmt"

// Side of an order. Events store it in one byte, spot instructions in four.
type Side uint32

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	}
	return fmt.Sprintf("Side(%d)", uint32(s))
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
