package legvm

import (
	"errors"
	"fmt"
)

// ErrHalted is returned by Step when it is called on a machine that has
// already executed a HALT instruction; Run never surfaces it.
var ErrHalted = errors.New("machine is halted")

// DecodeError reports a failure to decode the two-byte wire form of an
// instruction, naming the offending byte(s).
type DecodeError struct {
	Byte1  byte
	Byte2  byte
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at bytes 0x%02X 0x%02X: %s", e.Byte1, e.Byte2, e.Reason)
}

// AssembleError reports a failure to assemble one line of source text.
type AssembleError struct {
	Line   int // 1-based source line number
	Text   string
	Reason string
}

func (e *AssembleError) Error() string {
	return fmt.Sprintf("assemble error at line %d (%q): %s", e.Line, e.Text, e.Reason)
}
