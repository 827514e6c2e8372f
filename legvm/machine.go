package legvm

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

const memorySize = 256

// Machine is the full architectural state of a LEG computer: the eight
// register slots, the ALU flag bag, 256 bytes of byte-addressed memory,
// and the two one-byte GPIO latches.
type Machine struct {
	regs  [16]byte
	Flags Flags
	EIP   byte
	Mem   [memorySize]byte

	RegI byte // GPI source latch, set by the host before Step/Run
	RegO byte // GPO destination latch, set by GPO instructions

	halted bool
}

// NewMachine returns a Machine with image loaded at address 0, padded
// with zero bytes (or truncated) to fill the 256-byte memory.
func NewMachine(image []byte) *Machine {
	m := &Machine{}
	n := copy(m.Mem[:], image)
	_ = n
	return m
}

// ReadRegister returns the current value of r. Reading FL returns the
// live flag bag packed into a byte, not whatever was last written to
// the backing slot; reading IP returns the current instruction pointer.
func (m *Machine) ReadRegister(r Register) byte {
	switch r {
	case FL:
		return m.Flags.Pack()
	case IP:
		return m.EIP
	default:
		return m.regs[r]
	}
}

// WriteRegister sets r to v. Writes to FL and IP are stored in the
// backing slot like any other register, but have no effect on
// subsequent reads: FL always reads back the live flag bag and IP
// always reads back the instruction pointer the fetch/dispatch loop
// maintains. This mirrors the teacher's write-through register file
// with no special-cased "read-only" register concept.
func (m *Machine) WriteRegister(r Register, v byte) {
	m.regs[r] = v
}

// IsHalted reports whether the instruction at the current IP is HALT.
// A decode failure at the current IP is not a halt; Step will surface
// it as an error.
func (m *Machine) IsHalted() bool {
	if m.halted {
		return true
	}
	instr, err := Decode(m.Mem[m.EIP], m.Mem[byte(m.EIP+1)])
	if err != nil {
		return false
	}
	_, ok := instr.(Halt)
	return ok
}

// Dump renders a diagnostic snapshot of the machine: registers, flags,
// and a hexdump of memory with ST and BP marked, in the style of a
// debugger's "print current state" command.
func (m *Machine) Dump() string {
	var b strings.Builder

	fmt.Fprintf(&b, "A=%02X B=%02X C=%02X D=%02X FL=%02X ST=%02X BP=%02X IP=%02X\n",
		m.ReadRegister(A), m.ReadRegister(B), m.ReadRegister(C), m.ReadRegister(D),
		m.ReadRegister(FL), m.ReadRegister(ST), m.ReadRegister(BP), m.ReadRegister(IP))
	fmt.Fprintf(&b, "flags=%s regI=%02X regO=%02X halted=%v\n", m.Flags, m.RegI, m.RegO, m.halted)

	for row := 0; row < memorySize/16; row++ {
		fmt.Fprintf(&b, "%02X:", row*16)
		for col := 0; col < 16; col++ {
			addr := row*16 + col
			mark := ' '
			switch byte(addr) {
			case m.ReadRegister(ST):
				mark = 'S'
			case m.ReadRegister(BP):
				mark = 'B'
			}
			fmt.Fprintf(&b, " %02X%c", m.Mem[addr], mark)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// dumpSpew returns a field-level dump of the machine (beyond the hexdump
// in Dump). Nothing in the package calls it.
func (m *Machine) dumpSpew() string {
	return spew.Sdump(m)
}
