package legvm

import "fmt"

// Register selects one of the machine's sixteen 4-bit-addressable register
// slots. Only eight of the sixteen numbers are assigned; the rest
// (4..11) are reserved and rejected at decode time.
type Register uint8

const (
	A  Register = 0
	B  Register = 1
	C  Register = 2
	D  Register = 3
	FL Register = 12
	ST Register = 13
	BP Register = 14
	IP Register = 15
)

var registerNames = map[Register]string{
	A: "A", B: "B", C: "C", D: "D",
	FL: "FL", ST: "ST", BP: "BP", IP: "IP",
}

var namesToRegister = map[string]Register{
	"A": A, "B": B, "C": C, "D": D,
	"FL": FL, "ST": ST, "BP": BP, "IP": IP,
}

// String implements fmt.Stringer for use in disassembly and diagnostics.
func (r Register) String() string {
	if name, ok := registerNames[r]; ok {
		return name
	}
	return "?reg?"
}

// Valid reports whether r names one of the eight assigned register slots.
func (r Register) Valid() bool {
	_, ok := registerNames[r]
	return ok
}

// aluRegister is the 2-bit selector restricted to A..D used by ALU
// arg1/arg2/out fields. Every 2-bit pattern is one of A, B, C, D, so
// decoding it can never fail.
type aluRegister = Register

// parseRegister looks up a register by its canonical assembly mnemonic.
func parseRegister(s string) (Register, error) {
	r, ok := namesToRegister[s]
	if !ok {
		return 0, fmt.Errorf("unknown register: %s", s)
	}
	return r, nil
}
