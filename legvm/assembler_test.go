package legvm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleCanonicalLines(t *testing.T) {
	cases := []struct {
		line string
		want Instruction
	}{
		{"LOAD 100 => A", Load{Dest: A, Addr: 100}},
		{"LOADP B => A", LoadP{Dest: A, AddrSrc: B}},
		{"STORE A => 100", Store{Src: A, Addr: 100}},
		{"STOREP A => B", StoreP{Src: A, AddrSrc: B}},
		{"MOV IP => C", Mov{Dest: C, Src: IP}},
		{"MOVC 2 => A", MovC{Dest: A, Val: 2}},
		{"JMP Ou ? 14", Jmp{Flag: Ou, Addr: 14}},
		{"JMPP Z ? A", JmpP{Flag: Z, AddrSrc: A}},
		{"JMPR Z ? -20", JmpR{Flag: Z, Diff: -20}},
		{"JMPRP T ? B", JmpRP{Flag: TrueFlag, DiffSrc: B}},
		{"PUSH A", Push{Src: A}},
		{"POP B", Pop{Dest: B}},
		{"CALL D", Call{Reg: D}},
		{"CALLC 50", CallC{Addr: 50}},
		{"CALLR -5", CallR{Diff: -5}},
		{"RET C", Ret{Src: C}},
		{"SLOAD 5 => A", SLoad{Dest: A, BPDiff: 5}},
		{"SLOAD -5 => D", SLoad{Dest: D, BPDiff: -5}},
		{"GPI A <=", Gpi{Dest: A}},
		{"GPO B =>", Gpo{Src: B}},
		{"ALU ADD A B => C", Alu{Op: AluADD, Arg1: A, Arg2: B, Out: C}},
		{"NOP", Nop{}},
		{"HALT", Halt{}},
	}

	for _, c := range cases {
		got, err := Assemble(c.line)
		require.NoError(t, err, c.line)
		require.Len(t, got, 1)
		assert.Equal(t, c.want, got[0], c.line)
	}
}

func TestAssembleSkipsBlankAndCommentLines(t *testing.T) {
	src := "\n# a comment\n   \nNOP\n# trailing\nHALT\n"
	instrs, err := Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, []Instruction{Nop{}, Halt{}}, instrs)
}

func TestAssembleReportsLineAndText(t *testing.T) {
	_, err := Assemble("NOP\nBOGUS\nHALT")
	require.Error(t, err)
	ae, ok := err.(*AssembleError)
	require.True(t, ok)
	assert.Equal(t, 2, ae.Line)
	assert.Equal(t, "BOGUS", ae.Text)
}

func TestAssembleUnknownRegister(t *testing.T) {
	_, err := Assemble("LOAD 1 => ZZ")
	assert.Error(t, err)
}

func TestAssembleIntegerOutOfRange(t *testing.T) {
	_, err := Assemble("LOAD 99999 => A")
	assert.Error(t, err)
}

func TestAssembleNegativeLiteralWrapsModulo256(t *testing.T) {
	instrs, err := Assemble("MOVC -1 => A")
	require.NoError(t, err)
	assert.Equal(t, MovC{Dest: A, Val: 255}, instrs[0])
}

func TestIdempotentAssembly(t *testing.T) {
	lines := []string{
		"LOAD 100 => A",
		"LOADP B => A",
		"MOV IP => C",
		"MOVC 2 => A",
		"JMP Ou ? 14",
		"JMPR Z ? -20",
		"PUSH A",
		"CALLC 50",
		"CALLR -5",
		"RET C",
		"SLOAD -5 => D",
		"GPI A <=",
		"GPO B =>",
		"ALU ADD A B => C",
		"NOP",
		"HALT",
	}

	for _, line := range lines {
		instrs, err := Assemble(line)
		require.NoError(t, err, line)
		b1, b2 := Encode(instrs[0])
		got, err := Disassemble([]byte{b1, b2})
		require.NoError(t, err, line)
		assert.Equal(t, line, strings.TrimSpace(got))
	}
}

func TestAssembleBytesFlattensToWireForm(t *testing.T) {
	bytes, err := AssembleBytes("NOP\nHALT")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xFF, 0x00, 0x00}, bytes)
}
