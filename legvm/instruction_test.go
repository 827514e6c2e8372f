package legvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Instruction{
		Load{Dest: A, Addr: 100},
		LoadP{Dest: B, AddrSrc: C},
		Store{Src: D, Addr: 7},
		StoreP{Src: A, AddrSrc: BP},
		Mov{Dest: C, Src: IP},
		MovC{Dest: D, Val: 255},
		Jmp{Flag: GE, Addr: 42},
		JmpP{Flag: Ou, AddrSrc: A},
		JmpR{Flag: Z, Diff: -20},
		JmpRP{Flag: TrueFlag, DiffSrc: B},
		Push{Src: ST},
		Pop{Dest: BP},
		Call{Reg: D},
		CallC{Addr: 50},
		CallR{Diff: -5},
		Ret{Src: C},
		SLoad{Dest: A, BPDiff: 5},
		SLoad{Dest: D, BPDiff: -5},
		Gpi{Dest: A},
		Gpo{Src: B},
		Alu{Op: AluADD, Arg1: A, Arg2: B, Out: C},
		Alu{Op: AluSHIFTR, Arg1: D, Arg2: A, Out: B},
		Nop{},
		Halt{},
	}

	for _, want := range cases {
		b1, b2 := Encode(want)
		got, err := Decode(b1, b2)
		require.NoError(t, err, "decoding %#v", want)
		assert.Equal(t, want, got)
	}
}

func TestDecodeRejectsUnassignedRegisters(t *testing.T) {
	for reg := byte(4); reg <= 11; reg++ {
		_, err := Decode(0x10|reg, 0)
		assert.Error(t, err, "register %d should be invalid in LOAD dest", reg)
	}
}

func TestDecodeRejectsInvalidNopDiscriminator(t *testing.T) {
	_, err := Decode(0x00, 0x42)
	require.Error(t, err)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestDecodeRejectsInvalidPrimaryOpcode(t *testing.T) {
	_, err := Decode(0xE0, 0x00)
	assert.Error(t, err)
}

func TestDecodeRejectsInvalidAluSubOp(t *testing.T) {
	// 0b0111 and 0b1110 are unassigned ALU sub-opcodes.
	_, err := Decode(0xD7, 0x00)
	assert.Error(t, err)
	_, err = Decode(0xDE, 0x00)
	assert.Error(t, err)
}

func TestDecodeIgnoresTopNibbleOfPointerOperand(t *testing.T) {
	instr, err := Decode(0x20, 0xF1) // LOADP B => A: dest A, addr_src low nibble = B, top nibble garbage
	require.NoError(t, err)
	assert.Equal(t, LoadP{Dest: A, AddrSrc: B}, instr)
}

func TestDecodeStackSLoadCoversAllFourRegisters(t *testing.T) {
	for i, reg := range []Register{A, B, C, D} {
		instr, err := Decode(0xB0|(stackSLoadBase+byte(i)), 3)
		require.NoError(t, err)
		assert.Equal(t, SLoad{Dest: reg, BPDiff: 3}, instr)
	}
}

func TestDecodeRejectsInvalidStackSubOp(t *testing.T) {
	_, err := Decode(0xB3, 0)
	assert.Error(t, err)
	_, err = Decode(0xB7, 0)
	assert.Error(t, err)
}
