package legvm

import (
	"fmt"
	"strings"
)

// Disassemble decodes a byte stream two bytes at a time and renders
// each instruction in the canonical mnemonic form Assemble accepts, one
// per line. It returns a *DecodeError if data has an odd length or
// contains an instruction that does not decode.
func Disassemble(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", &DecodeError{Reason: "instruction stream has an odd number of bytes"}
	}

	var lines []string
	for i := 0; i < len(data); i += 2 {
		instr, err := Decode(data[i], data[i+1])
		if err != nil {
			return "", err
		}
		lines = append(lines, formatInstruction(instr))
	}
	return strings.Join(lines, "\n"), nil
}

// formatInstruction renders a single Instruction back into its
// canonical source form. Address and immediate-value operands render
// as unsigned decimal (0..255); relative-offset operands (JMPR/JMPRP's
// diff, CALLR's diff, SLOAD's bp_diff) render as signed decimal so that
// assembling the disassembly reproduces the same byte pattern.
func formatInstruction(instr Instruction) string {
	switch i := instr.(type) {
	case Load:
		return fmt.Sprintf("LOAD %d => %s", i.Addr, i.Dest)
	case LoadP:
		return fmt.Sprintf("LOADP %s => %s", i.AddrSrc, i.Dest)
	case Store:
		return fmt.Sprintf("STORE %s => %d", i.Src, i.Addr)
	case StoreP:
		return fmt.Sprintf("STOREP %s => %s", i.Src, i.AddrSrc)
	case Mov:
		return fmt.Sprintf("MOV %s => %s", i.Src, i.Dest)
	case MovC:
		return fmt.Sprintf("MOVC %d => %s", i.Val, i.Dest)
	case Jmp:
		return fmt.Sprintf("JMP %s ? %d", i.Flag, i.Addr)
	case JmpP:
		return fmt.Sprintf("JMPP %s ? %s", i.Flag, i.AddrSrc)
	case JmpR:
		return fmt.Sprintf("JMPR %s ? %d", i.Flag, i.Diff)
	case JmpRP:
		return fmt.Sprintf("JMPRP %s ? %s", i.Flag, i.DiffSrc)
	case Push:
		return fmt.Sprintf("PUSH %s", i.Src)
	case Pop:
		return fmt.Sprintf("POP %s", i.Dest)
	case Call:
		return fmt.Sprintf("CALL %s", i.Reg)
	case CallC:
		return fmt.Sprintf("CALLC %d", i.Addr)
	case CallR:
		return fmt.Sprintf("CALLR %d", i.Diff)
	case Ret:
		return fmt.Sprintf("RET %s", i.Src)
	case SLoad:
		return fmt.Sprintf("SLOAD %d => %s", i.BPDiff, i.Dest)
	case Gpi:
		return fmt.Sprintf("GPI %s <=", i.Dest)
	case Gpo:
		return fmt.Sprintf("GPO %s =>", i.Src)
	case Alu:
		return fmt.Sprintf("ALU %s %s %s => %s", i.Op, i.Arg1, i.Arg2, i.Out)
	case Nop:
		return "NOP"
	case Halt:
		return "HALT"
	default:
		return "?"
	}
}
