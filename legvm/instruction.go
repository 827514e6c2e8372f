package legvm

// Instruction is the closed sum of every LEG instruction form. Each case
// is a distinct Go type; Decode and the interpreter's dispatch switch
// over them are exhaustive, so adding a case that isn't wired into both
// is a compile-time-invisible but test-visible bug by construction (the
// round-trip and scenario tests pin every case down).
type Instruction interface {
	encode() (byte, byte)
}

const (
	opNop    byte = 0x0
	opLoad   byte = 0x1
	opLoadP  byte = 0x2
	opStore  byte = 0x3
	opStoreP byte = 0x4
	opMov    byte = 0x5
	opMovC   byte = 0x6
	opJmp    byte = 0x7
	opJmpP   byte = 0x8
	opJmpR   byte = 0x9
	opJmpRP  byte = 0xA
	opStack  byte = 0xB
	opGpio   byte = 0xC
	opAlu    byte = 0xD
)

const (
	nopHalt byte = 0x00
	nopNop  byte = 0xFF
)

const (
	gpioGpi byte = 0x0
	gpioGpo byte = 0x1
)

const (
	stackRet   byte = 0b0000
	stackPush  byte = 0b0001
	stackPop   byte = 0b0010
	stackCall  byte = 0b0100
	stackCallC byte = 0b0101
	stackCallR byte = 0b0110
	stackSLoadBase byte = 0b1000 // + register index 0..3 selects SLOAD A/B/C/D
)

// Load: reg[Dest] <- mem[Addr].
type Load struct {
	Dest Register
	Addr byte
}

// LoadP: reg[Dest] <- mem[reg[AddrSrc]].
type LoadP struct {
	Dest    Register
	AddrSrc Register
}

// Store: mem[Addr] <- read(Src).
type Store struct {
	Src  Register
	Addr byte
}

// StoreP: mem[reg[AddrSrc]] <- read(Src).
type StoreP struct {
	Src     Register
	AddrSrc Register
}

// Mov: reg[Dest] <- read(Src).
type Mov struct {
	Dest Register
	Src  Register
}

// MovC: reg[Dest] <- Val.
type MovC struct {
	Dest Register
	Val  byte
}

// Jmp: if flags.Get(Flag) { ip <- Addr } else { ip += 2 }.
type Jmp struct {
	Flag Flag
	Addr byte
}

// JmpP: if flags.Get(Flag) { ip <- mem[reg[AddrSrc]] } else { ip += 2 }.
type JmpP struct {
	Flag    Flag
	AddrSrc Register
}

// JmpR: if flags.Get(Flag) { ip <- (ip + sext(Diff)) mod 256 } else { ip += 2 }.
type JmpR struct {
	Flag Flag
	Diff int8
}

// JmpRP: if flags.Get(Flag) { ip <- (ip + sext(mem[reg[DiffSrc]])) mod 256 } else { ip += 2 }.
type JmpRP struct {
	Flag    Flag
	DiffSrc Register
}

// Push: ST <- ST-1; mem[ST] <- read(Src).
type Push struct {
	Src Register
}

// Pop: reg[Dest] <- mem[ST]; ST <- ST+1.
type Pop struct {
	Dest Register
}

// Call: call via register (target = read(Reg)).
type Call struct {
	Reg Register
}

// CallC: call direct to Addr.
type CallC struct {
	Addr byte
}

// CallR: call to (ip + Diff) mod 256.
type CallR struct {
	Diff int8
}

// Ret: return, pushing read(Src) as the callee's result.
type Ret struct {
	Src Register
}

// SLoad: reg[Dest] <- mem[(BP + sext(BPDiff)) mod 256].
type SLoad struct {
	Dest   Register
	BPDiff int8
}

// Gpi: reg[Dest] <- reg_i.
type Gpi struct {
	Dest Register
}

// Gpo: reg_o <- read(Src).
type Gpo struct {
	Src Register
}

// Alu: reg[Out] <- Op(reg[Arg1], reg[Arg2]); flags updated.
type Alu struct {
	Op   AluOp
	Arg1 Register
	Arg2 Register
	Out  Register
}

// Nop: no-op; ip += 2.
type Nop struct{}

// Halt: freeze; ip does not advance.
type Halt struct{}

func (i Load) encode() (byte, byte)   { return (opLoad << 4) | byte(i.Dest), i.Addr }
func (i LoadP) encode() (byte, byte)  { return (opLoadP << 4) | byte(i.Dest), byte(i.AddrSrc) }
func (i Store) encode() (byte, byte)  { return (opStore << 4) | byte(i.Src), i.Addr }
func (i StoreP) encode() (byte, byte) { return (opStoreP << 4) | byte(i.Src), byte(i.AddrSrc) }
func (i Mov) encode() (byte, byte)    { return (opMov << 4) | byte(i.Dest), byte(i.Src) }
func (i MovC) encode() (byte, byte)   { return (opMovC << 4) | byte(i.Dest), i.Val }
func (i Jmp) encode() (byte, byte)    { return (opJmp << 4) | byte(i.Flag), i.Addr }
func (i JmpP) encode() (byte, byte)   { return (opJmpP << 4) | byte(i.Flag), byte(i.AddrSrc) }
func (i JmpR) encode() (byte, byte)   { return (opJmpR << 4) | byte(i.Flag), byte(i.Diff) }
func (i JmpRP) encode() (byte, byte)  { return (opJmpRP << 4) | byte(i.Flag), byte(i.DiffSrc) }

func (i Push) encode() (byte, byte) { return (opStack << 4) | stackPush, byte(i.Src) }
func (i Pop) encode() (byte, byte)  { return (opStack << 4) | stackPop, byte(i.Dest) }
func (i Call) encode() (byte, byte) { return (opStack << 4) | stackCall, byte(i.Reg) }
func (i CallC) encode() (byte, byte) {
	return (opStack << 4) | stackCallC, i.Addr
}
func (i CallR) encode() (byte, byte) {
	return (opStack << 4) | stackCallR, byte(i.Diff)
}
func (i Ret) encode() (byte, byte) { return (opStack << 4) | stackRet, byte(i.Src) }
func (i SLoad) encode() (byte, byte) {
	return (opStack << 4) | (stackSLoadBase + byte(i.Dest)), byte(i.BPDiff)
}

func (i Gpi) encode() (byte, byte) { return (opGpio << 4) | gpioGpi, byte(i.Dest) }
func (i Gpo) encode() (byte, byte) { return (opGpio << 4) | gpioGpo, byte(i.Src) }

func (i Alu) encode() (byte, byte) {
	b2 := (byte(i.Arg1) << 6) | (byte(i.Arg2) << 4) | byte(i.Out)
	return (opAlu << 4) | byte(i.Op), b2
}

func (i Nop) encode() (byte, byte)  { return opNop << 4, nopNop }
func (i Halt) encode() (byte, byte) { return opNop << 4, nopHalt }

// Encode returns the two-byte wire form of i. Encode is total: every
// Instruction value produced by this package maps to exactly one
// (b1, b2) pair.
func Encode(i Instruction) (byte, byte) {
	return i.encode()
}

// Decode parses the two-byte wire form into an Instruction, or returns a
// *DecodeError naming the offending byte(s).
func Decode(b1, b2 byte) (Instruction, error) {
	opcode := b1 >> 4
	low := b1 & 0xF

	switch opcode {
	case opNop:
		if low != 0 {
			return nil, &DecodeError{b1, b2, "NOP-family opcode must have a zero low nibble"}
		}
		switch b2 {
		case nopHalt:
			return Halt{}, nil
		case nopNop:
			return Nop{}, nil
		default:
			return nil, &DecodeError{b1, b2, "invalid NOP discriminator"}
		}

	case opLoad:
		dest := Register(low)
		if !dest.Valid() {
			return nil, &DecodeError{b1, b2, "invalid destination register"}
		}
		return Load{Dest: dest, Addr: b2}, nil

	case opLoadP:
		dest := Register(low)
		if !dest.Valid() {
			return nil, &DecodeError{b1, b2, "invalid destination register"}
		}
		addrSrc := Register(b2 & 0xF)
		if !addrSrc.Valid() {
			return nil, &DecodeError{b1, b2, "invalid address-source register"}
		}
		return LoadP{Dest: dest, AddrSrc: addrSrc}, nil

	case opStore:
		src := Register(low)
		if !src.Valid() {
			return nil, &DecodeError{b1, b2, "invalid source register"}
		}
		return Store{Src: src, Addr: b2}, nil

	case opStoreP:
		src := Register(low)
		if !src.Valid() {
			return nil, &DecodeError{b1, b2, "invalid source register"}
		}
		addrSrc := Register(b2 & 0xF)
		if !addrSrc.Valid() {
			return nil, &DecodeError{b1, b2, "invalid address-source register"}
		}
		return StoreP{Src: src, AddrSrc: addrSrc}, nil

	case opMov:
		dest := Register(low)
		if !dest.Valid() {
			return nil, &DecodeError{b1, b2, "invalid destination register"}
		}
		src := Register(b2)
		if !src.Valid() {
			return nil, &DecodeError{b1, b2, "invalid source register"}
		}
		return Mov{Dest: dest, Src: src}, nil

	case opMovC:
		dest := Register(low)
		if !dest.Valid() {
			return nil, &DecodeError{b1, b2, "invalid destination register"}
		}
		return MovC{Dest: dest, Val: b2}, nil

	case opJmp:
		flag := Flag(low)
		if !flag.Valid() {
			return nil, &DecodeError{b1, b2, "invalid flag selector"}
		}
		return Jmp{Flag: flag, Addr: b2}, nil

	case opJmpP:
		flag := Flag(low)
		if !flag.Valid() {
			return nil, &DecodeError{b1, b2, "invalid flag selector"}
		}
		addrSrc := Register(b2 & 0xF)
		if !addrSrc.Valid() {
			return nil, &DecodeError{b1, b2, "invalid address-source register"}
		}
		return JmpP{Flag: flag, AddrSrc: addrSrc}, nil

	case opJmpR:
		flag := Flag(low)
		if !flag.Valid() {
			return nil, &DecodeError{b1, b2, "invalid flag selector"}
		}
		return JmpR{Flag: flag, Diff: int8(b2)}, nil

	case opJmpRP:
		flag := Flag(low)
		if !flag.Valid() {
			return nil, &DecodeError{b1, b2, "invalid flag selector"}
		}
		diffSrc := Register(b2 & 0xF)
		if !diffSrc.Valid() {
			return nil, &DecodeError{b1, b2, "invalid diff-source register"}
		}
		return JmpRP{Flag: flag, DiffSrc: diffSrc}, nil

	case opStack:
		return decodeStack(low, b2, b1)

	case opGpio:
		reg := Register(b2 & 0xF)
		if !reg.Valid() {
			return nil, &DecodeError{b1, b2, "invalid GPIO register"}
		}
		switch low {
		case gpioGpi:
			return Gpi{Dest: reg}, nil
		case gpioGpo:
			return Gpo{Src: reg}, nil
		default:
			return nil, &DecodeError{b1, b2, "invalid GPIO sub-opcode"}
		}

	case opAlu:
		op := AluOp(low)
		if !op.Valid() {
			return nil, &DecodeError{b1, b2, "invalid ALU sub-opcode"}
		}
		arg1 := Register(b2 >> 6)
		arg2 := Register((b2 >> 4) & 0x3)
		out := Register(b2 & 0x3)
		return Alu{Op: op, Arg1: arg1, Arg2: arg2, Out: out}, nil

	default:
		return nil, &DecodeError{b1, b2, "invalid primary opcode"}
	}
}

func decodeStack(sub byte, b2 byte, b1 byte) (Instruction, error) {
	if sub >= stackSLoadBase && sub <= stackSLoadBase+3 {
		return SLoad{Dest: Register(sub - stackSLoadBase), BPDiff: int8(b2)}, nil
	}

	switch sub {
	case stackRet:
		src := Register(b2)
		if !src.Valid() {
			return nil, &DecodeError{b1, b2, "invalid RET source register"}
		}
		return Ret{Src: src}, nil
	case stackPush:
		src := Register(b2)
		if !src.Valid() {
			return nil, &DecodeError{b1, b2, "invalid PUSH source register"}
		}
		return Push{Src: src}, nil
	case stackPop:
		dest := Register(b2)
		if !dest.Valid() {
			return nil, &DecodeError{b1, b2, "invalid POP destination register"}
		}
		return Pop{Dest: dest}, nil
	case stackCall:
		reg := Register(b2)
		if !reg.Valid() {
			return nil, &DecodeError{b1, b2, "invalid CALL register"}
		}
		return Call{Reg: reg}, nil
	case stackCallC:
		return CallC{Addr: b2}, nil
	case stackCallR:
		return CallR{Diff: int8(b2)}, nil
	default:
		return nil, &DecodeError{b1, b2, "invalid stack sub-opcode"}
	}
}
