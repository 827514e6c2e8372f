package legvm

import "strconv"

// parseWord parses a decimal integer literal in the range representable
// by a signed 16-bit word, then reduces it into a single byte modulo
// 256 (so "-1" and "255" both assemble to 0xFF). This mirrors how the
// reference assembler this grammar was distilled from treats literals:
// parsed as a wider signed integer first, then wrapped down to a byte.
func parseWord(s string) (byte, error) {
	w, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, &AssembleError{Text: s, Reason: "invalid integer literal"}
	}
	return byte((w + 256) & 0xff), nil
}

// Assemble parses source text into a sequence of Instructions, one per
// non-blank, non-comment line, per the canonical mnemonic grammar:
//
//	LOAD addr => dest        LOADP addrSrc => dest
//	STORE src => addr        STOREP src => addrSrc
//	MOV src => dest          MOVC val => dest
//	JMP flag ? addr          JMPP flag ? addrSrc
//	JMPR flag ? diff         JMPRP flag ? diffSrc
//	PUSH src                 POP dest
//	CALL reg                 CALLC addr
//	CALLR diff               RET src
//	SLOAD bpDiff => dest
//	GPI dest <=               GPO src =>
//	ALU op arg1 arg2 => out
//	NOP                      HALT
//
// Any line that does not match one of these forms, or whose operands
// fail to parse, produces a *AssembleError naming the offending line.
func Assemble(source string) ([]Instruction, error) {
	var program []Instruction

	for _, ln := range lexLines(source) {
		instr, err := assembleLine(ln.text)
		if err != nil {
			if ae, ok := err.(*AssembleError); ok {
				ae.Line = ln.num
				ae.Text = ln.text
				return nil, ae
			}
			return nil, &AssembleError{Line: ln.num, Text: ln.text, Reason: err.Error()}
		}
		program = append(program, instr)
	}

	return program, nil
}

// AssembleBytes assembles source and flattens the result to its
// two-byte-per-instruction wire form.
func AssembleBytes(source string) ([]byte, error) {
	program, err := Assemble(source)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(program)*2)
	for _, instr := range program {
		b1, b2 := Encode(instr)
		out = append(out, b1, b2)
	}
	return out, nil
}

func assembleLine(line string) (Instruction, error) {
	f := fields(line)
	if len(f) == 0 {
		return nil, &AssembleError{Reason: "empty instruction"}
	}

	switch f[0] {
	case "LOAD":
		if len(f) == 4 && f[2] == "=>" {
			addr, err := parseWord(f[1])
			if err != nil {
				return nil, err
			}
			dest, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			return Load{Dest: dest, Addr: addr}, nil
		}

	case "LOADP":
		if len(f) == 4 && f[2] == "=>" {
			addrSrc, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			dest, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			return LoadP{Dest: dest, AddrSrc: addrSrc}, nil
		}

	case "STORE":
		if len(f) == 4 && f[2] == "=>" {
			src, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			addr, err := parseWord(f[3])
			if err != nil {
				return nil, err
			}
			return Store{Src: src, Addr: addr}, nil
		}

	case "STOREP":
		if len(f) == 4 && f[2] == "=>" {
			src, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			addrSrc, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			return StoreP{Src: src, AddrSrc: addrSrc}, nil
		}

	case "MOV":
		if len(f) == 4 && f[2] == "=>" {
			src, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			dest, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			return Mov{Dest: dest, Src: src}, nil
		}

	case "MOVC":
		if len(f) == 4 && f[2] == "=>" {
			val, err := parseWord(f[1])
			if err != nil {
				return nil, err
			}
			dest, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			return MovC{Dest: dest, Val: val}, nil
		}

	case "JMP":
		if len(f) == 4 && f[2] == "?" {
			flag, err := parseFlag(f[1])
			if err != nil {
				return nil, err
			}
			addr, err := parseWord(f[3])
			if err != nil {
				return nil, err
			}
			return Jmp{Flag: flag, Addr: addr}, nil
		}

	case "JMPP":
		if len(f) == 4 && f[2] == "?" {
			flag, err := parseFlag(f[1])
			if err != nil {
				return nil, err
			}
			addrSrc, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			return JmpP{Flag: flag, AddrSrc: addrSrc}, nil
		}

	case "JMPR":
		if len(f) == 4 && f[2] == "?" {
			flag, err := parseFlag(f[1])
			if err != nil {
				return nil, err
			}
			diff, err := parseWord(f[3])
			if err != nil {
				return nil, err
			}
			return JmpR{Flag: flag, Diff: int8(diff)}, nil
		}

	case "JMPRP":
		if len(f) == 4 && f[2] == "?" {
			flag, err := parseFlag(f[1])
			if err != nil {
				return nil, err
			}
			diffSrc, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			return JmpRP{Flag: flag, DiffSrc: diffSrc}, nil
		}

	case "PUSH":
		if len(f) == 2 {
			src, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			return Push{Src: src}, nil
		}

	case "POP":
		if len(f) == 2 {
			dest, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			return Pop{Dest: dest}, nil
		}

	case "CALL":
		if len(f) == 2 {
			reg, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			return Call{Reg: reg}, nil
		}

	case "CALLC":
		if len(f) == 2 {
			addr, err := parseWord(f[1])
			if err != nil {
				return nil, err
			}
			return CallC{Addr: addr}, nil
		}

	case "CALLR":
		if len(f) == 2 {
			diff, err := parseWord(f[1])
			if err != nil {
				return nil, err
			}
			return CallR{Diff: int8(diff)}, nil
		}

	case "RET":
		if len(f) == 2 {
			src, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			return Ret{Src: src}, nil
		}

	case "SLOAD":
		if len(f) == 4 && f[2] == "=>" {
			bpDiff, err := parseWord(f[1])
			if err != nil {
				return nil, err
			}
			dest, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			return SLoad{Dest: dest, BPDiff: int8(bpDiff)}, nil
		}

	case "GPI":
		if len(f) == 3 && f[2] == "<=" {
			dest, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			return Gpi{Dest: dest}, nil
		}

	case "GPO":
		if len(f) == 3 && f[2] == "=>" {
			src, err := parseRegister(f[1])
			if err != nil {
				return nil, err
			}
			return Gpo{Src: src}, nil
		}

	case "ALU":
		if len(f) == 6 && f[4] == "=>" {
			op, err := parseAluOp(f[1])
			if err != nil {
				return nil, err
			}
			arg1, err := parseRegister(f[2])
			if err != nil {
				return nil, err
			}
			arg2, err := parseRegister(f[3])
			if err != nil {
				return nil, err
			}
			out, err := parseRegister(f[5])
			if err != nil {
				return nil, err
			}
			return Alu{Op: op, Arg1: arg1, Arg2: arg2, Out: out}, nil
		}

	case "NOP":
		if len(f) == 1 {
			return Nop{}, nil
		}

	case "HALT":
		if len(f) == 1 {
			return Halt{}, nil
		}
	}

	return nil, &AssembleError{Reason: "invalid instruction: " + line}
}
