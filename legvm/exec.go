package legvm

// stackPush decrements ST and writes v to the newly exposed slot.
func (m *Machine) stackPush(v byte) {
	st := m.ReadRegister(ST) - 1
	m.WriteRegister(ST, st)
	m.Mem[st] = v
}

// stackPop reads the slot ST currently points at, then increments ST.
func (m *Machine) stackPop() byte {
	st := m.ReadRegister(ST)
	v := m.Mem[st]
	m.WriteRegister(ST, st+1)
	return v
}

// doCall implements the shared CALL/CALLC/CALLR frame-entry sequence:
// push the return address, push the caller's BP, point BP at the new
// frame's base, then jump.
func (m *Machine) doCall(target byte) {
	m.stackPush(m.EIP)
	m.stackPush(m.ReadRegister(BP))
	m.WriteRegister(BP, m.ReadRegister(ST))
	m.EIP = target
}

// doRet implements the shared frame-exit sequence: collapse the current
// frame, restore the caller's BP, recover the return address, push the
// callee's result onto the caller's stack, and resume just past the
// original call site.
func (m *Machine) doRet(src Register) {
	result := m.ReadRegister(src)
	m.WriteRegister(ST, m.ReadRegister(BP))
	bp := m.stackPop()
	m.WriteRegister(BP, bp)
	storedIP := m.stackPop()
	m.stackPush(result)
	m.EIP = storedIP + 2
}

// Step fetches, decodes, and executes exactly one instruction. It
// returns ErrHalted without side effects if a HALT has already been
// executed, or a *DecodeError if the bytes at IP do not form a valid
// instruction.
func (m *Machine) Step() error {
	if m.halted {
		return ErrHalted
	}

	b1 := m.Mem[m.EIP]
	b2 := m.Mem[byte(m.EIP+1)]
	instr, err := Decode(b1, b2)
	if err != nil {
		return err
	}

	m.execute(instr)
	return nil
}

func (m *Machine) execute(instr Instruction) {
	switch i := instr.(type) {
	case Load:
		m.WriteRegister(i.Dest, m.Mem[i.Addr])
		m.EIP += 2

	case LoadP:
		addr := m.ReadRegister(i.AddrSrc)
		m.WriteRegister(i.Dest, m.Mem[addr])
		m.EIP += 2

	case Store:
		m.Mem[i.Addr] = m.ReadRegister(i.Src)
		m.EIP += 2

	case StoreP:
		addr := m.ReadRegister(i.AddrSrc)
		m.Mem[addr] = m.ReadRegister(i.Src)
		m.EIP += 2

	case Mov:
		m.WriteRegister(i.Dest, m.ReadRegister(i.Src))
		m.EIP += 2

	case MovC:
		m.WriteRegister(i.Dest, i.Val)
		m.EIP += 2

	case Jmp:
		if m.Flags.Get(i.Flag) {
			m.EIP = i.Addr
		} else {
			m.EIP += 2
		}

	case JmpP:
		if m.Flags.Get(i.Flag) {
			m.EIP = m.Mem[m.ReadRegister(i.AddrSrc)]
		} else {
			m.EIP += 2
		}

	case JmpR:
		if m.Flags.Get(i.Flag) {
			m.EIP = byte(int(m.EIP) + int(i.Diff))
		} else {
			m.EIP += 2
		}

	case JmpRP:
		if m.Flags.Get(i.Flag) {
			diff := int8(m.Mem[m.ReadRegister(i.DiffSrc)])
			m.EIP = byte(int(m.EIP) + int(diff))
		} else {
			m.EIP += 2
		}

	case Push:
		m.stackPush(m.ReadRegister(i.Src))
		m.EIP += 2

	case Pop:
		m.WriteRegister(i.Dest, m.stackPop())
		m.EIP += 2

	case Call:
		m.doCall(m.ReadRegister(i.Reg))

	case CallC:
		m.doCall(i.Addr)

	case CallR:
		m.doCall(byte(int(m.EIP) + int(i.Diff)))

	case Ret:
		m.doRet(i.Src)

	case SLoad:
		addr := byte(int(m.ReadRegister(BP)) + int(i.BPDiff))
		m.WriteRegister(i.Dest, m.Mem[addr])
		m.EIP += 2

	case Gpi:
		m.WriteRegister(i.Dest, m.RegI)
		m.EIP += 2

	case Gpo:
		m.RegO = m.ReadRegister(i.Src)
		m.EIP += 2

	case Alu:
		a := m.ReadRegister(i.Arg1)
		b := m.ReadRegister(i.Arg2)
		result, flags := aluCompute(i.Op, a, b)
		m.Flags = flags
		m.WriteRegister(i.Out, result)
		m.EIP += 2

	case Nop:
		m.EIP += 2

	case Halt:
		m.halted = true
	}
}
