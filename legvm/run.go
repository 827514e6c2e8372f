package legvm

// Run steps the machine until it halts or a decode error is hit. A
// decode error aborts the run and is returned to the caller; reaching
// HALT is ordinary termination and returns nil.
func (m *Machine) Run() error {
	for !m.IsHalted() {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}
