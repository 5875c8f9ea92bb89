package core

// mockDAC is an always-ready converter recording every write
type mockDAC struct {
	cfg      DACConfig
	initErr  error
	inits    int
	writes   []DACValue
	busy     int // Ready returns false this many times before each write
	pending  int
	polls    int
	maxValue DACValue
}

func newMockDAC() *mockDAC {
	return &mockDAC{maxValue: DACMax}
}

func (m *mockDAC) Init(cfg DACConfig) error {
	m.inits++
	m.cfg = cfg
	return m.initErr
}

func (m *mockDAC) Ready() bool {
	m.polls++
	if m.pending > 0 {
		m.pending--
		return false
	}
	return true
}

func (m *mockDAC) Write(v DACValue) {
	m.writes = append(m.writes, v)
	m.pending = m.busy
}

func (m *mockDAC) MaxValue() DACValue {
	return m.maxValue
}

// mockTimer records the order of HAL calls
type mockTimer struct {
	calls  []string
	ra, rc uint32
	bits   uint8
	clock  uint32
}

func newMockTimer() *mockTimer {
	return &mockTimer{bits: 32, clock: 42000000}
}

func (m *mockTimer) EnablePeripheral() { m.calls = append(m.calls, "enable") }
func (m *mockTimer) Stop()             { m.calls = append(m.calls, "stop") }
func (m *mockTimer) RouteOutput()      { m.calls = append(m.calls, "route") }
func (m *mockTimer) SetWaveform()      { m.calls = append(m.calls, "waveform") }
func (m *mockTimer) SetCompare(ra, rc uint32) {
	m.calls = append(m.calls, "compare")
	m.ra, m.rc = ra, rc
}
func (m *mockTimer) Start()                 { m.calls = append(m.calls, "start") }
func (m *mockTimer) CounterBits() uint8     { return m.bits }
func (m *mockTimer) ClockFrequency() uint32 { return m.clock }

// mockUART captures writes
type mockUART struct {
	data []byte
	err  error
}

func (u *mockUART) Read(p []byte) (int, error) { return 0, nil }
func (u *mockUART) Buffered() int              { return 0 }

func (u *mockUART) Write(p []byte) (int, error) {
	if u.err != nil {
		return 0, u.err
	}
	u.data = append(u.data, p...)
	return len(p), nil
}
