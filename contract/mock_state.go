package contract

// MockState is a map-backed State used by tests and local debugging.
type MockState struct {
	db map[string]string
}

func NewMockState() *MockState {
	return &MockState{
		db: make(map[string]string),
	}
}

func (m *MockState) Set(key, value string) {
	m.db[key] = value
}

func (m *MockState) Get(key string) *string {
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *MockState) Delete(key string) {
	delete(m.db, key)
}

// Reset wipes everything so sequential tests start clean.
func (m *MockState) Reset() {
	m.db = make(map[string]string)
}

// Len reports how many keys are stored, useful for cleanup assertions.
func (m *MockState) Len() int {
	return len(m.db)
}
