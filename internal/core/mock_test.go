package core

import (
	"github.com/stretchr/testify/mock"
)

// ---------- Mock Recorder ----------

// mockRecorder implements the Recorder interface for testing.
type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Generated(kind string) {
	m.Called(kind)
}

func (m *mockRecorder) Rejected(kind string, err error) {
	m.Called(kind, err)
}
