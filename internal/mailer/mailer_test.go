package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// MockMailer stands in for real mail delivery.
type MockMailer struct {
	WasCalled bool
	To        string
	NameKey   string
}

func (m *MockMailer) SendPropertyCreated(toEmail, nameKey string) error {
	m.WasCalled = true
	m.To = toEmail
	m.NameKey = nameKey
	return nil
}

func TestSendPropertyCreated_Mock(t *testing.T) {
	mock := &MockMailer{}
	err := mock.SendPropertyCreated("admin@example.com", "villa_x")

	assert.NoError(t, err)
	assert.True(t, mock.WasCalled)
	assert.Equal(t, "admin@example.com", mock.To)
	assert.Equal(t, "villa_x", mock.NameKey)
}
