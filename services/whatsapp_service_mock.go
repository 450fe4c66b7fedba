package services

import (
	"fmt"
	"sync"
)

// MockWhatsAppService is an in-memory WhatsAppSender for testing. It records
// every send so tests can assert on what would have gone out.
type MockWhatsAppService struct {
	mu        sync.Mutex
	sent      []MockSentMessage
	FailSends bool // when true every send reports failure
}

// MockSentMessage is one recorded outbound message.
type MockSentMessage struct {
	Kind          string // "confirmation_request", "status", "guidance"
	Phone         string
	PublicOrderID string
	Status        string
}

// NewMockWhatsAppService creates an empty mock sender.
func NewMockWhatsAppService() *MockWhatsAppService {
	return &MockWhatsAppService{}
}

// SendConfirmationRequest records a confirmation request send.
func (m *MockWhatsAppService) SendConfirmationRequest(phone, publicOrderID, customerName string, total float64, language string) SendResult {
	return m.record(MockSentMessage{Kind: "confirmation_request", Phone: phone, PublicOrderID: publicOrderID})
}

// SendStatusMessage records an outcome message send.
func (m *MockWhatsAppService) SendStatusMessage(phone, publicOrderID, status, language string) SendResult {
	return m.record(MockSentMessage{Kind: "status", Phone: phone, PublicOrderID: publicOrderID, Status: status})
}

// SendGuidance records a guidance message send.
func (m *MockWhatsAppService) SendGuidance(phone, publicOrderID string) SendResult {
	return m.record(MockSentMessage{Kind: "guidance", Phone: phone, PublicOrderID: publicOrderID})
}

// Sent returns a copy of all recorded messages.
func (m *MockWhatsAppService) Sent() []MockSentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockSentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// Reset clears the recorded messages.
func (m *MockWhatsAppService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}

func (m *MockWhatsAppService) record(msg MockSentMessage) SendResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if m.FailSends {
		return SendResult{Success: false, Error: "mock send failure"}
	}
	return SendResult{Success: true, MessageSID: fmt.Sprintf("SM_mock_%d", len(m.sent))}
}
