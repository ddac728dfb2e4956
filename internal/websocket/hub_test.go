package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	userID   string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id, userID string) *mockClient {
	return &mockClient{
		id:       id,
		userID:   userID,
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) UserID() string {
	return m.userID
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1", "user-1")
	client2 := newMockClient("client-2", "user-1")
	client3 := newMockClient("client-3", "user-2")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	assert.Equal(t, 2, hub.CountClients("user-1"))
	assert.Equal(t, 1, hub.CountClients("user-2"))

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.CountClients("user-1"))

	hub.Unregister(client2)
	assert.Equal(t, 0, hub.CountClients("user-1"))
}

func TestHub_UnregisterUnknownClient(t *testing.T) {
	hub := NewHub()
	client := newMockClient("client-1", "user-1")

	// Must not panic
	hub.Unregister(client)
	assert.Equal(t, 0, hub.CountClients("user-1"))
}

func TestHub_BroadcastToUser(t *testing.T) {
	hub := NewHub()

	mine := newMockClient("client-1", "user-1")
	other := newMockClient("client-2", "user-2")
	hub.Register(mine)
	hub.Register(other)

	event := TransactionCreated(map[string]string{"id": "tx-1"})
	hub.Broadcast("user-1", event)

	// Broadcast sends asynchronously
	require.Eventually(t, func() bool {
		return len(mine.GetMessages()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Empty(t, other.GetMessages(), "other user's client must not receive the event")

	var received Event
	require.NoError(t, json.Unmarshal(mine.GetMessages()[0], &received))
	assert.Equal(t, "transaction.created", received.Type)
	assert.Equal(t, EntityTypeTransaction, received.Entity)
}

func TestHub_BroadcastNoClients(t *testing.T) {
	hub := NewHub()

	// Must not panic with no registered clients
	hub.Broadcast("user-1", TransactionDeleted(map[string]string{"id": "tx-1"}))
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1", "user-1")
	client2 := newMockClient("client-2", "user-1")
	hub.Register(client1)
	hub.Register(client2)

	hub.Broadcast("user-1", AccountDeleted(map[string]string{"id": "acc-1"}))

	require.Eventually(t, func() bool {
		return len(client1.GetMessages()) == 1 && len(client2.GetMessages()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHub_PublishImplementsEventPublisher(t *testing.T) {
	hub := NewHub()
	client := newMockClient("client-1", "user-1")
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish("user-1", CategoryDeleted(map[string]string{"id": "cat-1"}))

	require.Eventually(t, func() bool {
		return len(client.GetMessages()) == 1
	}, time.Second, 10*time.Millisecond)
}
