package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWebSocketHub_AddRemoveClient(t *testing.T) {
	hub := NewWebSocketHub()

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client)
	if hub.ClientCount() != 1 {
		t.Errorf("Expected 1 client, got %d", hub.ClientCount())
	}

	hub.removeClient(client)
	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestWebSocketHub_RemoveClientClosesChannel(t *testing.T) {
	hub := NewWebSocketHub()

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client)
	hub.removeClient(client)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Channel should be closed and readable")
	}
}

func TestWebSocketHub_RemoveClientIdempotent(t *testing.T) {
	hub := NewWebSocketHub()

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client)
	hub.removeClient(client)
	hub.removeClient(client) // Should not panic

	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestWebSocketHub_Broadcast(t *testing.T) {
	hub := NewWebSocketHub()

	client1 := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}
	client2 := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client1)
	hub.addClient(client2)

	hub.Broadcast("project_change", nil)

	for i, client := range []*WebSocketClient{client1, client2} {
		select {
		case msg := <-client.send:
			var received WebSocketMessage
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("Client %d got invalid JSON: %v", i+1, err)
			}
			if received.Type != "project_change" {
				t.Errorf("Client %d Type = %q, want project_change", i+1, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("Client %d did not receive message", i+1)
		}
	}
}

func TestWebSocketHub_BroadcastToRemovedClient(t *testing.T) {
	hub := NewWebSocketHub()

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client)
	hub.removeClient(client)

	// This should not panic even though client's channel is closed
	hub.broadcast([]byte(`{"test": "data"}`))
}

func TestWebSocketHub_TrySendRecovery(t *testing.T) {
	hub := NewWebSocketHub()

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	// Close the channel to simulate a removed client
	close(client.send)

	// trySend should recover from the panic and not crash
	hub.trySend(client, []byte(`test`))
}

func TestWebSocketHub_OnFileChange(t *testing.T) {
	hub := NewWebSocketHub()

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}
	hub.addClient(client)

	change := FileChange{
		Type: FileChangeModified,
		Kind: FileChangeKindProject,
		Path: "project.json",
	}

	hub.OnFileChange(change)

	select {
	case msg := <-client.send:
		var received WebSocketMessage
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if received.Type != "file_change" {
			t.Errorf("Type = %q, want %q", received.Type, "file_change")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Did not receive file change message")
	}
}

func TestWebSocketHub_BroadcastFullBuffer(t *testing.T) {
	hub := NewWebSocketHub()

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 1), // Small buffer
	}
	hub.addClient(client)

	// Fill the buffer
	client.send <- []byte("first")

	// This broadcast should trigger removal due to full buffer
	hub.broadcast([]byte("second"))

	if hub.ClientCount() != 0 {
		t.Errorf("Expected client to be removed due to full buffer, got %d clients", hub.ClientCount())
	}
}
