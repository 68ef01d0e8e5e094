package stream

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"virtual-pet-service/internal/domain/carelog"
	"virtual-pet-service/internal/platform/logger"
)

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.Lock()
		got := len(h.clients)
		h.mu.Unlock()
		if got == n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("el hub nunca llegó a %d clientes", n)
}

func TestHub_BroadcastEntry_ReachesClient(t *testing.T) {
	hub := NewHub(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(ServeWS(hub, logger.Nop()))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	waitForClients(t, hub, 1)

	occurred := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	hub.BroadcastEntry(carelog.Entry{
		ID:         "e1",
		PetID:      "pet-1",
		Type:       carelog.EntryTypeFed,
		OccurredAt: occurred,
		Actor:      carelog.Actor{Type: carelog.ActorTypeOwnerUser, ID: "user-1"},
		Detail:     "alimentada",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var got struct {
		ID        string `json:"id"`
		PetID     string `json:"petId"`
		Type      string `json:"type"`
		ActorType string `json:"actorType"`
	}
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("payload inválido: %v", err)
	}
	if got.ID != "e1" || got.PetID != "pet-1" || got.Type != "FED" || got.ActorType != "OWNER_USER" {
		t.Fatalf("evento inesperado: %s", msg)
	}
}

func TestHub_SlowClientGetsDropped(t *testing.T) {
	hub := NewHub(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// cliente registrado a mano, sin WritePump que drene el canal
	stuck := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- stuck
	waitForClients(t, hub, 1)

	hub.BroadcastEntry(carelog.Entry{ID: "e1", PetID: "pet-1", Type: carelog.EntryTypeFed})

	waitForClients(t, hub, 0)
}
