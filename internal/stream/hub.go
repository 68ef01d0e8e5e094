package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"virtual-pet-service/internal/domain/carelog"
	"virtual-pet-service/internal/platform/logger"
)

// Hub mantiene el set de clientes websocket conectados y les reenvía
// cada entrada de bitácora que produce el servicio. Implementa
// carelog.Broadcaster.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	log        logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		log:        log,
	}
}

// Run atiende altas, bajas y broadcasts hasta que el contexto se cancele.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.log.Info("stream hub apagándose", nil)
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Debug("cliente de stream conectado", nil)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Debug("cliente de stream desconectado", nil)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// cliente lento: se lo desconecta en vez de bloquear al resto
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// streamEvent es el formato de salida hacia los clientes.
type streamEvent struct {
	ID           string    `json:"id"`
	PetID        string    `json:"petId"`
	Type         string    `json:"type"`
	OccurredAt   time.Time `json:"occurredAt"`
	ActorType    string    `json:"actorType"`
	ActorID      string    `json:"actorId,omitempty"`
	StatusBefore string    `json:"statusBefore,omitempty"`
	StatusAfter  string    `json:"statusAfter,omitempty"`
	Detail       string    `json:"detail,omitempty"`
}

// BroadcastEntry serializa la entrada y la envía a todos los clientes.
// Nunca bloquea al caller: si el canal está lleno, la entrada se pierde
// (los clientes siempre pueden releer el care-log por HTTP).
func (h *Hub) BroadcastEntry(e carelog.Entry) {
	payload, err := json.Marshal(streamEvent{
		ID:           e.ID,
		PetID:        e.PetID,
		Type:         string(e.Type),
		OccurredAt:   e.OccurredAt,
		ActorType:    string(e.Actor.Type),
		ActorID:      e.Actor.ID,
		StatusBefore: e.StatusBefore,
		StatusAfter:  e.StatusAfter,
		Detail:       e.Detail,
	})
	if err != nil {
		h.log.Error("no se pudo serializar la entrada para el stream", map[string]any{"err": err.Error()})
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn("broadcast lleno, entrada descartada", map[string]any{"entry_id": e.ID})
	}
}
