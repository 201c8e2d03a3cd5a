// Package events pushes mutation notifications to connected frontends so
// they can refetch instead of polling. Delivery is best effort: a slow or
// gone subscriber is dropped, never waited on.
package events

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types published by the stores.
const (
	ProjectCreated = "project.created"
	ProjectUpdated = "project.updated"
	TicketCreated  = "ticket.created"
	TicketUpdated  = "ticket.updated"
	TicketDeleted  = "ticket.deleted"
)

// Event is what subscribers receive. Payloads carry ids only; clients
// refetch through the normal org-scoped API.
type Event struct {
	Type      string    `json:"type"`
	ProjectID string    `json:"projectId,omitempty"`
	TicketID  string    `json:"ticketId,omitempty"`
	At        time.Time `json:"at"`
}

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

type subscriber struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans events out to websocket subscribers, partitioned by organization.
type Hub struct {
	mu   sync.RWMutex
	subs map[primitive.ObjectID]map[*subscriber]struct{}

	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[primitive.ObjectID]map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers send an Origin header; the API is token-gated, so
			// the handshake does not re-check it.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Publish sends the event to every subscriber of the organization.
func (h *Hub) Publish(orgID primitive.ObjectID, ev Event) {
	if orgID.IsZero() {
		return
	}
	ev.At = time.Now()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[orgID] {
		select {
		case sub.send <- ev:
		default:
			// Subscriber is not draining; close below via write failure.
		}
	}
}

// Serve upgrades the request and streams events until the client leaves.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, orgID primitive.ObjectID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := &subscriber{conn: conn, send: make(chan Event, sendBufferSize)}
	h.add(orgID, sub)
	defer h.remove(orgID, sub)

	// Reader goroutine: only to notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-sub.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("[events] dropping subscriber: %v", err)
				conn.Close()
				return nil
			}
		case <-done:
			conn.Close()
			return nil
		}
	}
}

func (h *Hub) add(orgID primitive.ObjectID, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[orgID] == nil {
		h.subs[orgID] = make(map[*subscriber]struct{})
	}
	h.subs[orgID][sub] = struct{}{}
}

func (h *Hub) remove(orgID primitive.ObjectID, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[orgID], sub)
	if len(h.subs[orgID]) == 0 {
		delete(h.subs, orgID)
	}
}
