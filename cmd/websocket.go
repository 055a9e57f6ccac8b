package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
)

const (
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
)

type wsClient struct {
	sessionID string
	conn      *websocket.Conn
}

// EventHub fans wizard events out to the dashboard connections subscribed to
// each session.
type EventHub struct {
	clients    map[string]map[*websocket.Conn]struct{}
	register   chan wsClient
	unregister chan wsClient
	events     <-chan models.WizardEvent
}

func NewEventHub(events <-chan models.WizardEvent) *EventHub {
	return &EventHub{
		clients:    make(map[string]map[*websocket.Conn]struct{}),
		register:   make(chan wsClient),
		unregister: make(chan wsClient),
		events:     events,
	}
}

func (h *EventHub) Run() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case c := <-h.register:
			if h.clients[c.sessionID] == nil {
				h.clients[c.sessionID] = make(map[*websocket.Conn]struct{})
			}
			h.clients[c.sessionID][c.conn] = struct{}{}
		case c := <-h.unregister:
			if conns, ok := h.clients[c.sessionID]; ok {
				if _, ok := conns[c.conn]; ok {
					c.conn.Close()
					delete(conns, c.conn)
					if len(conns) == 0 {
						delete(h.clients, c.sessionID)
					}
				}
			}
		case evt := <-h.events:
			for conn := range h.clients[evt.SessionID] {
				conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(evt); err != nil {
					conn.Close()
					delete(h.clients[evt.SessionID], conn)
				}
			}
		case <-ping.C:
			for _, conns := range h.clients {
				for conn := range conns {
					conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline))
				}
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveEvents upgrades a ticket-bearing request to a websocket subscribed to
// one session's event stream. Tickets are one-shot and short-lived.
func (app *application) serveEvents(w http.ResponseWriter, r *http.Request) {
	ticket := r.URL.Query().Get("ticket")
	sessionID, err := app.sessions.RedeemTicket(ticket)
	if err != nil || sessionID != r.URL.Query().Get(":sid") {
		http.Error(w, "Invalid ticket", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("websocket upgrade: %v", err)
		return
	}

	client := wsClient{sessionID: sessionID, conn: conn}
	app.hub.register <- client

	// reader loop only detects closure; clients never send frames
	go func() {
		defer func() { app.hub.unregister <- client }()
		conn.SetReadLimit(1 << 12)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
