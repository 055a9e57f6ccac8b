package wizard

import (
	"sync"
	"time"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/utils"
)

const ticketTTL = 30 * time.Second

type eventTicket struct {
	sessionID string
	expiresAt time.Time
}

// Manager owns the live wizard sessions and the outgoing event stream.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	tickets  map[string]eventTicket
	events   chan models.WizardEvent
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		tickets:  make(map[string]eventTicket),
		events:   make(chan models.WizardEvent, 64),
	}
}

func (m *Manager) Create(ownerID, entryMethod, deviceToken string) *Session {
	s := newSession(ownerID, entryMethod, deviceToken, m.events)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return s, nil
}

// Remove discards a session and tears down its poller.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.StopPoller()
	}
}

// Events is the stream of wizard events consumed by the websocket hub.
func (m *Manager) Events() <-chan models.WizardEvent {
	return m.events
}

// IssueTicket mints a short-lived ticket authorising one websocket upgrade
// for the given session.
func (m *Manager) IssueTicket(sessionID string) (string, error) {
	ticket, err := utils.NewTicket()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for t, et := range m.tickets {
		if time.Now().After(et.expiresAt) {
			delete(m.tickets, t)
		}
	}
	m.tickets[ticket] = eventTicket{sessionID: sessionID, expiresAt: time.Now().Add(ticketTTL)}
	return ticket, nil
}

// RedeemTicket consumes a ticket and returns the session it was issued for.
func (m *Manager) RedeemTicket(ticket string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	et, ok := m.tickets[ticket]
	if !ok || time.Now().After(et.expiresAt) {
		return "", models.ErrInvalidTicket
	}
	delete(m.tickets, ticket)
	return et.sessionID, nil
}
