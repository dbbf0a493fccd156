package errors

import (
	"sync"
	"time"
)

// MessageType classifies a status message for styling.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// Message is one status line.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// TUIHandler keeps the most recent message for the status bar. Messages
// expire after ttl.
type TUIHandler struct {
	mu     sync.RWMutex
	latest Message
	has    bool
	ttl    time.Duration
	now    func() time.Time
}

// NewTUIHandler creates a handler whose messages expire after ttl. A zero
// ttl keeps messages until replaced or cleared.
func NewTUIHandler(ttl time.Duration) *TUIHandler {
	return &TUIHandler{ttl: ttl, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.set(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.set(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.set(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.set(msg, MessageTypeSuccess) }

func (h *TUIHandler) set(text string, typ MessageType) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = Message{Text: text, Type: typ, Timestamp: h.now()}
	h.has = true
}

// Latest returns the current message unless it has expired.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.has {
		return Message{}, false
	}
	if h.ttl > 0 && h.now().Sub(h.latest.Timestamp) >= h.ttl {
		return Message{}, false
	}
	return h.latest, true
}

// Clear drops the current message.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.has = false
}
