package session

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

const cookieName = "qrgen_session"

// Store persists per-session values keyed by session id.
type Store interface {
	Get(sessionID, key string) (string, bool)
	Set(sessionID, key, value string)
	Delete(sessionID, key string)
}

// Manager tracks browser sessions through a signed cookie carrying a
// random session id. All session state lives server-side in a Store.
type Manager struct {
	store Store
	codec *securecookie.SecureCookie
}

// NewManager creates a session manager signing cookies with secret.
func NewManager(store Store, secret []byte) *Manager {
	return &Manager{
		store: store,
		codec: securecookie.New(secret, nil),
	}
}

// SessionID returns the session id for the request, issuing a fresh
// signed cookie when the request carries none or an invalid one.
func (m *Manager) SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil {
		var sid string
		if err := m.codec.Decode(cookieName, c.Value, &sid); err == nil && sid != "" {
			return sid
		}
	}

	sid := uuid.New().String()
	encoded, err := m.codec.Encode(cookieName, sid)
	if err != nil {
		appLogger.CtxError(r.Context(), "Failed to encode session cookie", appLogger.LoggerInfo{
			ContextFunction: constant.CtxSessionStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeSessionCookie,
				Message: err.Error(),
				Type:    constant.ErrTypeSession,
			},
		})
		return sid
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	appLogger.CtxDebug(r.Context(), "Issued new session", appLogger.LoggerInfo{
		ContextFunction: constant.CtxSessionStore,
		Data: map[string]interface{}{
			constant.DataSessionID: sid,
		},
	})

	return sid
}

// Paid reports whether the session has completed payment.
func (m *Manager) Paid(sessionID string) bool {
	v, ok := m.store.Get(sessionID, constant.SessionKeyPaid)
	return ok && v == "true"
}

// SetPaid marks the session as paid. Setting it twice is harmless.
func (m *Manager) SetPaid(sessionID string) {
	m.store.Set(sessionID, constant.SessionKeyPaid, "true")
}

// AddFlash queues a transient message for the session.
func (m *Manager) AddFlash(sessionID, message string) {
	var messages []string
	if raw, ok := m.store.Get(sessionID, constant.SessionKeyFlashes); ok {
		_ = json.Unmarshal([]byte(raw), &messages)
	}
	messages = append(messages, message)

	encoded, err := json.Marshal(messages)
	if err != nil {
		return
	}
	m.store.Set(sessionID, constant.SessionKeyFlashes, string(encoded))
}

// ConsumeFlashes returns the queued messages and clears them.
// Messages are rendered exactly once.
func (m *Manager) ConsumeFlashes(sessionID string) []string {
	raw, ok := m.store.Get(sessionID, constant.SessionKeyFlashes)
	if !ok {
		return nil
	}
	m.store.Delete(sessionID, constant.SessionKeyFlashes)

	var messages []string
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil
	}
	return messages
}
