package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore(10)

	_, ok := store.Get("sid", "paid")
	assert.False(t, ok)

	store.Set("sid", "paid", "true")
	value, ok := store.Get("sid", "paid")
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	store.Set("sid", "paid", "false")
	value, _ = store.Get("sid", "paid")
	assert.Equal(t, "false", value)

	store.Delete("sid", "paid")
	_, ok = store.Get("sid", "paid")
	assert.False(t, ok)
}

func TestMemoryStore_Eviction(t *testing.T) {
	// Arrange: capacity of two entries
	store := NewMemoryStore(2)

	// Act
	store.Set("a", "k", "1")
	store.Set("b", "k", "2")
	store.Set("c", "k", "3")

	// Assert: oldest entry evicted
	_, ok := store.Get("a", "k")
	assert.False(t, ok)
	_, ok = store.Get("b", "k")
	assert.True(t, ok)
	_, ok = store.Get("c", "k")
	assert.True(t, ok)
	assert.Equal(t, 2, store.Size())
}

func TestMemoryStore_DeleteSession(t *testing.T) {
	store := NewMemoryStore(10)
	store.Set("sid", "paid", "true")
	store.Set("sid", "flashes", "[]")
	store.Set("other", "paid", "true")

	store.DeleteSession("sid")

	_, ok := store.Get("sid", "paid")
	assert.False(t, ok)
	_, ok = store.Get("sid", "flashes")
	assert.False(t, ok)
	_, ok = store.Get("other", "paid")
	assert.True(t, ok)
}

func TestManager_SessionIDRoundTrip(t *testing.T) {
	// Arrange
	manager := NewManager(NewMemoryStore(10), testSecret)

	// Act: first request has no cookie, a session is issued
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	first := manager.SessionID(w, r)
	assert.NotEmpty(t, first)

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)

	// Act: second request carries the cookie back
	r2 := httptest.NewRequest("GET", "/", nil)
	r2.AddCookie(cookies[0])
	second := manager.SessionID(httptest.NewRecorder(), r2)

	// Assert: same session
	assert.Equal(t, first, second)
}

func TestManager_TamperedCookieIssuesNewSession(t *testing.T) {
	manager := NewManager(NewMemoryStore(10), testSecret)

	w := httptest.NewRecorder()
	first := manager.SessionID(w, httptest.NewRequest("GET", "/", nil))

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "qrgen_session", Value: "tampered"})
	second := manager.SessionID(httptest.NewRecorder(), r)

	assert.NotEqual(t, first, second)
}

func TestManager_PaidFlag(t *testing.T) {
	manager := NewManager(NewMemoryStore(10), testSecret)

	assert.False(t, manager.Paid("sid"))

	manager.SetPaid("sid")
	assert.True(t, manager.Paid("sid"))

	// Setting twice is harmless
	manager.SetPaid("sid")
	assert.True(t, manager.Paid("sid"))

	assert.False(t, manager.Paid("other"))
}

func TestManager_FlashesConsumedOnce(t *testing.T) {
	manager := NewManager(NewMemoryStore(10), testSecret)

	assert.Nil(t, manager.ConsumeFlashes("sid"))

	manager.AddFlash("sid", "first")
	manager.AddFlash("sid", "second")

	flashes := manager.ConsumeFlashes("sid")
	assert.Equal(t, []string{"first", "second"}, flashes)

	// Consumed exactly once
	assert.Nil(t, manager.ConsumeFlashes("sid"))
}

func TestManager_FlashesScopedToSession(t *testing.T) {
	manager := NewManager(NewMemoryStore(10), testSecret)

	manager.AddFlash("a", "for a")

	assert.Nil(t, manager.ConsumeFlashes("b"))
	assert.Equal(t, []string{"for a"}, manager.ConsumeFlashes("a"))
}
