package session

import (
	"container/list"
	"sync"
)

// MemoryStore is an in-memory session Store. Entries are tracked in a
// single LRU queue bounded by capacity, so abandoned sessions fall out
// instead of growing the map forever. Active sessions stay hot because
// every read refreshes their entries.
type MemoryStore struct {
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	mutex    sync.RWMutex
}

type entry struct {
	sessionID string
	key       string
	value     string
}

// NewMemoryStore creates a MemoryStore holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
	}
}

// Set adds or updates a session value.
func (s *MemoryStore) Set(sessionID, key, value string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	compositeKey := sessionID + ":" + key

	if element, exists := s.items[compositeKey]; exists {
		s.queue.MoveToFront(element)
		element.Value.(*entry).value = value
		return
	}

	element := s.queue.PushFront(&entry{
		sessionID: sessionID,
		key:       key,
		value:     value,
	})
	s.items[compositeKey] = element

	if s.queue.Len() > s.capacity {
		s.evict()
	}
}

// Get retrieves a session value.
func (s *MemoryStore) Get(sessionID, key string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	compositeKey := sessionID + ":" + key
	element, exists := s.items[compositeKey]
	if !exists {
		return "", false
	}

	// Mark as recently used
	s.queue.MoveToFront(element)
	return element.Value.(*entry).value, true
}

// Delete removes a single session value.
func (s *MemoryStore) Delete(sessionID, key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	compositeKey := sessionID + ":" + key
	if element, exists := s.items[compositeKey]; exists {
		s.queue.Remove(element)
		delete(s.items, compositeKey)
	}
}

// DeleteSession removes every value belonging to a session.
func (s *MemoryStore) DeleteSession(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var keysToRemove []string
	var elementsToRemove []*list.Element

	for compositeKey, element := range s.items {
		entry := element.Value.(*entry)
		if entry.sessionID == sessionID {
			keysToRemove = append(keysToRemove, compositeKey)
			elementsToRemove = append(elementsToRemove, element)
		}
	}

	for i, key := range keysToRemove {
		s.queue.Remove(elementsToRemove[i])
		delete(s.items, key)
	}
}

// Size returns the current number of entries in the store.
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.queue.Len()
}

// evict removes the least recently used entry.
func (s *MemoryStore) evict() {
	element := s.queue.Back()
	if element == nil {
		return
	}

	s.queue.Remove(element)

	entry := element.Value.(*entry)
	compositeKey := entry.sessionID + ":" + entry.key
	delete(s.items, compositeKey)
}
