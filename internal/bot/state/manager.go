package state

import "sync"

// ListContext is the month a user is currently paging through with /list.
// Pagination buttons carry only the page number; the month lives here.
type ListContext struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// StateManager stores per-user conversational context.
type StateManager interface {
	SetListContext(userID int64, lc ListContext)
	GetListContext(userID int64) (ListContext, bool)
	ClearListContext(userID int64)
	Close() error
}

// Manager is the in-memory state backend.
type Manager struct {
	listContexts map[int64]ListContext
	mu           sync.RWMutex
}

// NewManager creates a new in-memory state manager
func NewManager() *Manager {
	return &Manager{
		listContexts: make(map[int64]ListContext),
	}
}

// SetListContext sets the list pagination context for a user
func (m *Manager) SetListContext(userID int64, lc ListContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listContexts[userID] = lc
}

// GetListContext gets the list pagination context for a user
func (m *Manager) GetListContext(userID int64) (ListContext, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lc, exists := m.listContexts[userID]
	return lc, exists
}

// ClearListContext clears the list pagination context for a user
func (m *Manager) ClearListContext(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listContexts, userID)
}

// Close is a no-op for the in-memory backend
func (m *Manager) Close() error {
	return nil
}
