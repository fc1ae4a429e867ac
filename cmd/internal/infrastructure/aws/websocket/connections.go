package websocket

import (
	"slices"
	"sync"
)

// ConnectionRegistry maps account ids to their open websocket connections.
// It lives in memory, so clients re-register after a restart.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[string][]string
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{conns: make(map[string][]string)}
}

func (r *ConnectionRegistry) Add(accountID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.conns[accountID], connID) {
		return
	}
	r.conns[accountID] = append(r.conns[accountID], connID)
}

func (r *ConnectionRegistry) Remove(accountID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := slices.DeleteFunc(r.conns[accountID], func(c string) bool { return c == connID })
	if len(remaining) == 0 {
		delete(r.conns, accountID)
		return
	}
	r.conns[accountID] = remaining
}

// For returns a copy of the account's connection ids.
func (r *ConnectionRegistry) For(accountID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.conns[accountID])
}
