package proxy

import (
	"math/rand"
	"sync"
)

// Manager handles the rotation of proxies and user agents.
type Manager struct {
	proxies    []string
	userAgents []string
	mu         sync.Mutex
	proxyIndex int
}

// NewManager builds a manager over the configured proxies and user agents.
// Either list may be empty.
func NewManager(proxies, userAgents []string) *Manager {
	return &Manager{
		proxies:    append([]string(nil), proxies...),
		userAgents: append([]string(nil), userAgents...),
	}
}

// GetProxy returns a proxy URL from the list, rotating sequentially.
func (m *Manager) GetProxy() string {
	if len(m.proxies) == 0 {
		return "" // No proxy
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	proxy := m.proxies[m.proxyIndex]
	m.proxyIndex = (m.proxyIndex + 1) % len(m.proxies)
	return proxy
}

// GetUserAgent returns a random user agent string.
func (m *Manager) GetUserAgent() string {
	switch len(m.userAgents) {
	case 0:
		return ""
	case 1:
		return m.userAgents[0]
	}
	return m.userAgents[rand.Intn(len(m.userAgents))]
}
