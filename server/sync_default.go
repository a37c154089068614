//go:build !deadlock

package server

import "sync"

// EngineMutex serializes every call into the engine
type EngineMutex struct {
	mu sync.Mutex
}

func (m *EngineMutex) Lock()   { m.mu.Lock() }
func (m *EngineMutex) Unlock() { m.mu.Unlock() }
