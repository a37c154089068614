//go:build deadlock

package server

import "github.com/sasha-s/go-deadlock"

// EngineMutex serializes every call into the engine
// Built with -tags deadlock it reports lock waits longer than deadlock.Opts.DeadlockTimeout
type EngineMutex struct {
	mu deadlock.Mutex
}

func (m *EngineMutex) Lock()   { m.mu.Lock() }
func (m *EngineMutex) Unlock() { m.mu.Unlock() }

