package network

import "time"

// Config holds transport configuration
type Config struct {
	// Address to bind; ":0" picks a free port
	Address string

	// Connection limits
	MaxPeers  int
	ReadLimit int64 // largest accepted client frame in bytes

	// Timing
	ReadTimeout     time.Duration // reset by every frame and pong
	WriteTimeout    time.Duration
	PingInterval    time.Duration
	ShutdownTimeout time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int // frames buffered per peer before the peer is dropped
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:         ":7777",
		MaxPeers:        64,
		ReadLimit:       4 * 1024,
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		PingInterval:    25 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 64 * 1024,
		SendQueueSize:   64,
	}
}
