package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps stored strings in bytes
const MaxStringLen = 20

// AtomicString holds a short label; the zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store saves val, cut to MaxStringLen bytes without splitting a rune
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
