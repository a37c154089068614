package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/warpzone/hero"
)

// MessageType identifies a client message
type MessageType string

const (
	MsgInit        MessageType = "init"
	MsgKeyDown     MessageType = "keyDown"
	MsgKeyUp       MessageType = "keyUp"
	MsgMousePos    MessageType = "mousePos"
	MsgMouseEnable MessageType = "mouseEnable"
)

// Key names accepted in keyDown/keyUp
const (
	KeyLeft     = "left"
	KeyRight    = "right"
	KeyUp       = "up"
	KeyDown     = "down"
	KeyShift    = "shift"
	KeyAbility1 = "ability1"
)

var (
	ErrMalformedMessage = errors.New("malformed client message")
	ErrUnknownMessage   = errors.New("unknown client message type")
	ErrUnknownKey       = errors.New("unknown key")
)

// ClientMessage is one JSON text frame sent by a client
// Only the fields of the given Type are meaningful
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Name    string      `json:"name,omitempty"`
	Hero    string      `json:"hero,omitempty"`
	Key     string      `json:"key,omitempty"`
	X       float64     `json:"x,omitempty"`
	Y       float64     `json:"y,omitempty"`
	Enabled bool        `json:"enabled,omitempty"`
}

// ParseClientMessage decodes and validates a client frame
func ParseClientMessage(data []byte) (*ClientMessage, error) {
	var m ClientMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch m.Type {
	case MsgInit, MsgMousePos, MsgMouseEnable:
	case MsgKeyDown, MsgKeyUp:
		if !validKey(m.Key) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, m.Key)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
	return &m, nil
}

func validKey(k string) bool {
	switch k {
	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyShift, KeyAbility1:
		return true
	}
	return false
}

// ApplyTo folds an input message into a client's control state
// Returns false for messages that carry no input
func (m *ClientMessage) ApplyTo(in *hero.Input) bool {
	switch m.Type {
	case MsgKeyDown, MsgKeyUp:
		down := m.Type == MsgKeyDown
		switch m.Key {
		case KeyLeft:
			in.Left = down
		case KeyRight:
			in.Right = down
		case KeyUp:
			in.Up = down
		case KeyDown:
			in.Down = down
		case KeyShift:
			in.Shift = down
		case KeyAbility1:
			// Edge only: release carries nothing
			if down {
				in.Ability1 = true
			}
		}
		return true
	case MsgMousePos:
		in.MouseX, in.MouseY = m.X, m.Y
		return true
	case MsgMouseEnable:
		in.MouseEnable = m.Enabled
		return true
	}
	return false
}
