package network

import (
	"errors"
	"testing"

	"github.com/lixenwraith/warpzone/hero"
)

func TestParseClientMessage(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    MessageType
		wantErr error
	}{
		{"init", `{"type":"init","name":"alice","hero":"maven"}`, MsgInit, nil},
		{"key down", `{"type":"keyDown","key":"left"}`, MsgKeyDown, nil},
		{"key up", `{"type":"keyUp","key":"ability1"}`, MsgKeyUp, nil},
		{"mouse pos", `{"type":"mousePos","x":10,"y":-4}`, MsgMousePos, nil},
		{"mouse enable", `{"type":"mouseEnable","enabled":true}`, MsgMouseEnable, nil},
		{"bad key", `{"type":"keyDown","key":"jump"}`, "", ErrUnknownKey},
		{"bad type", `{"type":"teleport"}`, "", ErrUnknownMessage},
		{"not json", `{type`, "", ErrMalformedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseClientMessage([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if msg.Type != tt.want {
				t.Errorf("Expected type %s, got %s", tt.want, msg.Type)
			}
		})
	}
}

func TestApplyToInput(t *testing.T) {
	var in hero.Input

	(&ClientMessage{Type: MsgKeyDown, Key: KeyLeft}).ApplyTo(&in)
	(&ClientMessage{Type: MsgKeyDown, Key: KeyShift}).ApplyTo(&in)
	if !in.Left || !in.Shift {
		t.Errorf("Expected left and shift held, got %+v", in)
	}

	(&ClientMessage{Type: MsgKeyUp, Key: KeyLeft}).ApplyTo(&in)
	if in.Left {
		t.Error("Expected left released")
	}

	(&ClientMessage{Type: MsgKeyDown, Key: KeyAbility1}).ApplyTo(&in)
	(&ClientMessage{Type: MsgKeyUp, Key: KeyAbility1}).ApplyTo(&in)
	if !in.Ability1 {
		t.Error("Expected ability press to survive release")
	}

	(&ClientMessage{Type: MsgMousePos, X: 30, Y: -40}).ApplyTo(&in)
	(&ClientMessage{Type: MsgMouseEnable, Enabled: true}).ApplyTo(&in)
	if in.MouseX != 30 || in.MouseY != -40 || !in.MouseEnable {
		t.Errorf("Expected mouse (30,-40) enabled, got %+v", in)
	}

	if (&ClientMessage{Type: MsgInit, Name: "x"}).ApplyTo(&in) {
		t.Error("Expected init to carry no input")
	}
}
