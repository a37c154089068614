package audio

import "errors"

// Cue is a short sound tied to a game event
type Cue int

const (
	CueKnock  Cue = iota // player downed
	CueRescue            // player revived
	CueWarp              // player changed area or world
	cueCount
)

var cueNames = [...]string{
	CueKnock:  "knock",
	CueRescue: "rescue",
	CueWarp:   "warp",
}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// ErrUnknownCue is returned when a cue id has no generator
var ErrUnknownCue = errors.New("unknown cue")
