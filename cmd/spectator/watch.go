package main

import (
	"github.com/lixenwraith/warpzone/audio"
	"github.com/lixenwraith/warpzone/hero"
)

type seen struct {
	downed bool
	world  string
	area   int
}

// watcher turns player state transitions between ticks into audio cues
type watcher struct {
	last map[int64]seen
}

func newWatcher() *watcher {
	return &watcher{last: make(map[int64]seen)}
}

// observe compares players against the previous call
// Players seen for the first time produce no cue; departed players are forgotten
func (w *watcher) observe(players []*hero.Player) []audio.Cue {
	var cues []audio.Cue
	now := make(map[int64]seen, len(players))
	for _, p := range players {
		cur := seen{downed: p.Downed, world: p.World, area: p.Area}
		now[p.ID] = cur

		prev, ok := w.last[p.ID]
		if !ok {
			continue
		}
		switch {
		case !prev.downed && cur.downed:
			cues = append(cues, audio.CueKnock)
		case prev.downed && !cur.downed:
			cues = append(cues, audio.CueRescue)
		}
		if prev.world != cur.world || prev.area != cur.area {
			cues = append(cues, audio.CueWarp)
		}
	}
	w.last = now
	return cues
}
