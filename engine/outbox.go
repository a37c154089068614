package engine

import "github.com/lixenwraith/warpzone/snapshot"

// outbox queues packages per client between flushes
// Order of enqueue is preserved per client
type outbox struct {
	queues map[int64][]snapshot.Package
}

func newOutbox() *outbox {
	return &outbox{queues: make(map[int64][]snapshot.Package)}
}

// global delivers to every connected client
func (o *outbox) global(clients map[int64]struct{}, pkg snapshot.Package) {
	for id := range clients {
		o.queues[id] = append(o.queues[id], pkg)
	}
}

// area delivers to the given roster
func (o *outbox) area(roster []int64, pkg snapshot.Package) {
	for _, id := range roster {
		o.queues[id] = append(o.queues[id], pkg)
	}
}

func (o *outbox) direct(id int64, pkg snapshot.Package) {
	o.queues[id] = append(o.queues[id], pkg)
}

func (o *outbox) drop(id int64) {
	delete(o.queues, id)
}

// flush hands over every non-empty queue and starts fresh
func (o *outbox) flush() map[int64][]snapshot.Package {
	out := o.queues
	o.queues = make(map[int64][]snapshot.Package, len(out))
	return out
}
