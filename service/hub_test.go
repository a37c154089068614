package service

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

type recorder struct {
	name    string
	deps    []string
	log     *[]string
	failOn  string
	stopped int
}

func (r *recorder) Name() string           { return r.name }
func (r *recorder) Dependencies() []string { return r.deps }

func (r *recorder) Init(args ...any) error {
	*r.log = append(*r.log, "init:"+r.name)
	if r.failOn == "init" {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) Start() error {
	*r.log = append(*r.log, "start:"+r.name)
	if r.failOn == "start" {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) Stop() error {
	r.stopped++
	*r.log = append(*r.log, "stop:"+r.name)
	return nil
}

func TestHubLifecycleOrder(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&recorder{name: "server", deps: []string{"network", "status"}, log: &log})
	_ = h.Register(&recorder{name: "network", deps: []string{"status"}, log: &log})
	_ = h.Register(&recorder{name: "status", log: &log})

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	h.StopAll()

	want := []string{
		"init:status", "init:network", "init:server",
		"start:status", "start:network", "start:server",
		"stop:server", "stop:network", "stop:status",
	}
	if !slices.Equal(log, want) {
		t.Errorf("Expected %v, got %v", want, log)
	}
}

func TestHubStartRollback(t *testing.T) {
	var log []string
	h := NewHub(nil)
	status := &recorder{name: "status", log: &log}
	_ = h.Register(status)
	_ = h.Register(&recorder{name: "network", deps: []string{"status"}, log: &log, failOn: "start"})

	_ = h.InitAll()
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start failure")
	}
	if status.stopped != 1 {
		t.Errorf("Expected status stopped once on rollback, got %d", status.stopped)
	}

	h.StopAll()
	if status.stopped != 1 {
		t.Errorf("Expected no second stop after rollback, got %d", status.stopped)
	}
}

func TestHubErrors(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&recorder{name: "a", log: &log})
	if err := h.Register(&recorder{name: "a", log: &log}); !errors.Is(err, ErrDuplicateService) {
		t.Errorf("Expected ErrDuplicateService, got %v", err)
	}

	h = NewHub(nil)
	_ = h.Register(&recorder{name: "a", deps: []string{"ghost"}, log: &log})
	if err := h.InitAll(); !errors.Is(err, ErrMissingService) {
		t.Errorf("Expected ErrMissingService, got %v", err)
	}

	h = NewHub(nil)
	_ = h.Register(&recorder{name: "a", deps: []string{"b"}, log: &log})
	_ = h.Register(&recorder{name: "b", deps: []string{"a"}, log: &log})
	err := h.InitAll()
	if !errors.Is(err, ErrCircularService) {
		t.Errorf("Expected ErrCircularService, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "a -> b -> a") {
		t.Errorf("Expected cycle path in error, got %v", err)
	}
}

func TestHubInitRollbackAndStopOnce(t *testing.T) {
	var log []string
	h := NewHub(nil)
	status := &recorder{name: "status", log: &log}
	_ = h.Register(status)
	_ = h.Register(&recorder{name: "network", deps: []string{"status"}, log: &log, failOn: "init"})

	if err := h.InitAll(); err == nil {
		t.Fatal("Expected init failure")
	}
	if status.stopped != 1 {
		t.Errorf("Expected status stopped once on init rollback, got %d", status.stopped)
	}

	h.StopAll()
	h.StopAll()
	if status.stopped != 1 {
		t.Errorf("Expected StopAll to skip rolled back services, got %d stops", status.stopped)
	}
}

func TestHubNames(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&recorder{name: "b", log: &log})
	_ = h.Register(&recorder{name: "a", log: &log})
	if got := h.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", got)
	}
}

func TestMustGet(t *testing.T) {
	var log []string
	h := NewHub(nil)
	_ = h.Register(&recorder{name: "a", log: &log})

	r := MustGet[*recorder](h, "a")
	if r.name != "a" {
		t.Errorf("Expected a, got %s", r.name)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for missing service")
		}
	}()
	MustGet[*recorder](h, "missing")
}
