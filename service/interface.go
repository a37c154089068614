package service

// Service is a long-lived host subsystem managed by Hub
// The hub calls Init on every service, then Start, both in dependency order;
// Stop runs in reverse and may be called on a service that never started
type Service interface {
	Name() string

	// Dependencies names services that must be initialized and started first
	Dependencies() []string

	// Init receives the hub-wide args; services pick out the values they recognise
	Init(args ...any) error

	Start() error

	// Stop must be idempotent
	Stop() error
}
