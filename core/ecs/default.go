package ecs

import "sync"

var (
	defaultMu    sync.Mutex
	defaultWorld *World
)

// Default returns the process-wide world, creating it on first use. Code
// that owns its worlds should not need it.
func Default() *World {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultWorld == nil {
		defaultWorld = NewWorld()
	}
	return defaultWorld
}

// ResetDefault discards the process-wide world; the next Default call builds
// a new one. Tests call it in cleanup.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultWorld = nil
}
