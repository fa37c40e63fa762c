// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search controller is the only stateful service: it owns the
// interactive SearchState and is safe for concurrent use.
package services
