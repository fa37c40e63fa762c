// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CategorySearcher: Runs one remote query per content category
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - TokenProvider: Access tokens for the search endpoint. Nil means the
//     HTTP client is already authenticated by its caller.
//   - URLOpener: Opens a result link in the platform browser.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
