// Package driven defines the interfaces the core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// The sync orchestrator depends on these interfaces; adapters implement
// them against the real control plane, the local git repository and the
// system clock, and tests implement them with in-memory fakes.
//
//   - ControlPlane: the remote configuration-management API
//   - VCS: the narrow local-git capability (branch, commit, remote, push)
//   - Clock: time source and interruptible sleep for poll loops
//
// Can import: the domain package only.
package driven
