// Package domain holds the core entities of a synchronization run.
//
// A run is monotonic and forward-only: the CLI captures a SyncTarget from
// the local git repository, establishes a Session against the control
// plane, resolves a RepositoryRef, and then drives asset discovery,
// import and convergence polling. No entity is re-derived once resolved;
// everything is threaded explicitly from stage to stage.
package domain
