// Package service implements the application's use cases on top of the
// store, cache, and event layers.
//
// The task lifecycle service is the core: every mutation runs the same
// pipeline of authorization, validation, persistence, and then
// best-effort cache synchronization and subscriber notification. The
// store write is the commit point; cache and notification failures are
// logged and swallowed, never rolled back into the caller.
//
// Services depend on narrow repository interfaces defined here and
// satisfied by adapters over the store implementations, keeping the
// services free of database/sql concerns.
package service
