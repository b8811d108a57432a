/*
Package session implements session management for view state.

It serializes read-modify-write cycles on a ViewState per session ID, using
reference-counted in-process locks plus an optional distributed lock, and
delegates persistence to a ports.StateStore.
*/
package session
