// Package store holds the process-wide stroke log: every stroke drawn since
// the server started, in arrival order. Nothing is persisted.
package store
