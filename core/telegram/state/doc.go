// Package state provides a lightweight FSM/session manager for the order
// conversation. Sessions live in memory only: a restart drops every active
// dialogue back to idle, which is acceptable because each step re-reads the
// order from the ledger.
package state
