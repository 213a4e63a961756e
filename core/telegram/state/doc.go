// Package state provides per-user FSM sessions for multi-step dialogues.
// Two backends exist: an in-process map for tests and single-instance
// deployments, and Redis for dialogues that must survive restarts.
package state
