// Package game implements the memory game's turn-taking state machine.
//
// A Session deals a shuffled deck, accepts card selections two at a time,
// keeps matched pairs face up, hides mismatched pairs again after a delay,
// and records a score when every pair has been found. Presentation is
// delegated to a Renderer; the Session drives it and never reads from it.
//
// State transitions:
//
//	Idle ──StartGame──▶ Playing ──mismatch──▶ Resolving ──delay──▶ Playing
//	                       │
//	                       └──last match──▶ Complete ──StartGame──▶ Playing
//
// The Session's own state check is what locks input while Resolving;
// renderers may also disable input, but correctness does not depend on it.
package game
