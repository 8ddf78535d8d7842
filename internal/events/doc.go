// Package events provides types and interfaces for publishing game events.
//
// A game session emits an event for every state change worth observing
// (a game starting, a pair matching or not, a game completing) without
// knowing which handlers consume them.
//
// The primary components are:
// - GameEvent: a typed, timestamped event with a JSON payload
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
// - InMemoryEventEmitter: synchronous fan-out to registered handlers
// - LogHandler: writes every event to a structured logger
package events
