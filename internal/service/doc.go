// Package service hosts game sessions for delivery mechanisms such as the
// HTTP API. It owns the session registry, wires each session to its board
// view and the shared leaderboard, and translates game outcomes into
// service-level errors.
//
// Error handling principles:
//  1. Service methods return sentinel errors for expected conditions
//  2. Unexpected errors are wrapped in GameServiceError
//  3. Callers use errors.Is/errors.As to check for specific conditions
//  4. The API layer maps service errors to HTTP status codes
package service
