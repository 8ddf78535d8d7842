// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. It provides
// type-safe access to server, game and storage settings while keeping
// configuration details separate from the game engine.
package config
