package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Game    GameConfig    `mapstructure:"game" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// GameConfig contains the rules of a memory game session.
type GameConfig struct {
	// PairCount is the number of distinct symbols dealt per game.
	PairCount int `mapstructure:"pair_count" validate:"required,gt=0,ltefield=SymbolCount"`

	// MismatchDelay is how long a mismatched pair stays face up.
	MismatchDelay time.Duration `mapstructure:"mismatch_delay" validate:"gte=0"`

	// Symbols is the alphabet cards are drawn from, in order.
	Symbols []string `mapstructure:"symbols" validate:"required,min=1,unique,dive,required"`

	// MaxSessions caps how many games the server hosts at once.
	MaxSessions int `mapstructure:"max_sessions" validate:"required,gt=0"`

	// SymbolCount mirrors len(Symbols) so PairCount can be checked against it.
	SymbolCount int `mapstructure:"-"`
}

// StorageConfig selects where the leaderboard is persisted.
type StorageConfig struct {
	// Driver is one of memory, sqlite or bolt.
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite bolt"`

	// Path is the database file for the sqlite and bolt drivers.
	Path string `mapstructure:"path" validate:"required_unless=Driver memory"`
}
