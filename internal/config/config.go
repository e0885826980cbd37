package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Log        LogConfig        `mapstructure:"log" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	Decoration DecorationConfig `mapstructure:"decoration"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// AuthConfig contains credential storage settings.
type AuthConfig struct {
	// BcryptCost is the work factor used to hash user passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// DecorationConfig contains sticker placement policy.
type DecorationConfig struct {
	// MaxPerUserImage caps how many decorations one user may place on one
	// image. Zero disables the cap.
	MaxPerUserImage int `mapstructure:"max_per_user_image" validate:"gte=0"`
}
