// File: internal/config/config.go
package config

import "time"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Security   SecurityConfig   `mapstructure:"security"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	GitHub     GitHubConfig     `mapstructure:"github"`
	RocketChat RocketChatConfig `mapstructure:"rocketchat"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	Password    string        `mapstructure:"password"`
	DBName      string        `mapstructure:"dbname"`
	SSLMode     string        `mapstructure:"sslmode"`
	AutoMigrate bool          `mapstructure:"auto_migrate"`
	MaxConns    int           `mapstructure:"max_conns"`
	MinConns    int           `mapstructure:"min_conns"`
	ConnMaxLife time.Duration `mapstructure:"conn_max_life"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaProducerConfig struct {
	Topic string `mapstructure:"topic"`
}

type KafkaConfig struct {
	// Brokers left empty disables event publishing entirely.
	Brokers  []string            `mapstructure:"brokers"`
	Producer KafkaProducerConfig `mapstructure:"producer"`
}

type JWTConfig struct {
	// Secret signs the rc4git_token identity cookie (HS256).
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	Issuer   string        `mapstructure:"issuer"`
}

// RateLimitRule defines the configuration for a specific rate limit.
type RateLimitRule struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type SecurityConfig struct {
	// CredentialKey is the hex-encoded 32-byte AES-256 key used to encrypt
	// RocketChat shadow-account passwords.
	CredentialKey  string        `mapstructure:"credential_key"`
	PasswordLength int           `mapstructure:"password_length"`
	LoginIPLimit   RateLimitRule `mapstructure:"login_ip_limit"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"`
}

type GitHubConfig struct {
	ClientID       string   `mapstructure:"client_id"`
	ClientSecret   string   `mapstructure:"client_secret"`
	AuthURL        string   `mapstructure:"auth_url"`
	TokenURL       string   `mapstructure:"token_url"`
	APIBaseURL     string   `mapstructure:"api_base_url"`
	RequiredScopes []string `mapstructure:"required_scopes"`
}

type RocketChatConfig struct {
	APIBaseURL string `mapstructure:"api_base_url"`
	// UsernameSuffix is appended to the GitHub login to form the shadow
	// account username, e.g. "_rc4git".
	UsernameSuffix string `mapstructure:"username_suffix"`
	// EmailDomain forms the synthetic shadow-account email,
	// e.g. "rc4git.com" -> "<login>@rc4git.com".
	EmailDomain string `mapstructure:"email_domain"`
}

type LedgerConfig struct {
	Path string `mapstructure:"path"`
}
