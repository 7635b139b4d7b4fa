// File: internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads configuration from a yaml file and environment variables.
// CONFIG_PATH overrides the file location; otherwise config.<APP_ENV>.yaml is
// searched for in ./configs and the working directory. Environment variables
// use the FEDERATION prefix with dots replaced by underscores.
func LoadConfig() (*Config, error) {
	setDefaults()

	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(fmt.Sprintf("config.%s", env))
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/federation-service")
	}

	viper.SetEnvPrefix("FEDERATION")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// No config file is fine, environment variables carry the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.environment", "development")
	viper.SetDefault("github.auth_url", "https://github.com/login/oauth/authorize")
	viper.SetDefault("github.token_url", "https://github.com/login/oauth/access_token")
	viper.SetDefault("github.api_base_url", "https://api.github.com")
	viper.SetDefault("github.required_scopes", []string{"read:org", "user:email"})
	viper.SetDefault("rocketchat.username_suffix", "_rc4git")
	viper.SetDefault("rocketchat.email_domain", "rc4git.com")
	viper.SetDefault("ledger.path", "inconsistent_users.json")
	viper.SetDefault("security.password_length", 24)
	viper.SetDefault("jwt.token_ttl", "720h")
	viper.SetDefault("jwt.issuer", "rc4community")
}
