package main

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ServerConfig holds runtime settings for the noteful-auth server. Values are
// resolved once at startup: defaults, then an optional YAML file, then flags.
type ServerConfig struct {
	Addr     string `koanf:"addr"`
	Debug    bool   `koanf:"debug"`
	Database struct {
		DSN string `koanf:"dsn"`
	} `koanf:"database"`
	Auth AuthConfig `koanf:"auth"`
}

// AuthConfig implements the library's auth.Config interface.
type AuthConfig struct {
	SigningKey      string   `koanf:"signing_key"`
	SigningMethod   string   `koanf:"signing_method"`
	TokenExpiration int      `koanf:"token_expiration"`
	Issuer          string   `koanf:"issuer"`
	Audience        []string `koanf:"audience"`
	AuthScheme      string   `koanf:"auth_scheme"`
}

func (c AuthConfig) GetSigningKey() string    { return c.SigningKey }
func (c AuthConfig) GetSigningMethod() string { return c.SigningMethod }
func (c AuthConfig) GetTokenExpiration() int  { return c.TokenExpiration }
func (c AuthConfig) GetIssuer() string        { return c.Issuer }
func (c AuthConfig) GetAudience() []string    { return c.Audience }
func (c AuthConfig) GetAuthScheme() string    { return c.AuthScheme }

func defaultConfig() ServerConfig {
	cfg := ServerConfig{
		Addr: ":8080",
	}
	cfg.Database.DSN = "file:noteful.db?cache=shared&mode=rwc"
	cfg.Auth.SigningMethod = "HS256"
	// 7 days, the Noteful token policy default
	cfg.Auth.TokenExpiration = 7 * 24
	cfg.Auth.AuthScheme = "Bearer"
	return cfg
}

// LoadConfig resolves the server configuration. A missing signing key is a
// startup error, not something to limp along without.
func LoadConfig(args []string) (ServerConfig, error) {
	cfg := defaultConfig()

	fs := pflag.NewFlagSet("noteful-auth", pflag.ContinueOnError)
	configPath := fs.String("config", "", "path to YAML config file")
	fs.String("addr", cfg.Addr, "HTTP listen address")
	fs.String("database.dsn", cfg.Database.DSN, "sqlite DSN")
	fs.String("auth.signing_key", "", "JWT signing secret")
	fs.Int("auth.token_expiration", cfg.Auth.TokenExpiration, "token TTL in hours")
	fs.Bool("debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	k := koanf.New(".")

	if *configPath != "" {
		if err := k.Load(file.Provider(*configPath), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("loading config file %q: %w", *configPath, err)
		}
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return cfg, fmt.Errorf("loading flags: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Auth.SigningKey == "" {
		cfg.Auth.SigningKey = os.Getenv("NOTEFUL_SIGNING_KEY")
	}

	if cfg.Auth.SigningKey == "" {
		return cfg, fmt.Errorf("auth.signing_key is required (flag, config file, or NOTEFUL_SIGNING_KEY)")
	}

	return cfg, nil
}
