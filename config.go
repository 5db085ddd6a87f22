package inventory

import (
	"os"
	"strconv"
)

// AppConfig is the concrete process configuration, built once at startup and
// handed to constructors explicitly.
type AppConfig struct {
	SigningKey      string
	SigningMethod   string
	TokenExpiration int
	Issuer          string
	DSN             string
	ListenAddr      string
}

var _ Config = AppConfig{}

func (c AppConfig) GetSigningKey() string { return c.SigningKey }

func (c AppConfig) GetSigningMethod() string { return c.SigningMethod }

func (c AppConfig) GetTokenExpiration() int { return c.TokenExpiration }

func (c AppConfig) GetIssuer() string { return c.Issuer }

func (c AppConfig) GetDSN() string { return c.DSN }

func (c AppConfig) GetListenAddr() string { return c.ListenAddr }

// LoadConfig reads configuration from the environment. Defaults suit local
// development; production deployments should set INVENTORY_SIGNING_KEY and
// INVENTORY_DSN explicitly.
func LoadConfig() AppConfig {
	return AppConfig{
		SigningKey:      getenv("INVENTORY_SIGNING_KEY", "local-dev-signing-key"),
		SigningMethod:   getenv("INVENTORY_SIGNING_METHOD", "HS256"),
		TokenExpiration: getenvInt("INVENTORY_TOKEN_TTL_MINUTES", 30),
		Issuer:          getenv("INVENTORY_ISSUER", "go-inventory"),
		DSN:             getenv("INVENTORY_DSN", "file:inventory.db?_pragma=foreign_keys(1)"),
		ListenAddr:      getenv("INVENTORY_LISTEN_ADDR", ":8080"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
