package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Shards  ShardsConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Billing BillingConfig
	AI      AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// ShardsConfig topología de shards PostgreSQL.
// DatabaseURLs es la lista ordenada de connection strings: el índice en la lista
// es el índice del shard, y el shard 0 es siempre el primario (workspaces,
// memberships, invites, usuarios y la tabla de asignaciones workspace→shard).
type ShardsConfig struct {
	DatabaseURLs []string
}

// Count devuelve la cantidad de shards configurados.
func (c ShardsConfig) Count() int {
	return len(c.DatabaseURLs)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BillingConfig secretos de firma de webhooks por proveedor de pagos.
// Cada proveedor firma el cuerpo crudo con HMAC-SHA256 sobre su propio header.
type BillingConfig struct {
	StripeWebhookSecret string
	PaddleWebhookSecret string
	LemonWebhookSecret  string
}

// AIConfig configuración del asistente de IA (boots).
type AIConfig struct {
	AnthropicAPIKey string
	AnthropicModel  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SHARD_DATABASE_URLS,
// JWT_SECRET, STRIPE_WEBHOOK_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "taskhive"),
		},
		Shards: ShardsConfig{
			DatabaseURLs: splitURLs(getString(v, "SHARD_DATABASE_URLS", "")),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "taskhive"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Billing: BillingConfig{
			StripeWebhookSecret: getString(v, "STRIPE_WEBHOOK_SECRET", ""),
			PaddleWebhookSecret: getString(v, "PADDLE_WEBHOOK_SECRET", ""),
			LemonWebhookSecret:  getString(v, "LEMON_WEBHOOK_SECRET", ""),
		},
		AI: AIConfig{
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		},
	}

	if cfg.Shards.Count() == 0 {
		return nil, fmt.Errorf("config: SHARD_DATABASE_URLS es requerido (lista separada por comas, índice 0 = primario)")
	}

	return cfg, nil
}

// splitURLs parte la lista separada por comas y descarta entradas vacías.
func splitURLs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
