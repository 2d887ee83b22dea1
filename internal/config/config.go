package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(New),
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type MerchantConfig struct {
	// ID is the public merchant identifier echoed in checkout sessions.
	ID string `mapstructure:"id"`
	// Entity is the Worldpay merchant entity used on authorization requests.
	Entity     string `mapstructure:"entity"`
	Currency   string `mapstructure:"currency"`
	TermsURL   string `mapstructure:"terms_url"`
	PrivacyURL string `mapstructure:"privacy_url"`
}

type WorldpayConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type ShopConfig struct {
	// ChallengeToken is served verbatim at /.well-known/openai-apps-challenge.
	ChallengeToken string `mapstructure:"challenge_token"`
	// WidgetOrigin is the origin advertised in the widget CSP hints.
	WidgetOrigin string `mapstructure:"widget_origin"`
	// DemoBundle makes create_checkout_session ignore the cart and sell a
	// fixed bundle. Off unless explicitly enabled.
	DemoBundle bool          `mapstructure:"demo_bundle"`
	CartTTL    time.Duration `mapstructure:"cart_ttl"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Merchant MerchantConfig `mapstructure:"merchant"`
	Worldpay WorldpayConfig `mapstructure:"worldpay"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Shop     ShopConfig     `mapstructure:"shop"`
}

func New() (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("merchant.id", "swagshop-demo")
	v.SetDefault("merchant.entity", "default")
	v.SetDefault("merchant.currency", "USD")
	v.SetDefault("merchant.terms_url", "https://example.com/terms")
	v.SetDefault("merchant.privacy_url", "https://example.com/privacy")
	v.SetDefault("worldpay.base_url", "https://try.access.worldpay.com")
	v.SetDefault("worldpay.timeout", 10*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.dsn", "swagshop.db")
	v.SetDefault("shop.widget_origin", "https://swagshop.railzway.dev")
	v.SetDefault("shop.demo_bundle", false)
	v.SetDefault("shop.cart_ttl", 24*time.Hour)
	v.SetDefault("shop.session_ttl", time.Hour)

	v.SetEnvPrefix("SWAGSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
