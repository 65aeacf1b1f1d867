package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvDevelopment = "development"

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Fundhive"`
		Env  string `envconfig:"APP_ENV" default:"production"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"fundhive"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
		WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"20s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Payment struct {
		Currency string        `envconfig:"PAYMENT_CURRENCY" default:"ngn"`
		Timeout  time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"15s"`
	}

	Stripe struct {
		SecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
		WebhookSecret string `envconfig:"STRIPE_DONATION_WEBHOOK_KEY"`
		APIURL        string `envconfig:"STRIPE_API_URL"`
		SuccessURL    string `envconfig:"STRIPE_SUCCESS_URL" default:"http://localhost:4242/success"`
		CancelURL     string `envconfig:"STRIPE_CANCEL_URL" default:"http://localhost:4242/cancel"`
	}

	Paystack struct {
		SecretKey   string `envconfig:"PAYSTACK_SECRET_KEY"`
		BaseURL     string `envconfig:"PAYSTACK_BASE_URL" default:"https://api.paystack.co"`
		CallbackURL string `envconfig:"PAYSTACK_CALLBACK_URL"`
		CancelURL   string `envconfig:"PAYSTACK_CANCEL_URL"`
	}

	Sweeper struct {
		Schedule string `envconfig:"SWEEPER_SCHEDULE" default:"0 0 * * *"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// IsDevelopment reports whether error responses may include internal detail.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, EnvDevelopment)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
