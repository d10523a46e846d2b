package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_DSN,required=true"`
	RedisURL    string `env:"REDIS_URL,required=true"`
	APIPort     int    `env:"API_PORT,default=8080"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	WhatsAppProvider      string `env:"WHATSAPP_PROVIDER,default=personal"`
	WhatsAppAPIURL        string `env:"WHATSAPP_API_URL"`
	WhatsAppAccessToken   string `env:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppPhoneNumberID string `env:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppVerifyToken   string `env:"WHATSAPP_VERIFY_TOKEN"`

	PersonalWhatsAppAPIURL string `env:"PERSONAL_WHATSAPP_API_URL"`
	PersonalWhatsAppAPIKey string `env:"PERSONAL_WHATSAPP_API_KEY"`

	SendTimeoutSec  int `env:"WHATSAPP_SEND_TIMEOUT_SEC,default=30"`
	WaitTimeSec     int `env:"WHATSAPP_WAIT_TIME_SEC,default=5"`
	RateLimitPerSec int `env:"WHATSAPP_RATE_LIMIT_PER_SEC,default=10"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
