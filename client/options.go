package client

// Функциональные опции конструктора клиента собраны в отдельном файле,
// чтобы все доступные настройки были видны в одном месте.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Option настраивает Client во время конструирования в New.
type Option func(*Client) error

// envOptions — настройки клиента, читаемые из переменных окружения
// с префиксом ITINERARY.
type envOptions struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Token       string        `envconfig:"TOKEN"`
}

// WithHTTPTimeout задает таймаут базового http.Client.
// Значение должно быть больше нуля.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient подменяет базовый http.Client целиком.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithToken задает сессионный токен, полученный заранее.
// Без него клиент работает только с открытыми конечными точками,
// пока Register или Login не откроют сессию.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token = token
		return nil
	}
}

// loadEnvOptions читает настройки клиента из окружения.
func loadEnvOptions() (envOptions, error) {
	var opts envOptions
	if err := envconfig.Process("itinerary", &opts); err != nil {
		return opts, err
	}
	return opts, nil
}
