package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	API           *API
	Session       *Session
	Notifications *Notifications
	Stub          *Stub
	App           *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type API struct {
	BaseURL string        `env:"STOREHUB_API_URL"`
	Timeout time.Duration `env:"STOREHUB_HTTP_TIMEOUT"`
}

type Session struct {
	FilePath string `env:"STOREHUB_SESSION_FILE"`
}

type Notifications struct {
	PollInterval time.Duration `env:"STOREHUB_POLL_INTERVAL"`
}

// Stub configures the local development backend.
type Stub struct {
	HostString string `env:"STOREHUB_STUB_ADDRESS"`
	Secret     string `env:"STOREHUB_STUB_SECRET"`
}

func NewConfig() (*Config, error) {
	var api API
	var session Session
	var notifications Notifications
	var stub Stub
	var app App

	flag.StringVar(&api.BaseURL, "a", `http://localhost:8080`, "StoreHub API base URL")
	flag.DurationVar(&api.Timeout, "t", 15*time.Second, "HTTP request timeout")
	flag.StringVar(&session.FilePath, "f", "", "Session file path")
	flag.DurationVar(&notifications.PollInterval, "p", 30*time.Second, "Notification poll interval")
	flag.StringVar(&stub.HostString, "s", `localhost:8080`, "Stub server endpoint")
	flag.StringVar(&stub.Secret, "k", `stub-secret`, "Stub server signing secret")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&api)
	if err != nil {
		return nil, fmt.Errorf("error parsing env api config: %w", err)
	}
	err = env.Parse(&session)
	if err != nil {
		return nil, fmt.Errorf("error parsing session config: %w", err)
	}
	err = env.Parse(&notifications)
	if err != nil {
		return nil, fmt.Errorf("error parsing notifications config: %w", err)
	}
	err = env.Parse(&stub)
	if err != nil {
		return nil, fmt.Errorf("error parsing stub config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		API:           &api,
		Session:       &session,
		Notifications: &notifications,
		Stub:          &stub,
		App:           &app,
	}

	return &config, nil
}
