package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mokhtarjo21/storehub-client/internal/adapter/config"
	"github.com/mokhtarjo21/storehub-client/internal/adapter/logger"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name string
		conf config.App
		ok   bool
	}{
		{name: "Develop mode", conf: config.App{LogLevel: "debug", Mode: config.AppModeDevelop}, ok: true},
		{name: "Production mode", conf: config.App{LogLevel: "error", Mode: config.AppModeProduction}, ok: true},
		{name: "Bad level", conf: config.App{LogLevel: "loud", Mode: config.AppModeDevelop}, ok: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			log := logger.NewLogger(&test.conf)
			if test.ok {
				assert.NotNil(t, log)
				log.Debug("smoke line")
			} else {
				assert.Nil(t, log)
			}
		})
	}
}
