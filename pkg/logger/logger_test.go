package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/prodflux/prodflux-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		// Vacío y valores desconocidos caen a info.
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, logger.ParseLevel(c.in), "nivel %q", c.in)
	}
}

func TestNew_AplicaElNivelConfigurado(t *testing.T) {
	log := logger.New(logger.Config{Env: "test", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, log.Zerolog().GetLevel())

	log = logger.New(logger.Config{Env: "test", Level: "cualquiercosa"})
	assert.Equal(t, zerolog.InfoLevel, log.Zerolog().GetLevel())
}
