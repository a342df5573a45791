package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New crea el logger de la aplicación. En desarrollo usa salida de consola
// legible; en producción JSON plano a stdout.
func New(environment, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if environment == "production" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	return logger.Level(lvl).With().
		Timestamp().
		Str("app", "petlink-api").
		Logger()
}
