package appcontext

import (
	"io"
	"os"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger 依 ENV 與 LOG_LEVEL 建立 process logger, 同時設為 zerolog 全域 logger
func NewLogger(env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if env == string(constants.Debug) || env == string(constants.Dev) {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "bookstore").Logger()
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger
}
