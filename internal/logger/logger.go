package logger

import (
    "io"
    "os"
    "time"

    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
    "github.com/tiohsa/redmain-dashboard/internal/config"
    "gopkg.in/natefinch/lumberjack.v2"
)

func New(cfg config.Config) zerolog.Logger {
    var out io.Writer = os.Stdout
    if cfg.AppEnv == "dev" {
        out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
    } else {
        zerolog.TimeFieldFormat = time.RFC3339
    }
    if cfg.LogFile != "" {
        rotating := &lumberjack.Logger{Filename: cfg.LogFile, MaxSize: 50, MaxBackups: 5, MaxAge: 28}
        out = io.MultiWriter(out, rotating)
    }
    logger := zerolog.New(out).With().Timestamp().Logger()
    log.Logger = logger
    return logger
}
