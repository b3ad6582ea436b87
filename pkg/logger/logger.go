package logger

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	SentryUrl string
}

type Impl struct {
	slog *slog.Logger
}

var _ Logger = (*Impl)(nil)

// New builds the application logger: pretty zerolog console output in
// development, JSON in other environments, with an optional Sentry fan-out
// for warnings and above.
func New(opts Opts) *Impl {
	var zl zerolog.Logger
	if opts.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	} else {
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	level := slog.LevelInfo
	if opts.Env == "development" {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryUrl != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryUrl,
			Environment: opts.Env,
		}); err != nil {
			zl.Warn().Err(err).Msg("sentry init failed, continuing without it")
		} else {
			handlers = append(handlers,
				slogsentry.Option{Level: slog.LevelWarn}.NewSentryHandler(),
			)
		}
	}

	return &Impl{slog: slog.New(slogmulti.Fanout(handlers...))}
}

func (l *Impl) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{slog: l.slog.With("component", name)}
}

// Printf satisfies fx.Printer so the fx lifecycle can log through us.
func (l *Impl) Printf(format string, args ...interface{}) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}
