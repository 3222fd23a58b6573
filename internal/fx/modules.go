package fx

import (
	"infinitode"
	"infinitode/internal/config"
	"infinitode/internal/logger"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideSession opens the API session with the configured log level applied.
func ProvideSession(cfg *config.Config, log zerolog.Logger) *infinitode.Session {
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = logger.SetLevel(level)
	}
	return infinitode.NewSession(infinitode.WithLogger(log))
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// api session
	fx.Provide(ProvideSession),
)
