package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Taro3/linux-mp4-test/internal/config"
	"github.com/Taro3/linux-mp4-test/internal/console"
	"github.com/Taro3/linux-mp4-test/internal/display"
	"github.com/Taro3/linux-mp4-test/internal/domain"
	"github.com/Taro3/linux-mp4-test/internal/engine"
	"github.com/Taro3/linux-mp4-test/internal/inhibit"
	"github.com/Taro3/linux-mp4-test/internal/media"
	"github.com/Taro3/linux-mp4-test/internal/mpv"
	"github.com/Taro3/linux-mp4-test/internal/recovery"
	"github.com/Taro3/linux-mp4-test/internal/uiloop"
	"github.com/Taro3/linux-mp4-test/internal/window"
	"github.com/chzyer/readline"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the complete application graph
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		newLogger,
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),
		uiloop.New,
		newDispatcher,
		newScheduler,
		mpv.NewFactory,
		newSinkFactory,
		newResolver,
		newContainer,
		inhibit.New,
		console.NewReadline,
		newPanel,
		recovery.NewManager,
		window.New,
		newConsole,
		newEngine,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for an interrupt signal or the console quitting
	select {
	case <-ctx.Done():
	case <-app.Wait():
	}

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a production logger, or a development logger when
// MP4PLAYER_DEBUG is set
func newLogger() (*zap.Logger, error) {
	if config.DebugEnabled() {
		return zap.NewDevelopment()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newDispatcher(l *uiloop.Loop) domain.Dispatcher { return l }

func newScheduler(l *uiloop.Loop) domain.Scheduler { return l }

func newSinkFactory(f *mpv.Factory) domain.SinkFactory { return f }

func newResolver(logger *zap.Logger) recovery.MediaResolver {
	return media.NewResolver(logger)
}

func newContainer(logger *zap.Logger, cfg domain.Config) domain.Container {
	return display.NewWindow(logger, cfg)
}

func newPanel(logger *zap.Logger, rl *readline.Instance) domain.Panel {
	return console.NewPanel(logger, rl.Stdout())
}

func newConsole(logger *zap.Logger, rl *readline.Instance, loop *uiloop.Loop, c *window.Controller) *console.Console {
	return console.New(logger, rl, loop, c)
}

func newEngine(logger *zap.Logger, loop *uiloop.Loop, c *window.Controller, con *console.Console) *engine.Engine {
	return engine.NewEngine(logger, loop, c, con)
}

// registerHooks sets up application lifecycle hooks
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	factory *mpv.Factory,
	e *engine.Engine,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("MP4 Player Started")
			// a missing mpv leaves the player degraded, not failed
			_ = factory.Check(ctx)
			if err := e.Start(ctx); err != nil {
				return err
			}
			go func() {
				<-e.Done()
				if err := shutdowner.Shutdown(); err != nil {
					logger.Warn("Shutdown request failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			return e.Stop(ctx)
		},
	})
}
