package shell

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Shell runs an fx application until the process is asked to stop.
type Shell struct {
	log     *zap.Logger
	options []fx.Option
}

func New(log *zap.Logger, options ...fx.Option) *Shell {
	return &Shell{
		log:     log,
		options: options,
	}
}

// Run starts the application, blocks until a shutdown signal is received
// and stops it again. The returned error is always an *ExitError.
func (s *Shell) Run(ctx context.Context, options ...fx.Option) error {
	// 0. after run ends, flush the logger
	defer s.log.Sync()

	// 1. create shell context
	shellCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 2. create execution context
	appCtx, cancelApp := context.WithCancel(ctx)
	defer cancelApp()

	// 3. create fx application with app context
	fxApp := s.createFxApp(appCtx, options...)

	// 4. abort if the dependency graph could not be built, this covers
	// configuration errors such as duplicate routes
	if err := fxApp.Err(); err != nil {
		s.log.Error("failed to initialize application", zap.Error(err))
		return NewExitError(1)
	}

	// 5. create start context w/ timeout
	startCtx, cancelStart := context.WithTimeout(shellCtx, fxApp.StartTimeout())
	defer cancelStart()

	// 6. start the application, exit on error
	if err := fxApp.Start(startCtx); err != nil {
		s.log.Error("failed to start application", zap.Error(err))
		return NewExitError(1)
	}

	// 7. wait for done signal by OS or for the parent context to end
	var exitCode int
	select {
	case sig := <-fxApp.Wait():
		exitCode = sig.ExitCode
	case <-ctx.Done():
	}

	// 8. create shutdown context
	stopCtx, cancelStop := context.WithTimeout(context.WithoutCancel(shellCtx), fxApp.StopTimeout())
	defer cancelStop()

	// 9. gracefully shutdown the app, exit on error
	if err := fxApp.Stop(stopCtx); err != nil {
		s.log.Error("failed to stop application", zap.Error(err))
		return NewExitError(1)
	}

	// 10. return with the exit code of the shutdown signal
	return NewExitError(exitCode)
}

// Inspect builds the application without starting it. It is used to
// resolve values from the graph, e.g. through fx.Populate.
func (s *Shell) Inspect(ctx context.Context, options ...fx.Option) error {
	fxApp := s.createFxApp(ctx, options...)

	if err := fxApp.Err(); err != nil {
		s.log.Error("failed to initialize application", zap.Error(err))
		return err
	}

	return nil
}

func (s *Shell) createFxApp(ctx context.Context, options ...fx.Option) *fx.App {
	// 1. create fx application
	return fx.New(
		// 2. inject global execution context
		fx.Supply(fx.Annotate(ctx, fx.As(new(context.Context)))),

		// 3. inject the logger
		fx.Supply(s.log),

		// 4. use the logger also for fx' logs
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: s.log.Named("fx")}
		}),

		// 5. provide user-provided options
		fx.Options(s.options...),

		// 6. provide user-provided run options
		fx.Options(options...),
	)
}
