package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type HttpServerParams struct {
	fx.In

	Context context.Context

	Config HttpConfig

	Handler http.Handler
	Logger  *zap.Logger
}

type HttpServer struct {
	address  string
	server   *http.Server
	listener net.Listener
	done     chan struct{}
	log      *zap.Logger
}

func NewHttpServer(params HttpServerParams) *HttpServer {
	handler := params.Handler
	if params.Config.H2c {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	readHeaderTimeout := params.Config.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = DefaultReadHeaderTimeout
	}

	server := &http.Server{
		Addr:              params.Config.Address(),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return params.Context
		},
	}

	return &HttpServer{
		address: params.Config.Address(),
		server:  server,
		log:     params.Logger,
	}
}

func NewLifecycleServer(params HttpServerParams, lc fx.Lifecycle) *HttpServer {
	server := NewHttpServer(params)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
	return server
}

// Start binds the listener and serves requests in the background. A
// failure to bind is returned, so the application does not start.
func (s *HttpServer) Start(ctx context.Context) error {
	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(ctx, "tcp", s.address)
	if err != nil {
		s.log.With(zap.Error(err)).Error("failed to listen")
		return err
	}

	s.listener = listener
	s.done = make(chan struct{})

	s.log.With(zap.String("address", listener.Addr().String())).Info("listening")

	go s.serve(listener)

	return nil
}

func (s *HttpServer) serve(listener net.Listener) {
	defer close(s.done)

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.With(zap.Error(err)).Error("failed to serve")
	}
}

// Addr returns the address the server listens on, once started.
func (s *HttpServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.log.With(zap.Error(err)).Error("failed to shutdown")
		return err
	}

	if s.done != nil {
		<-s.done
	}

	return nil
}
