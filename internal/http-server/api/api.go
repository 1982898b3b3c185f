package api

import (
	"BookingBridge/internal/config"
	"BookingBridge/internal/http-server/handlers/email"
	"BookingBridge/internal/http-server/handlers/errors"
	"BookingBridge/internal/http-server/middleware/logger"
	"BookingBridge/internal/http-server/middleware/timeout"
	"BookingBridge/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	email.Core
}

// New starts the email relay server and blocks until it stops.
func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  NewRouter(conf, log, handler),
		ErrorLog: httpLog,
	}

	serverAddress := net.JoinHostPort(conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return fmt.Errorf("listen %s: %w", serverAddress, err)
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}

func NewRouter(conf *config.Config, log *slog.Logger, handler Handler) http.Handler {
	router := chi.NewRouter()
	if conf.Listen.Timeout > 0 {
		router.Use(timeout.Timeout(conf.Listen.Timeout))
	}
	router.Use(middleware.RequestID)
	router.Use(logger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Post("/", email.Send(log, handler))
	router.Get("/", email.Status(log))

	return router
}
