// Package server initializes and runs the main application server.
// It wires the record store, the object store presigner and the entity
// services, and starts the HTTP server with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/taskboard-dev/taskboard/internal/logging"
	"github.com/taskboard-dev/taskboard/internal/server/auth"
	"github.com/taskboard-dev/taskboard/internal/server/config"
	"github.com/taskboard-dev/taskboard/internal/server/httpapi"
	"github.com/taskboard-dev/taskboard/internal/server/objectstore"
	"github.com/taskboard-dev/taskboard/internal/server/services"
	"github.com/taskboard-dev/taskboard/internal/server/store"

	"github.com/gofiber/fiber/v2"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService *services.AuthService
	userService *services.UserService
	taskService *services.TaskService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	gw, err := store.NewDynamoGateway(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	hasher := auth.NewHasher(c.PasswordHashScheme)
	presigner := objectstore.NewPresigner(c)

	as := services.NewAuthService(gw, hasher, logger, c)
	us := services.NewUserService(gw, hasher, presigner, logger)
	ts := services.NewTaskService(gw, logger)

	return &App{config: c, logger: logger, authService: as, userService: us, taskService: ts}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) router() *fiber.App {
	return httpapi.NewRouter(
		httpapi.NewAuthHandler(app.authService, app.logger),
		httpapi.NewUserHandler(app.userService, app.logger),
		httpapi.NewTaskHandler(app.taskService, app.logger),
		[]byte(app.config.SecretKey),
		app.logger,
	)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := app.router()

	go func() {
		<-ctx.Done()
		if err := router.Shutdown(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}()

	app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)

	if err := router.Listen(app.config.EndpointAddrHTTP); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
