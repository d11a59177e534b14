package app

import (
	"fmt"
	"strings"

	"itapp/internal/config"
	"itapp/internal/delivery/http/handler"
	"itapp/internal/delivery/http/middleware"
	"itapp/internal/delivery/http/routes"
	"itapp/internal/pkg/logger"
	"itapp/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

const (
	defaultBodyLimit = 4 * 1024 * 1024
	// formSlack leaves room for the text fields sent next to uploaded files.
	formSlack = 1024 * 1024
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	errMw := middleware.NewErrorMiddleware(c.Logger)

	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		BodyLimit:    bodyLimit(c.Config.App.UploadMaxBytes),
		ErrorHandler: errMw.Handler,
	})

	registerGlobalMiddleware(f, c, errMw)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// releases the database, the cache and the websocket hub.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container, errMw *middleware.ErrorMiddleware) {
	if app == nil {
		return
	}

	corsCfg := cors.Config{
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType, middleware.HeaderRequestID},
	}
	if len(c.Config.App.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = c.Config.App.CORSAllowOrigins
	}
	app.Use(cors.New(corsCfg))
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	reg := &routes.Registry{
		Health:         handler.NewHealthHandler(c.DB, c.Cache),
		Auth:           handler.NewAuthHandler(c.Auth),
		Company:        handler.NewCompanyHandler(c.Auth, c.Profiles, c.Jobs, c.Workflow, c.Reports),
		Student:        handler.NewStudentHandler(c.Auth, c.Profiles, c.Jobs, c.Workflow, c.Reports),
		Notification:   handler.NewNotificationHandler(c.Notifications),
		NotificationWS: ws.NewHandler(c.Hub, c.Auth, c.Logger).HandleNotificationsWS,
		AuthMiddleware: middleware.NewAuthMiddleware(c.Auth),
	}
	reg.Register(app)
}

func bodyLimit(uploadMax int64) int {
	if uploadMax <= 0 {
		return defaultBodyLimit
	}
	return int(uploadMax) + formSlack
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
