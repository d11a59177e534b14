package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"itapp/internal/config"
	"itapp/internal/database"
	"itapp/internal/database/migration"
	dbpostgres "itapp/internal/database/postgres"
	"itapp/internal/infrastructure/cache"
	"itapp/internal/infrastructure/mail"
	"itapp/internal/infrastructure/storage"
	"itapp/internal/pkg/jwt"
	"itapp/internal/repository"
	ucapp "itapp/internal/usecase/application"
	ucauth "itapp/internal/usecase/auth"
	ucjob "itapp/internal/usecase/job"
	ucnotification "itapp/internal/usecase/notification"
	"itapp/internal/usecase/profile"
	ucreport "itapp/internal/usecase/report"
	"itapp/internal/ws"

	"github.com/rs/zerolog"
)

// Container owns every long lived dependency of the server.
type Container struct {
	Config config.Config
	Logger zerolog.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Auth          *ucauth.Service
	Jobs          *ucjob.Service
	Workflow      *ucapp.Service
	Reports       *ucreport.Service
	Notifications *ucnotification.Service
	Profiles      *profile.Service

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config, logger zerolog.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{}).Run(db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info().Msg("database migrations applied")

	c := &Container{Config: cfg, Logger: logger, DB: db}
	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger)

	users := repository.NewPostgresUserRepository(db)
	students := repository.NewPostgresStudentRepository(db)
	companies := repository.NewPostgresCompanyRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	notifications := repository.NewPostgresNotificationRepository(db)
	reports := repository.NewPostgresReportRepository(db)
	store := repository.NewPostgresApplicationStore(db)

	mailer := mail.NewMailer(cfg.Mailer, cfg.App.AppName, nil)
	if !mailer.Enabled() {
		logger.Warn().Msg("mailer host not configured, emails are disabled")
	}

	tokens := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.App.AppName)

	hubCtx, stopHub := context.WithCancel(context.Background())
	c.Hub = ws.NewHub(logger)
	c.stopHub = stopHub
	go c.Hub.Run(hubCtx)

	c.Auth = ucauth.NewService(users, students, companies, tokens, mailer, logger)
	c.Jobs = ucjob.NewService(jobs, c.Cache, logger)
	c.Workflow = ucapp.NewService(store, students, c.Jobs, ws.NewNotifier(c.Hub), mailer, logger)
	c.Reports = ucreport.NewService(reports, companies, students, logger)
	c.Notifications = ucnotification.NewService(notifications)
	c.Profiles = profile.NewService(companies, students, newUploader(cfg.Media, logger), cfg.App.UploadMaxBytes, cfg.Media.UploadTimeout, logger)

	if strings.TrimSpace(cfg.Admin.Email) != "" {
		created, err := c.Auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("ensure admin: %w", err)
		}
		if created {
			logger.Info().Str("email", cfg.Admin.Email).Msg("admin account created")
		}
	}

	return c, nil
}

// newUploader returns a nil interface when no media host is configured so
// profile uploads fail cleanly instead of dereferencing a nil client.
func newUploader(cfg config.MediaConfig, logger zerolog.Logger) profile.Uploader {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		logger.Warn().Msg("media endpoint not configured, file uploads are disabled")
		return nil
	}
	m, err := storage.NewMinIO(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("media storage unavailable, file uploads are disabled")
		return nil
	}
	return m
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn().Err(err).Msg("close cache")
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
