package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"

	"github.com/Redestrov/CyberMaker-site/internal/boot"
	"github.com/Redestrov/CyberMaker-site/internal/handlers"
	"github.com/Redestrov/CyberMaker-site/internal/mail"
	"github.com/Redestrov/CyberMaker-site/internal/media"
	"github.com/Redestrov/CyberMaker-site/internal/service/account"
	"github.com/Redestrov/CyberMaker-site/internal/service/challenge"
	"github.com/Redestrov/CyberMaker-site/internal/service/community"
	"github.com/Redestrov/CyberMaker-site/internal/service/contact"
	"github.com/Redestrov/CyberMaker-site/internal/service/idea"
	"github.com/Redestrov/CyberMaker-site/internal/service/journal"
	"github.com/Redestrov/CyberMaker-site/internal/service/profile"
	"github.com/Redestrov/CyberMaker-site/internal/service/ranking"
	"github.com/Redestrov/CyberMaker-site/internal/store"
	"github.com/Redestrov/CyberMaker-site/pkg/session"
)

type app struct {
	store     *store.Store
	templates *mail.Templates
	services  *handlers.Services
}

func (a *app) Close() {
	a.templates.Close()
	if err := a.store.Close(); err != nil {
		log.Errorf("closing store: %v", err)
	}
}

func newApp(ctx context.Context, config *boot.Config) *app {
	db, err := store.Open(ctx, store.Config{
		Driver:          config.Database.Driver,
		URL:             config.Database.URL,
		MaxOpenConns:    config.Database.MaxOpenConns,
		MaxIdleConns:    config.Database.MaxIdleConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("opening store: %+v", err)
	}

	images, err := media.New(config)
	if err != nil {
		log.Fatalf("creating media store: %+v", err)
	}

	templates, err := mail.NewTemplates(config.SMTP.TemplateDir)
	if err != nil {
		log.Fatalf("loading mail templates: %+v", err)
	}
	if config.IsDevelopment() {
		if err := templates.Watch(); err != nil {
			log.Warnf("mail templates will not reload: %v", err)
		}
	}
	transport := mail.NewTransport(mail.Config{
		Host:     config.SMTP.Host,
		Port:     config.SMTP.Port,
		User:     config.SMTP.User,
		Password: config.SMTP.Password,
		From:     config.SMTP.From,
		FromName: config.SMTP.FromName,
		UseTLS:   config.SMTP.UseTLS,
	})

	signer, ephemeral, err := session.FromEncodedKey(config.Session.SigningKey, config.Session.TTL)
	if err != nil {
		log.Fatalf("creating session signer: %+v", err)
	}
	if ephemeral {
		log.Warnf("SESSION_SIGNING_KEY not set, sessions will not survive a restart (key %s)", signer.KeyID())
	}

	accountService, err := account.New(db, images, templates, transport, signer, account.Options{
		BaseURL:        config.BaseURL,
		PasswordPolicy: config.Points.PasswordPolicy,
	})
	if err != nil {
		log.Fatalf("creating account service: %+v", err)
	}

	return &app{
		store:     db,
		templates: templates,
		services: &handlers.Services{
			Account: accountService,
			Challenge: challenge.New(db, challenge.Options{
				Award:      config.Points.SubmissionAward,
				Duplicates: config.Points.DuplicateSubmissions,
			}),
			Ranking:     ranking.New(db),
			Journal:     journal.New(db),
			Idea:        idea.New(db, images, config.Points.ConclusionAward),
			Community:   community.New(db, images, config.Points.CommunityPostAward),
			Contact:     contact.New(db, templates, transport),
			Profile:     profile.New(db),
			Sessions:    signer,
			AdminKey:    config.AdminKey,
			FrontendURL: config.FrontendURL,
		},
	}
}

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	app := newApp(context.Background(), config)
	defer app.Close()

	server := echo.New()
	server.HideBanner = true
	server.Use(middleware.BodyLimit(config.Server.BodyLimit))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("cybermaker"))
	server.Use(middleware.Recover())
	server.Use(handlers.RequestTimeout(config.Server.RequestTimeout))

	server.Logger.SetLevel(log.INFO)
	log.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, handlers.HeaderAdminKey}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: config.AllowedOrigins(),
		AllowHeaders: headers,
	}))

	handlers.Mount(server, app.services)

	server.Static("/uploads", config.UploadDir)
	server.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  config.StaticDir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/uploads/")
		},
	}))

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.GET("/metrics", echoprometheus.NewHandler())
	go func() {
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("shutting down server: %v", err)
	}
	if err := metrics.Shutdown(ctx); err != nil {
		log.Errorf("shutting down metrics: %v", err)
	}
}
