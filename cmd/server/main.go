package main

import (
	"log"
	"net/http"

	_ "localehub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"localehub/internal/auth"
	"localehub/internal/cache"
	"localehub/internal/config"
	"localehub/internal/db"
	"localehub/internal/handler"
	"localehub/internal/model"
	"localehub/internal/repository"
	"localehub/internal/router"
	"localehub/internal/service"
)

// @title Translation Management API
// @version 1.0
// @description Token-authenticated service for managing keyed multi-locale translation strings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the opaque token from /login.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Translation{},
		&model.AuthToken{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	translationRepo := repository.NewTranslationRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)

	// Token issuance
	tokenStore := auth.NewTokenStore(cacheClient)
	issuer := auth.NewIssuer(tokenRepo, tokenStore, cfg.TokenTTL)

	// Services
	authService := service.NewAuthService(userRepo, issuer)
	translationService := service.NewTranslationService(translationRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	translationHandler := handler.NewTranslationHandler(translationService)

	router.Register(e, issuer, authHandler, translationHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
