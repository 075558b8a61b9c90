package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"localehub/internal/auth"
	"localehub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	issuer auth.IssuerInterface,
	authHandler *handler.AuthHandler,
	translationHandler *handler.TranslationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Secured routes (require a valid bearer token)
	secured := api.Group("", auth.RequireToken(issuer))

	secured.POST("/logout", authHandler.Logout)
	secured.GET("/translations", translationHandler.List)
	secured.POST("/translations", translationHandler.Create)
	secured.PUT("/translations/:id", translationHandler.Update)
	secured.GET("/translations/export", translationHandler.Export)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator. Field names in error payloads
// come from json tags.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
