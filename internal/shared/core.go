package shared

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database"
	"gorm.io/gorm"
)

type Server = *echo.Group
type MiddlewareFunc = echo.MiddlewareFunc
type Context = echo.Context
type DB = *gorm.DB

func Ptr[T any](t T) *T {
	return &t
}

func DatabaseFactory() (DB, error) {
	return database.NewConnection(os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"), os.Getenv("POSTGRES_DB"), os.Getenv("POSTGRES_PORT"))
}

// InitLogger initializes the global slog logger with a tint handler.
// tint adds colors to the log output, which makes local development
// logs easier to read.
func InitLogger() {
	w := os.Stderr

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		}),
	))
}

func LoadConfig() error {
	return godotenv.Load()
}

// V reports field names by their json tag so validation errors line up
// with the request payload.
var V = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError renders a validator failure as a 400 with one message
// per offending field.
func ValidationError(err error) *echo.HTTPError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	fields := echo.Map{}
	for _, fieldError := range validationErrors {
		if fieldError.Param() != "" {
			fields[fieldError.Field()] = fmt.Sprintf("failed on the %s=%s rule", fieldError.Tag(), fieldError.Param())
			continue
		}
		fields[fieldError.Field()] = fmt.Sprintf("failed on the %s rule", fieldError.Tag())
	}

	return echo.NewHTTPError(400, echo.Map{
		"message": "validation failed",
		"fields":  fields,
	}).WithInternal(err)
}
