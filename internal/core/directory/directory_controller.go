package directory

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
	"gorm.io/gorm"
)

type userRepository interface {
	All() ([]models.User, error)
	Read(id uuid.UUID) (models.User, error)
}

type Controller struct {
	service        *Service
	userRepository userRepository
}

func NewHTTPController(service *Service, userRepository userRepository) *Controller {
	return &Controller{
		service:        service,
		userRepository: userRepository,
	}
}

func (c *Controller) ListUsers(ctx shared.Context) error {
	users, err := c.userRepository.All()
	if err != nil {
		return echo.NewHTTPError(500, "could not list users").WithInternal(err)
	}
	return ctx.JSON(200, users)
}

func (c *Controller) ReadUser(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "userID")
	if err != nil {
		return err
	}

	user, err := c.userRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "user not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read user").WithInternal(err)
	}

	return ctx.JSON(200, user)
}

// Suggestions handles GET /users/suggestions?q=&limit=. A missing or
// unparsable limit falls back to the default; clamping happens in the
// service.
func (c *Controller) Suggestions(ctx shared.Context) error {
	term := ctx.QueryParam("q")

	limit := defaultLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	results := c.service.SearchUsers(term, limit)
	return ctx.JSON(200, map[string]any{"results": results})
}
