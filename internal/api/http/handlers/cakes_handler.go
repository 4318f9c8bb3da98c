package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/cake-service/internal/api/dto"
	"github.com/spec-kit/cake-service/internal/auth"
	"github.com/spec-kit/cake-service/internal/domain"
	apperrors "github.com/spec-kit/cake-service/pkg/util"
)

// CakePublisher creates cakes.
type CakePublisher interface {
	Publish(ctx context.Context, input domain.PublishCake) (*domain.Cake, error)
}

// CakesHandler exposes cake endpoints.
type CakesHandler struct {
	cakes  CakePublisher
	logger *zap.Logger
}

// NewCakesHandler constructs handler.
func NewCakesHandler(cakes CakePublisher, logger *zap.Logger) *CakesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CakesHandler{cakes: cakes, logger: logger}
}

// Publish handles POST /cakes.
func (h *CakesHandler) Publish(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PublishCakeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	h.logger.Info("publishing cake", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	cake, err := h.cakes.Publish(c.UserContext(), domain.PublishCake{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": toCakeResponse(cake),
	})
}

func toCakeResponse(cake *domain.Cake) dto.CakeResponse {
	return dto.CakeResponse{
		ID:          cake.ID,
		Name:        cake.Name,
		Description: cake.Description,
		Brand:       cake.Brand,
		Price:       cake.Price,
		CreatedAt:   cake.CreatedAt,
	}
}
