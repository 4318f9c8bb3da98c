package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/cake-service/internal/observability"
	apperrors "github.com/spec-kit/cake-service/pkg/util"
)

// RegisterMiddlewares attaches, outermost first: request timeout, request
// logging and the error envelope.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders any returned error or recovered panic as
// {"error":{"code","message","details"}} and swallows it.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			domainErr := apperrors.ToDomainError(err)
			metrics.RecordError(observability.RouteKey(c), c.Method(), domainErr.Code)
			logRejection(logger, c, domainErr)
			err = writeError(c, domainErr)
		}()
		return c.Next()
	}
}

func logRejection(logger *zap.Logger, c *fiber.Ctx, domainErr *apperrors.DomainError) {
	switch {
	case domainErr.HTTPStatus >= fiber.StatusInternalServerError:
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
	case domainErr.HTTPStatus == fiber.StatusUnauthorized:
		logger.Debug("request rejected", zap.String("path", c.Path()), zap.String("reason", domainErr.Message))
	}
}

func writeError(c *fiber.Ctx, domainErr *apperrors.DomainError) error {
	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	_ = c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
	return nil
}
