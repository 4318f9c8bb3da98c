package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/cake-service/internal/domain"
	"github.com/spec-kit/cake-service/internal/events"
	"github.com/spec-kit/cake-service/internal/repository"
	apperrors "github.com/spec-kit/cake-service/pkg/util"
)

// CakeService publishes cakes.
type CakeService struct {
	cakes      repository.CakeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCakeService builds the service. dispatcher may be nil.
func NewCakeService(cakes repository.CakeRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CakeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CakeService{cakes: cakes, dispatcher: dispatcher, logger: logger}
}

// Publish persists a new cake and announces it.
func (s *CakeService) Publish(ctx context.Context, input domain.PublishCake) (*domain.Cake, error) {
	cake := &domain.Cake{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Brand:       input.Brand,
		Price:       input.Price,
	}
	if err := s.cakes.Create(ctx, cake); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.emit(ctx, cake)
	return cake, nil
}

func (s *CakeService) emit(ctx context.Context, cake *domain.Cake) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCakePublished,
		SubjectID: cake.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.CakePublishedPayload{
			Name:  cake.Name,
			Brand: cake.Brand,
			Price: cake.Price,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("cake_published dispatch failed", zap.String("cake_id", cake.ID), zap.Error(err))
	}
}
