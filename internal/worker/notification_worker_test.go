package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/cake-service/internal/service"
)

type registrarStub struct{ calls int }

func (r *registrarStub) RegisterHandlers() { r.calls++ }

func TestStartNotificationWorker(t *testing.T) {
	r := &registrarStub{}

	assert.True(t, StartNotificationWorker(r, zap.NewNop()))
	assert.Equal(t, 1, r.calls)
	assert.False(t, StartNotificationWorker(nil, nil))
}

func TestStartNotificationWorker_TypedNilService(t *testing.T) {
	var notifier *service.NotificationService

	assert.NotPanics(t, func() {
		StartNotificationWorker(notifier, zap.NewNop())
	})
}
