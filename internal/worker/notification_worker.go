package worker

import (
	"go.uber.org/zap"
)

// Registrar subscribes event handlers on a dispatcher.
type Registrar interface {
	RegisterHandlers()
}

// StartNotificationWorker registers notification handlers. It reports whether
// anything was registered.
func StartNotificationWorker(notifier Registrar, logger *zap.Logger) bool {
	if notifier == nil {
		return false
	}
	notifier.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker started")
	}
	return true
}
