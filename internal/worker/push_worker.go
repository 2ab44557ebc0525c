package worker

import (
	"github.com/spec-kit/fieldsafe-service/internal/service"
)

// StartPushWorker registers push delivery handlers.
func StartPushWorker(pushService *service.PushService) {
	if pushService == nil {
		return
	}
	pushService.RegisterHandlers()
}
