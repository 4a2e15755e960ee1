package app

import (
	"xtart-crm/internal/gui"
	"xtart-crm/internal/logger"
)

type Lifecycle struct {
	guiManager *gui.Manager
	log        logger.Logger
	isShutdown bool
}

func NewLifecycle(gm *gui.Manager, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		guiManager: gm,
		log:        log,
		isShutdown: false,
	}
}

func (l *Lifecycle) Shutdown() {
	if l.isShutdown {
		return
	}

	l.isShutdown = true
	l.log.Info("Lifecycle", "shutdown sequence completed", nil)
}
