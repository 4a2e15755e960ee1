package app

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"xtart-crm/internal/api"
	"xtart-crm/internal/config"
	"xtart-crm/internal/gui"
	"xtart-crm/internal/logger"
)

const (
	AppName    = "XTART CRM"
	AppID      = "com.xtart.crm"
	AppVersion = "1.0.0"

	WindowWidth  = 1180
	WindowHeight = 760
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	cfg        config.AppConfig
	log        logger.Logger
	client     *api.Client
	guiManager *gui.Manager
	handlers   *Handlers
	lifecycle  *Lifecycle
}

func NewApplication() (*Application, error) {
	cfg := config.Load()
	log := buildLogger(cfg)

	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version": AppVersion,
		"api_url": cfg.APIBaseURL,
	})

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	guiManager := gui.NewManager(window, client, log)
	lifecycle := NewLifecycle(guiManager, log)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		cfg:        cfg,
		log:        log,
		client:     client,
		guiManager: guiManager,
		lifecycle:  lifecycle,
	}

	application.setupHandlers()

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func buildLogger(cfg config.AppConfig) logger.Logger {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.JSONLogs {
		return logger.NewJSONLogger(level)
	}
	return logger.NewConsoleLogger(level)
}

func (a *Application) setupHandlers() {
	a.handlers = NewHandlers(a.client, a.guiManager, a.log)

	a.guiManager.SetLoginHandler(a.handlers.HandleLogin)
	a.guiManager.SetDashboardHandler(a.handlers.HandleDashboard)
	a.guiManager.SetLogoutHandler(a.handlers.HandleLogout)
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.log.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.guiManager.ShowLogin()
	a.window.Show()

	a.log.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	return nil
}
