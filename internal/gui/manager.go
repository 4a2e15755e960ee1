package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"xtart-crm/internal/api"
	"xtart-crm/internal/gui/components"
	"xtart-crm/internal/gui/views"
	"xtart-crm/internal/logger"
	"xtart-crm/internal/models"
	"xtart-crm/internal/session"
)

// Manager owns the single application window and swaps screens inside it:
// the login view before authentication, then the navigation shell with one
// active view at a time. Methods that may be called from background
// goroutines marshal onto the UI thread with fyne.Do.
type Manager struct {
	window fyne.Window
	client *api.Client
	log    logger.Logger

	statusBar *components.StatusBar
	content   *fyne.Container
	loginView *views.LoginView
	dashboard *views.DashboardView
	sess      *session.Session

	loginHandler     func(username, password string)
	dashboardHandler func()
	logoutHandler    func()
}

func NewManager(window fyne.Window, client *api.Client, log logger.Logger) *Manager {
	m := &Manager{
		window:    window,
		client:    client,
		log:       log,
		statusBar: components.NewStatusBar(),
		content:   container.NewStack(),
	}

	m.loginView = views.NewLoginView(func(username, password string) {
		if m.loginHandler != nil {
			m.loginView.SetBusy(true)
			m.loginHandler(username, password)
		}
	})

	log.Info("GUIManager", "initialized", nil)
	return m
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) SetLoginHandler(handler func(username, password string)) {
	m.loginHandler = handler
}

// SetDashboardHandler registers the callback run when the dashboard entry
// is selected. The handler gathers data in the background and delivers the
// finished view through ShowDashboard.
func (m *Manager) SetDashboardHandler(handler func()) {
	m.dashboardHandler = handler
}

func (m *Manager) SetLogoutHandler(handler func()) {
	m.logoutHandler = handler
}

// ShowLogin replaces the window content with the credentials form. Safe to
// call from any goroutine.
func (m *Manager) ShowLogin() {
	fyne.Do(func() {
		m.sess = nil
		m.dashboard = nil
		m.loginView.Reset()
		m.window.SetContent(m.loginView.GetContainer())
	})
}

// LoginFailed surfaces a failed authentication attempt on the login form.
func (m *Manager) LoginFailed(message string) {
	fyne.Do(func() {
		m.loginView.SetBusy(false)
		m.loginView.SetError(message)
	})
}

// ShowMain builds the navigation shell for the authenticated session. The
// agent and section entries only appear for administrators.
func (m *Manager) ShowMain(sess *session.Session) {
	fyne.Do(func() {
		m.sess = sess
		m.statusBar.SetIdentity(sess.ShortName(), string(sess.Role))

		nav := container.NewVBox(
			widget.NewLabelWithStyle("XTART CRM", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			widget.NewSeparator(),
			widget.NewButton("Dashboard", m.openDashboard),
			widget.NewButton("Clientes", func() {
				m.setContent(views.NewCustomersView(m.client, m.window, m.log).GetContainer())
			}),
			widget.NewButton("Facturas", func() {
				m.setContent(views.NewInvoicesView(m.client, m.window, m.log).GetContainer())
			}),
			widget.NewButton("Productos", func() {
				m.setContent(views.NewProductsView(m.client, m.window, m.log).GetContainer())
			}),
		)

		if sess.IsAdmin() {
			nav.Add(widget.NewButton("Comerciales", func() {
				m.setContent(views.NewAgentsView(m.client, m.window, m.log).GetContainer())
			}))
			nav.Add(widget.NewButton("Secciones", func() {
				m.setContent(views.NewSectionsView(m.client, m.window, m.log).GetContainer())
			}))
		}

		nav.Add(widget.NewSeparator())
		logout := widget.NewButton("Cerrar Sesión", func() {
			if m.logoutHandler != nil {
				m.logoutHandler()
			}
		})
		logout.Importance = widget.DangerImportance
		nav.Add(logout)

		header := widget.NewLabel("Bienvenido, " + sess.ShortName())
		shell := container.NewBorder(
			header,
			m.statusBar.GetContainer(),
			container.NewVBox(nav),
			nil,
			m.content,
		)
		m.window.SetContent(shell)

		m.log.Info("GUIManager", "main screen shown", map[string]interface{}{
			"role": sess.Role,
		})

		m.openDashboard()
	})
}

func (m *Manager) openDashboard() {
	if m.dashboardHandler != nil {
		m.setContent(container.NewCenter(widget.NewLabel("Cargando estadísticas...")))
		m.dashboardHandler()
	}
}

// ShowDashboard installs a freshly built dashboard view, typically from a
// background data-gathering goroutine.
func (m *Manager) ShowDashboard(view *views.DashboardView) {
	fyne.Do(func() {
		m.dashboard = view
		m.setContent(view.GetContainer())
	})
}

// RefreshStatistics updates the API counters card if the dashboard is the
// active view.
func (m *Manager) RefreshStatistics(apiStats models.APIStatistics) {
	fyne.Do(func() {
		if m.dashboard != nil {
			m.dashboard.RefreshStatistics(apiStats)
		}
	})
}

func (m *Manager) SetStatus(status string) {
	fyne.Do(func() {
		m.statusBar.SetStatus(status)
	})
}

func (m *Manager) ShowError(title string, err error) {
	m.log.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		dialog.ShowError(err, m.window)
	})
}

func (m *Manager) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, m.window)
	})
}

func (m *Manager) setContent(view fyne.CanvasObject) {
	m.content.Objects = []fyne.CanvasObject{view}
	m.content.Refresh()
}
