package app

import (
	"errors"

	"xtart-crm/internal/api"
	"xtart-crm/internal/gui"
	"xtart-crm/internal/gui/views"
	"xtart-crm/internal/logger"
	"xtart-crm/internal/session"
	"xtart-crm/internal/stats"
)

// Handlers owns the background side of every user action that leaves the
// UI thread: authentication, dashboard aggregation, report launches and
// statistics resets. Results are marshaled back through the GUI manager.
type Handlers struct {
	client     *api.Client
	guiManager *gui.Manager
	log        logger.Logger
	aggregator *stats.Aggregator
	sess       *session.Session
}

func NewHandlers(client *api.Client, guiManager *gui.Manager, log logger.Logger) *Handlers {
	h := &Handlers{
		client:     client,
		guiManager: guiManager,
		log:        log,
	}

	// Skipped records are invisible in the charts, so every one is logged
	// with the report it fell out of.
	h.aggregator = stats.New(stats.WithSkipObserver(func(report string, reason stats.SkipReason) {
		log.Debug("Aggregator", "record skipped", map[string]interface{}{
			"report": report,
			"reason": string(reason),
		})
	}))

	return h
}

func (h *Handlers) HandleLogin(username, password string) {
	go func() {
		sess, err := h.client.Login(username, password)
		if err != nil {
			if errors.Is(err, api.ErrInvalidCredentials) {
				h.guiManager.LoginFailed("Usuario o contraseña incorrectos.")
			} else {
				h.guiManager.LoginFailed("No se pudo conectar con el servidor.")
			}
			return
		}

		h.sess = sess
		h.guiManager.ShowMain(sess)
	}()
}

func (h *Handlers) HandleLogout() {
	h.log.Info("Handlers", "session closed", map[string]interface{}{
		"username": h.username(),
	})
	h.sess = nil
	h.guiManager.ShowLogin()
}

// HandleDashboard gathers every dataset the dashboard needs, runs the
// aggregations and delivers the finished view. Runs off the UI thread; the
// GUI keeps a loading placeholder until ShowDashboard lands.
func (h *Handlers) HandleDashboard() {
	go func() {
		h.guiManager.SetStatus("Cargando estadísticas...")

		invoices, ok := h.client.Invoices(0, 0)
		if !ok {
			h.guiManager.SetStatus("Error al cargar facturas")
			h.guiManager.ShowError("Dashboard", errors.New("no se pudieron obtener las facturas"))
			return
		}

		// Reference data failures degrade to empty charts instead of
		// blocking the whole screen.
		agents, _ := h.client.Agents()
		customers, _ := h.client.Customers(0)
		products, _ := h.client.Products(0)
		sections, _ := h.client.Sections()

		periods, revenues := h.aggregator.MonthlyRevenue(invoices)

		data := views.DashboardData{
			Periods:           periods,
			Revenues:          revenues,
			AgentRanking:      h.aggregator.AgentRanking(agents, invoices),
			Status:            h.aggregator.StatusCounts(invoices),
			CustomersPerAgent: h.aggregator.CustomersPerAgent(agents, customers),
			TopProducts:       h.aggregator.TopProducts(invoices, products),
			SectionRevenue:    h.aggregator.SectionRevenue(invoices, products, sections),
			APIStats:          h.client.Statistics(),
		}

		h.log.Info("Handlers", "dashboard data assembled", map[string]interface{}{
			"invoices": len(invoices),
			"periods":  len(periods),
		})

		view := views.NewDashboardView(data, h.HandleReport, h.HandleResetStats)
		h.guiManager.ShowDashboard(view)
		h.guiManager.SetStatus("Listo")
	}()
}

// HandleReport asks the backend to generate a report. Generation happens
// server side; the client only confirms the launch.
func (h *Handlers) HandleReport(kind string) {
	go func() {
		h.guiManager.SetStatus("Generando informe de " + kind + "...")

		if !h.client.StartReport(kind) {
			h.guiManager.SetStatus("Error al generar informe")
			h.guiManager.ShowError("Informes", errors.New("no se pudo iniciar el informe de "+kind))
			return
		}

		h.log.Info("Handlers", "report started", map[string]interface{}{"kind": kind})
		h.guiManager.SetStatus("Listo")
		h.guiManager.ShowInfo("Informes",
			"Informe de "+kind+" lanzado. Se generará en segundo plano en el servidor.")
	}()
}

func (h *Handlers) HandleResetStats() {
	go func() {
		if !h.client.ResetStatistics() {
			h.guiManager.ShowError("Estadísticas", errors.New("no se pudieron resetear las estadísticas"))
			return
		}

		h.log.Info("Handlers", "api statistics reset", nil)
		h.guiManager.RefreshStatistics(h.client.Statistics())
	}()
}

func (h *Handlers) username() string {
	if h.sess == nil {
		return ""
	}
	return h.sess.Username
}
