package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"xtart-crm/internal/api"
	"xtart-crm/internal/gui/components"
	"xtart-crm/internal/logger"
	"xtart-crm/internal/models"
	"xtart-crm/internal/session"
)

// AgentsView is the sales agent CRUD screen, admin only.
type AgentsView struct {
	client *api.Client
	window fyne.Window
	log    logger.Logger

	container *fyne.Container
	table     *components.DataTable
	agents    []models.Agent
}

func NewAgentsView(client *api.Client, window fyne.Window, log logger.Logger) *AgentsView {
	v := &AgentsView{
		client: client,
		window: window,
		log:    log,
	}

	columns := []string{"ID", "Nombre", "Email", "Teléfono", "Rol", "Username"}
	v.table = components.NewDataTable(columns, nil)

	toolbar := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("Recargar", v.Reload),
		widget.NewButton("Nuevo", v.openCreateForm),
	)

	deleteButton := widget.NewButton("Eliminar", v.deleteSelected)
	deleteButton.Importance = widget.DangerImportance
	actions := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("Editar", v.openEditForm),
		deleteButton,
	)

	v.container = container.NewBorder(toolbar, actions, nil, nil, v.table.GetContainer())
	v.Reload()
	return v
}

func (v *AgentsView) GetContainer() *fyne.Container {
	return v.container
}

func (v *AgentsView) Reload() {
	agents, ok := v.client.Agents()
	if !ok {
		showConnectionError(v.window, "comerciales")
		v.table.SetRows(nil)
		return
	}
	v.agents = agents

	rows := make([][]string, len(agents))
	for i, a := range agents {
		rows[i] = []string{
			fmt.Sprint(a.ID), a.Name, a.Email, a.Phone, a.Role, a.Username,
		}
	}
	v.table.SetRows(rows)
}

func (v *AgentsView) selected() (models.Agent, bool) {
	row := v.table.SelectedRow()
	if row < 0 || row >= len(v.agents) {
		return models.Agent{}, false
	}
	return v.agents[row], true
}

func agentFormFields(initial models.Agent) []components.FormField {
	role := initial.Role
	if role == "" {
		role = string(session.RoleComercial)
	}
	return []components.FormField{
		{Key: "nombre", Label: "Nombre", Initial: initial.Name, Validator: components.RequiredValidator},
		{Key: "email", Label: "Email", Initial: initial.Email, Validator: components.EmailValidator},
		{Key: "telefono", Label: "Teléfono", Initial: initial.Phone, Validator: components.RequiredValidator},
		{Key: "username", Label: "Username", Initial: initial.Username, Validator: components.RequiredValidator},
		{Key: "rol", Label: "Rol", Initial: role,
			Options: []string{string(session.RoleAdmin), string(session.RoleComercial)}},
	}
}

func agentPayload(values map[string]string) map[string]interface{} {
	return map[string]interface{}{
		"nombre":   values["nombre"],
		"email":    values["email"],
		"telefono": values["telefono"],
		"username": values["username"],
		"rol":      values["rol"],
	}
}

func (v *AgentsView) openCreateForm() {
	components.ShowEntityForm(v.window, "Crear Nuevo Comercial", agentFormFields(models.Agent{}),
		func(values map[string]string) {
			data := agentPayload(values)
			data["passwordHash"] = "password123"
			if !v.client.CreateAgent(data) {
				showAPIError(v.window, "crear comercial")
				return
			}
			v.log.Info("AgentsView", "agent created", map[string]interface{}{"username": values["username"]})
			v.Reload()
		})
}

func (v *AgentsView) openEditForm() {
	agent, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona un comercial de la tabla para editar.")
		return
	}

	title := fmt.Sprintf("Editar Comercial ID: %d", agent.ID)
	components.ShowEntityForm(v.window, title, agentFormFields(agent),
		func(values map[string]string) {
			data := agentPayload(values)
			data["comercialId"] = agent.ID
			if !v.client.UpdateAgent(agent.ID, data) {
				showAPIError(v.window, "actualizar comercial")
				return
			}
			v.log.Info("AgentsView", "agent updated", map[string]interface{}{"id": agent.ID})
			v.Reload()
		})
}

func (v *AgentsView) deleteSelected() {
	agent, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona un comercial para eliminar.")
		return
	}

	message := fmt.Sprintf("¿Está seguro de que desea eliminar el comercial con ID %d?", agent.ID)
	confirmDelete(v.window, message, func() {
		if !v.client.DeleteAgent(agent.ID) {
			showAPIError(v.window, "eliminar comercial")
			return
		}
		v.log.Info("AgentsView", "agent deleted", map[string]interface{}{"id": agent.ID})
		v.Reload()
	})
}
