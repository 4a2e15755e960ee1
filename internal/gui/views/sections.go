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
)

// SectionsView is the product section CRUD screen, admin only.
type SectionsView struct {
	client *api.Client
	window fyne.Window
	log    logger.Logger

	container *fyne.Container
	table     *components.DataTable
	sections  []models.Section
}

func NewSectionsView(client *api.Client, window fyne.Window, log logger.Logger) *SectionsView {
	v := &SectionsView{
		client: client,
		window: window,
		log:    log,
	}

	v.table = components.NewDataTable([]string{"ID", "Nombre"}, nil)

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

func (v *SectionsView) GetContainer() *fyne.Container {
	return v.container
}

func (v *SectionsView) Reload() {
	sections, ok := v.client.Sections()
	if !ok {
		showConnectionError(v.window, "secciones")
		v.table.SetRows(nil)
		return
	}
	v.sections = sections

	rows := make([][]string, len(sections))
	for i, s := range sections {
		rows[i] = []string{fmt.Sprint(s.ID), s.Name}
	}
	v.table.SetRows(rows)
}

func (v *SectionsView) selected() (models.Section, bool) {
	row := v.table.SelectedRow()
	if row < 0 || row >= len(v.sections) {
		return models.Section{}, false
	}
	return v.sections[row], true
}

func (v *SectionsView) openCreateForm() {
	fields := []components.FormField{
		{Key: "nombre", Label: "Nombre", Validator: components.RequiredValidator},
	}
	components.ShowEntityForm(v.window, "Crear Nueva Sección", fields,
		func(values map[string]string) {
			if !v.client.CreateSection(map[string]interface{}{"nombre": values["nombre"]}) {
				showAPIError(v.window, "crear sección")
				return
			}
			v.log.Info("SectionsView", "section created", map[string]interface{}{"name": values["nombre"]})
			v.Reload()
		})
}

func (v *SectionsView) openEditForm() {
	section, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona una sección de la tabla para editar.")
		return
	}

	fields := []components.FormField{
		{Key: "nombre", Label: "Nombre", Initial: section.Name, Validator: components.RequiredValidator},
	}
	title := fmt.Sprintf("Editar Sección ID: %d", section.ID)
	components.ShowEntityForm(v.window, title, fields,
		func(values map[string]string) {
			data := map[string]interface{}{
				"seccionId": section.ID,
				"nombre":    values["nombre"],
			}
			if !v.client.UpdateSection(section.ID, data) {
				showAPIError(v.window, "actualizar sección")
				return
			}
			v.log.Info("SectionsView", "section updated", map[string]interface{}{"id": section.ID})
			v.Reload()
		})
}

func (v *SectionsView) deleteSelected() {
	section, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona una sección para eliminar.")
		return
	}

	message := fmt.Sprintf("¿Está seguro de que desea eliminar la sección con ID %d?", section.ID)
	confirmDelete(v.window, message, func() {
		if !v.client.DeleteSection(section.ID) {
			showAPIError(v.window, "eliminar sección")
			return
		}
		v.log.Info("SectionsView", "section deleted", map[string]interface{}{"id": section.ID})
		v.Reload()
	})
}
