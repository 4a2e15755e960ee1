package views

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"xtart-crm/internal/models"
)

// optionSet pairs the display strings of a relation select with a lookup
// back to the record ids. Display strings follow the "ID n: name" shape so
// the id survives the round trip through the widget.
type optionSet struct {
	labels []string
	ids    map[string]int64
}

func (o optionSet) id(label string) int64 {
	return o.ids[label]
}

func (o optionSet) labelFor(id int64) string {
	for _, label := range o.labels {
		if o.ids[label] == id {
			return label
		}
	}
	return ""
}

func agentOptions(agents []models.Agent) optionSet {
	set := optionSet{ids: make(map[string]int64, len(agents))}
	for _, a := range agents {
		label := fmt.Sprintf("ID %d: %s", a.ID, a.Name)
		set.labels = append(set.labels, label)
		set.ids[label] = a.ID
	}
	return set
}

func customerOptions(customers []models.Customer) optionSet {
	set := optionSet{ids: make(map[string]int64, len(customers))}
	for _, c := range customers {
		label := fmt.Sprintf("ID %d: %s %s", c.ID, c.Name, c.Surname)
		set.labels = append(set.labels, label)
		set.ids[label] = c.ID
	}
	return set
}

func productOptions(products []models.Product) optionSet {
	set := optionSet{ids: make(map[string]int64, len(products))}
	for _, p := range products {
		label := fmt.Sprintf("ID %d: %s (%.2f €)", p.ID, p.Name, p.BasePrice)
		set.labels = append(set.labels, label)
		set.ids[label] = p.ID
	}
	return set
}

func sectionOptions(sections []models.Section) optionSet {
	set := optionSet{ids: make(map[string]int64, len(sections))}
	for _, s := range sections {
		label := fmt.Sprintf("ID %d: %s", s.ID, s.Name)
		set.labels = append(set.labels, label)
		set.ids[label] = s.ID
	}
	return set
}

func showConnectionError(window fyne.Window, entity string) {
	dialog.ShowError(
		errors.New("no se pudieron obtener los "+entity+", verifique el servidor REST"),
		window)
}

func showAPIError(window fyne.Window, action string) {
	dialog.ShowError(errors.New("el servidor rechazó la operación: "+action), window)
}

func showSelectionWarning(window fyne.Window, message string) {
	dialog.ShowInformation("Advertencia", message, window)
}

func confirmDelete(window fyne.Window, message string, onConfirm func()) {
	dialog.ShowConfirm("Confirmar Eliminación", message, func(confirmed bool) {
		if confirmed {
			onConfirm()
		}
	}, window)
}

// showDetails opens a read-only key/value dialog for one record.
func showDetails(window fyne.Window, title string, pairs [][2]string) {
	grid := container.NewVBox()
	for _, pair := range pairs {
		grid.Add(container.NewHBox(
			widget.NewLabelWithStyle(pair[0]+":", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(pair[1]),
		))
	}
	dialog.ShowCustom(title, "Cerrar", container.NewVScroll(grid), window)
}
