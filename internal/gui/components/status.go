package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar is the bottom strip of the main window: current activity on
// the left, logged-in identity on the right.
type StatusBar struct {
	container     *fyne.Container
	statusLabel   *widget.Label
	identityLabel *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Listo")
	identityLabel := widget.NewLabel("")

	mainContainer := container.NewBorder(
		nil, nil,
		statusLabel,
		identityLabel,
	)

	return &StatusBar{
		container:     mainContainer,
		statusLabel:   statusLabel,
		identityLabel: identityLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) SetIdentity(name, role string) {
	sb.identityLabel.SetText(name + " · " + role)
}
