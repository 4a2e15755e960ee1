package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"xtart-crm/internal/gui/components"
)

// LoginView is the first screen: credentials form posting to the backend's
// form login through the injected handler.
type LoginView struct {
	container     *fyne.Container
	usernameEntry *widget.Entry
	passwordEntry *widget.Entry
	loginButton   *widget.Button
	errorLabel    *widget.Label
}

func NewLoginView(onLogin func(username, password string)) *LoginView {
	usernameEntry := widget.NewEntry()
	usernameEntry.SetPlaceHolder("Usuario")
	usernameEntry.Validator = components.RequiredValidator

	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("Contraseña")
	passwordEntry.Validator = components.RequiredValidator

	errorLabel := widget.NewLabel("")
	errorLabel.Alignment = fyne.TextAlignCenter
	errorLabel.Importance = widget.DangerImportance
	errorLabel.Hide()

	submit := func() {
		onLogin(usernameEntry.Text, passwordEntry.Text)
	}

	loginButton := widget.NewButton("Iniciar Sesión", submit)
	loginButton.Importance = widget.HighImportance
	passwordEntry.OnSubmitted = func(string) { submit() }

	title := widget.NewLabelWithStyle("XTART CRM", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	form := container.NewVBox(
		title,
		widget.NewSeparator(),
		usernameEntry,
		passwordEntry,
		loginButton,
		errorLabel,
	)

	view := &LoginView{
		container:     container.NewCenter(container.NewGridWrap(fyne.NewSize(320, 280), form)),
		usernameEntry: usernameEntry,
		passwordEntry: passwordEntry,
		loginButton:   loginButton,
		errorLabel:    errorLabel,
	}
	return view
}

func (v *LoginView) GetContainer() *fyne.Container {
	return v.container
}

func (v *LoginView) SetError(message string) {
	v.errorLabel.SetText(message)
	v.errorLabel.Show()
}

func (v *LoginView) SetBusy(busy bool) {
	if busy {
		v.loginButton.Disable()
	} else {
		v.loginButton.Enable()
	}
}

func (v *LoginView) Reset() {
	v.passwordEntry.SetText("")
	v.errorLabel.Hide()
	v.loginButton.Enable()
}
