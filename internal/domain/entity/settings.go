package entity

import "strings"

// Notifications canales de aviso habilitados.
type Notifications struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

// Settings preferencias del productor.
type Settings struct {
	FarmName      string        `json:"farmName"`
	Currency      string        `json:"currency"`
	UserName      string        `json:"userName"`
	UserEmail     string        `json:"userEmail"`
	Notifications Notifications `json:"notifications"`
	Theme         string        `json:"theme"` // dark | light
	IsSidebarOpen bool          `json:"isSidebarOpen"`
}

// SettingsDefaults valores base configurables por despliegue.
type SettingsDefaults struct {
	FarmName string
	Currency string
}

// DefaultSettings construye las preferencias iniciales para un e-mail.
// El nombre de usuario sale de la parte local del e-mail.
func DefaultSettings(d SettingsDefaults, email string) Settings {
	if d.FarmName == "" {
		d.FarmName = "Fazenda Santa Luzia"
	}
	if d.Currency == "" {
		d.Currency = "R$"
	}
	return Settings{
		FarmName:      d.FarmName,
		Currency:      d.Currency,
		UserName:      UserNameFromEmail(email),
		UserEmail:     email,
		Notifications: Notifications{Email: true, Push: true, SMS: false},
		Theme:         "dark",
		IsSidebarOpen: true,
	}
}

// UserNameFromEmail devuelve la parte local del e-mail, o "Produtor".
func UserNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.TrimSpace(local)
	if local == "" {
		return "Produtor"
	}
	return local
}

// Normalize completa campos vacíos con los valores por defecto.
func (s Settings) Normalize(d SettingsDefaults) Settings {
	if s.Currency == "" {
		s.Currency = d.Currency
		if s.Currency == "" {
			s.Currency = "R$"
		}
	}
	if s.Theme != "dark" && s.Theme != "light" {
		s.Theme = "dark"
	}
	if s.FarmName == "" {
		s.FarmName = d.FarmName
	}
	return s
}
