package domain

// Settings is the operator-editable global configuration. Stored in one
// document; root-only to modify, public subset readable by anyone.
type Settings struct {
	Maintenance    bool           `json:"maintenance" bson:"maintenance"`
	PasswordPolicy PasswordPolicy `json:"passwordPolicy" bson:"password_policy"`
}

// DefaultSettings applies until an operator saves an explicit document.
func DefaultSettings() Settings {
	return Settings{
		Maintenance:    false,
		PasswordPolicy: DefaultPasswordPolicy(),
	}
}

// PublicSettings is the anonymous-readable projection of Settings.
// Maintenance keeps its historical stringly wire shape ("true"/"false"),
// which existing clients parse.
type PublicSettings struct {
	Maintenance    string         `json:"maintenance"`
	PasswordPolicy PasswordPolicy `json:"passwordPolicy"`
}

// Public projects the settings into their anonymous-readable form.
func (s Settings) Public() PublicSettings {
	maintenance := "false"
	if s.Maintenance {
		maintenance = "true"
	}
	return PublicSettings{
		Maintenance:    maintenance,
		PasswordPolicy: s.PasswordPolicy,
	}
}

// MaintenanceOn reports whether the public settings flag is set.
func (p PublicSettings) MaintenanceOn() bool {
	return p.Maintenance == "true"
}
