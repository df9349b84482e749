package monitors

import "fmt"

// Identity is the comparison key for a physical display: the EDID
// manufacturer, model, and serial number. Serial may be empty when the
// descriptor does not carry one.
type Identity struct {
	Manufacturer string `yaml:"manufacturer" json:"manufacturer"`
	Model        string `yaml:"model" json:"model"`
	Serial       string `yaml:"serial,omitempty" json:"serial,omitempty"`
}

// Monitor is one connected display, rebuilt fresh on every scan. BuiltIn is
// derived from configuration and is never part of identity comparison.
type Monitor struct {
	Identity
	BuiltIn bool
}

func (m Monitor) String() string {
	if m.BuiltIn {
		return fmt.Sprintf("%s %s (built in)", m.Manufacturer, m.Model)
	}
	if m.Serial == "" {
		return fmt.Sprintf("%s %s", m.Manufacturer, m.Model)
	}
	return fmt.Sprintf("%s %s serial %s", m.Manufacturer, m.Model, m.Serial)
}
