// pkg/model/scope.go
package model

// WorkshopScope is the explicit selection of one workshop run. The hosting
// shell resolves whatever ambient "currently selected workshop" state it keeps
// into a scope value at the boundary; the pipeline itself never reads process
// state.
type WorkshopScope struct {
	Date       string // canonical YYYY-MM-DD workshop date, "" when unset
	Code       string // selected workshop code, "" when unset
	LegacyCode string // legacy "codigo_taller" configuration value
}

// FallbackWorkshopID is used when no workshop selection of any kind exists
const FallbackWorkshopID = "T_001"

// Identifier resolves the effective workshop identifier written into every
// output record: code, then legacy code, then the date string, then the
// literal fallback.
func (s WorkshopScope) Identifier() string {
	switch {
	case s.Code != "":
		return s.Code
	case s.LegacyCode != "":
		return s.LegacyCode
	case s.Date != "":
		return s.Date
	default:
		return FallbackWorkshopID
	}
}

// IsZero reports whether the scope carries no selection at all
func (s WorkshopScope) IsZero() bool {
	return s.Date == "" && s.Code == "" && s.LegacyCode == ""
}
