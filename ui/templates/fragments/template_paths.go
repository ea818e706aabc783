// Package fragments provides template name constants for organized template management
package fragments

// Template name constants for fragment access. Templates parse by
// base filename, so these are names, not paths.
const (
	// Workbench templates
	Workbench   = "workbench.html"
	CursorPanel = "cursor_panel.html"
)

// GetAllTemplateNames returns all fragment names for registration
func GetAllTemplateNames() []string {
	return []string{
		Workbench,
		CursorPanel,
	}
}
