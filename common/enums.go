// Package common keeps enumerations shared by configuration and rendering
// code, so that neither has to import the other for them.
package common

// Color scheme of the produced page.
// ENUM(light, dark)
type ThemeMode int

// IsDark reports whether page should be rendered on dark background.
func (t ThemeMode) IsDark() bool {
	return t == ThemeModeDark
}
