// Package ports defines the interfaces the domain consumes from the
// outside: persistence stores and the localization lookup.
package ports

// Messages resolves a message key to its localized text. The lookup
// itself lives outside this module; Passthrough stands in when no
// localization is wired.
type Messages interface {
	Message(key string) string
}

// Passthrough is a Messages lookup that returns keys unchanged.
type Passthrough struct{}

// Message returns key as-is.
func (Passthrough) Message(key string) string {
	return key
}
