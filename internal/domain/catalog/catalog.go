// Package catalog contains the data structures of the local ruleset
// catalog: installed ruleset documents and the option-change log.
package catalog

import "time"

// RulesetInfo is one installed ruleset document.
type RulesetInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Version     string    `json:"version"`
	Checksum    string    `json:"checksum"`
	InstalledAt time.Time `json:"installed_at"`
}

// OptionChange is one recorded option mutation. Values are kept in their
// document string form.
type OptionChange struct {
	ID        string    `json:"id"`
	OptionID  string    `json:"option_id"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedAt time.Time `json:"changed_at"`
}
