package entities

// Alert is one safety concern surfaced to the user. DrugsInvolved carries the
// user's own product names, never internal canonical ingredient names. Never
// mutated after creation.
type Alert struct {
	DrugsInvolved []string `json:"drugs_involved"`
	AlertMessage  string   `json:"alert_message"`
}
