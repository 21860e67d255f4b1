package domain

// Actor is the caller on whose behalf an operation runs.
// CustomerID is empty for staff callers, who may act on any account.
type Actor struct {
	ID         string
	CustomerID string
}

// IsCustomer reports whether the actor is limited to its own accounts.
func (a Actor) IsCustomer() bool {
	return a.CustomerID != ""
}
