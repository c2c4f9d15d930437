// Package models defines the marketplace data types exchanged with the
// GraphQL backend. Field tags follow the wire names of the schema.
package models

// UserProfile is the immutable identity snapshot captured at login or
// registration. It is replaced wholesale on re-login, never patched.
type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// DisplayName picks the friendliest available name for greetings.
func (u UserProfile) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
