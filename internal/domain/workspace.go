package domain

import "time"

// Note is a free-text note a user attached to a supplier.
type Note struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InboxMessage is a message in a user's inbox.
type InboxMessage struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	SupplierID string    `json:"supplierId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}

// Workspace is the per-user state kept by the portal backend.
type Workspace struct {
	Favorites   []string        `json:"favorites"`
	Notes       map[string]Note `json:"notes"`
	Inbox       []InboxMessage  `json:"inbox"`
	Preferences map[string]any  `json:"preferences"`
}

// Profile is a workspace together with the fixed identity attributes of the demo user.
type Profile struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Workspace
}

// DefaultPreferences returns a fresh copy of the preferences every new workspace starts with.
func DefaultPreferences() map[string]any {
	return map[string]any{
		"theme":           "light",
		"sortBy":          "rating",
		"defaultCategory": nil,
	}
}
