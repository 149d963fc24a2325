package domain

// Snapshot is the full catalog at one point in time. It is replaced wholesale
// on every tick and must not be modified after it has been published.
type Snapshot struct {
	Suppliers []Supplier
	Timestamp int64 // epoch ms
}

// Len returns the number of suppliers in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Suppliers)
}

// SearchFilters narrows a search. Nil fields are ignored.
type SearchFilters struct {
	MinRating *float64 `json:"minRating,omitempty"`
	Category  *string  `json:"category,omitempty"`
	InStock   *bool    `json:"inStock,omitempty"`
}

// SearchRequest is a free-text query combined with filters. All parts compose with AND.
type SearchRequest struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

// MessageType tags a catalog push message.
type MessageType string

const (
	MessageTypeInitial MessageType = "initial"
	MessageTypeUpdate  MessageType = "update"
)

// CatalogMessage is the wire format pushed to subscribers.
type CatalogMessage struct {
	Type      MessageType `json:"type"`
	Data      []Supplier  `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// NewCatalogMessage wraps a snapshot into a push message of the given type.
func NewCatalogMessage(t MessageType, snap *Snapshot) CatalogMessage {
	msg := CatalogMessage{Type: t, Data: []Supplier{}}
	if snap != nil {
		msg.Data = snap.Suppliers
		msg.Timestamp = snap.Timestamp
	}
	return msg
}
