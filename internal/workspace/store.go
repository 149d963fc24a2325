// Package workspace keeps per-user portal state in memory: favorite suppliers,
// notes, an inbox and display preferences. State lives for the process lifetime.
package workspace

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
)

const (
	// AnonymousUser is the user id used when a request names no user.
	AnonymousUser = "anonymous"

	profileRole       = "procurement_officer"
	profileDepartment = "Supplier Relations"
)

var (
	ErrSupplierIDRequired = errors.New("supplierId is required")
	ErrMessageIDRequired  = errors.New("messageId is required")
)

// Store is a concurrency-safe map of user id to workspace. Workspaces are
// created on first access. Every returned value is a copy.
type Store struct {
	clock clockwork.Clock
	mu    sync.RWMutex
	users map[string]*domain.Workspace
}

func New(clock clockwork.Clock) *Store {
	return &Store{
		clock: clock,
		users: make(map[string]*domain.Workspace),
	}
}

// workspace returns the workspace of userID, creating it if needed. Callers hold mu.
func (s *Store) workspace(userID string) *domain.Workspace {
	userID = orAnonymous(userID)
	ws, ok := s.users[userID]
	if !ok {
		ws = &domain.Workspace{
			Favorites:   []string{},
			Notes:       map[string]domain.Note{},
			Inbox:       []domain.InboxMessage{},
			Preferences: domain.DefaultPreferences(),
		}
		s.users[userID] = ws
	}
	return ws
}

// read returns a copy of the user's workspace, creating it on first access.
func (s *Store) read(userID string) domain.Workspace {
	s.mu.RLock()
	ws, ok := s.users[orAnonymous(userID)]
	if ok {
		out := copyWorkspace(ws)
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return copyWorkspace(s.workspace(userID))
}

func (s *Store) Favorites(userID string) []string {
	return s.read(userID).Favorites
}

// AddFavorite appends supplierID unless it is already a favorite.
func (s *Store) AddFavorite(userID, supplierID string) ([]string, error) {
	if supplierID == "" {
		return nil, ErrSupplierIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	if !slices.Contains(ws.Favorites, supplierID) {
		ws.Favorites = append(ws.Favorites, supplierID)
	}
	return slices.Clone(ws.Favorites), nil
}

// RemoveFavorite removes supplierID. Removing a non-favorite is a no-op.
func (s *Store) RemoveFavorite(userID, supplierID string) ([]string, error) {
	if supplierID == "" {
		return nil, ErrSupplierIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	ws.Favorites = slices.DeleteFunc(ws.Favorites, func(id string) bool { return id == supplierID })
	return slices.Clone(ws.Favorites), nil
}

// SaveNote stores content as the note for supplierID. Blank content deletes the note.
func (s *Store) SaveNote(userID, supplierID, content string) (map[string]domain.Note, error) {
	if supplierID == "" {
		return nil, ErrSupplierIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	if strings.TrimSpace(content) == "" {
		delete(ws.Notes, supplierID)
	} else {
		ws.Notes[supplierID] = domain.Note{Content: content, UpdatedAt: s.clock.Now().UTC()}
	}
	return maps.Clone(ws.Notes), nil
}

// Note returns the note for supplierID, if any.
func (s *Store) Note(userID, supplierID string) (domain.Note, bool) {
	note, ok := s.read(userID).Notes[supplierID]
	return note, ok
}

func (s *Store) Notes(userID string) map[string]domain.Note {
	return s.read(userID).Notes
}

// AddInboxMessage appends an unread message to the user's inbox.
func (s *Store) AddInboxMessage(userID, title, message, supplierID string) []domain.InboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	ws.Inbox = append(ws.Inbox, domain.InboxMessage{
		ID:         uuid.NewString(),
		Title:      title,
		Message:    message,
		SupplierID: supplierID,
		Timestamp:  s.clock.Now().UTC(),
	})
	return slices.Clone(ws.Inbox)
}

func (s *Store) Inbox(userID string) []domain.InboxMessage {
	return s.read(userID).Inbox
}

// MarkRead marks the message with messageID as read. Unknown ids are ignored.
func (s *Store) MarkRead(userID, messageID string) ([]domain.InboxMessage, error) {
	if messageID == "" {
		return nil, ErrMessageIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	for i := range ws.Inbox {
		if ws.Inbox[i].ID == messageID {
			ws.Inbox[i].Read = true
			break
		}
	}
	return slices.Clone(ws.Inbox), nil
}

func (s *Store) Preferences(userID string) map[string]any {
	return s.read(userID).Preferences
}

// UpdatePreferences merges updates into the user's preferences, key by key.
func (s *Store) UpdatePreferences(userID string, updates map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws := s.workspace(userID)
	maps.Copy(ws.Preferences, updates)
	return maps.Clone(ws.Preferences)
}

// Profile returns the user's identity together with the whole workspace.
func (s *Store) Profile(userID string) domain.Profile {
	return domain.Profile{
		ID:         orAnonymous(userID),
		Role:       profileRole,
		Department: profileDepartment,
		Workspace:  s.read(userID),
	}
}

func orAnonymous(userID string) string {
	if userID == "" {
		return AnonymousUser
	}
	return userID
}

func copyWorkspace(ws *domain.Workspace) domain.Workspace {
	return domain.Workspace{
		Favorites:   slices.Clone(ws.Favorites),
		Notes:       maps.Clone(ws.Notes),
		Inbox:       slices.Clone(ws.Inbox),
		Preferences: maps.Clone(ws.Preferences),
	}
}
