package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
)

type favoriteRequest struct {
	SupplierID string `json:"supplierId"`
}

type saveNoteRequest struct {
	SupplierID string `json:"supplierId"`
	Content    string `json:"content"`
}

type inboxMessageRequest struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	SupplierID string `json:"supplierId"`
}

type markReadRequest struct {
	MessageID string `json:"messageId"`
}

type favoritesResponse struct {
	Success   bool     `json:"success"`
	Favorites []string `json:"favorites"`
}

type notesResponse struct {
	Success bool                   `json:"success"`
	Notes   map[string]domain.Note `json:"notes"`
}

type noteResponse struct {
	Success bool         `json:"success"`
	Note    *domain.Note `json:"note"`
}

type inboxResponse struct {
	Success bool                  `json:"success"`
	Inbox   []domain.InboxMessage `json:"inbox"`
}

type preferencesResponse struct {
	Success     bool           `json:"success"`
	Preferences map[string]any `json:"preferences"`
}

type profileResponse struct {
	Success bool           `json:"success"`
	User    domain.Profile `json:"user"`
}

func (s *Server) handleGetFavorites(c echo.Context) error {
	return sendJSON(c, http.StatusOK, favoritesResponse{Success: true, Favorites: s.workspace.Favorites(currentUser(c))})
}

func (s *Server) handleAddFavorite(c echo.Context) error {
	var req favoriteRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return err
	}

	favorites, err := s.workspace.AddFavorite(currentUser(c), req.SupplierID)
	if err != nil {
		return err
	}
	return sendJSON(c, http.StatusOK, favoritesResponse{Success: true, Favorites: favorites})
}

func (s *Server) handleRemoveFavorite(c echo.Context) error {
	var req favoriteRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return err
	}

	favorites, err := s.workspace.RemoveFavorite(currentUser(c), req.SupplierID)
	if err != nil {
		return err
	}
	return sendJSON(c, http.StatusOK, favoritesResponse{Success: true, Favorites: favorites})
}

func (s *Server) handleGetNotes(c echo.Context) error {
	return sendJSON(c, http.StatusOK, notesResponse{Success: true, Notes: s.workspace.Notes(currentUser(c))})
}

// handleGetNote returns the note for one supplier, or a null note when there is none.
func (s *Server) handleGetNote(c echo.Context) error {
	resp := noteResponse{Success: true}
	if note, ok := s.workspace.Note(currentUser(c), c.Param("supplierId")); ok {
		resp.Note = &note
	}
	return sendJSON(c, http.StatusOK, resp)
}

func (s *Server) handleSaveNote(c echo.Context) error {
	var req saveNoteRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return err
	}

	notes, err := s.workspace.SaveNote(currentUser(c), req.SupplierID, req.Content)
	if err != nil {
		return err
	}
	return sendJSON(c, http.StatusOK, notesResponse{Success: true, Notes: notes})
}

func (s *Server) handleGetInbox(c echo.Context) error {
	return sendJSON(c, http.StatusOK, inboxResponse{Success: true, Inbox: s.workspace.Inbox(currentUser(c))})
}

func (s *Server) handleAddInboxMessage(c echo.Context) error {
	var req inboxMessageRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return err
	}

	inbox := s.workspace.AddInboxMessage(currentUser(c), req.Title, req.Message, req.SupplierID)
	return sendJSON(c, http.StatusOK, inboxResponse{Success: true, Inbox: inbox})
}

func (s *Server) handleMarkRead(c echo.Context) error {
	var req markReadRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return err
	}

	inbox, err := s.workspace.MarkRead(currentUser(c), req.MessageID)
	if err != nil {
		return err
	}
	return sendJSON(c, http.StatusOK, inboxResponse{Success: true, Inbox: inbox})
}

func (s *Server) handleGetPreferences(c echo.Context) error {
	return sendJSON(c, http.StatusOK, preferencesResponse{Success: true, Preferences: s.workspace.Preferences(currentUser(c))})
}

func (s *Server) handleUpdatePreferences(c echo.Context) error {
	var updates map[string]any
	if err := decodeJSONBody(c, &updates); err != nil {
		return err
	}

	prefs := s.workspace.UpdatePreferences(currentUser(c), updates)
	return sendJSON(c, http.StatusOK, preferencesResponse{Success: true, Preferences: prefs})
}

func (s *Server) handleProfile(c echo.Context) error {
	return sendJSON(c, http.StatusOK, profileResponse{Success: true, User: s.workspace.Profile(currentUser(c))})
}
