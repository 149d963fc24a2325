package workspace

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 12, 12, 13, 51, 21, 0, time.UTC)

func newTestStore() (*Store, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(testNow)
	return New(clock), clock
}

func TestStore_NewUserDefaults(t *testing.T) {
	s, _ := newTestStore()

	assert.Empty(t, s.Favorites("alice"))
	assert.NotNil(t, s.Favorites("alice"))
	assert.Empty(t, s.Notes("alice"))
	assert.Empty(t, s.Inbox("alice"))
	assert.Equal(t, map[string]any{
		"theme":           "light",
		"sortBy":          "rating",
		"defaultCategory": nil,
	}, s.Preferences("alice"))
}

func TestStore_FavoritesSetSemantics(t *testing.T) {
	s, _ := newTestStore()

	favs, err := s.AddFavorite("alice", "SUP-0002")
	require.NoError(t, err)
	assert.Equal(t, []string{"SUP-0002"}, favs)

	_, err = s.AddFavorite("alice", "SUP-0001")
	require.NoError(t, err)
	favs, err = s.AddFavorite("alice", "SUP-0002")
	require.NoError(t, err)
	assert.Equal(t, []string{"SUP-0002", "SUP-0001"}, favs, "duplicates are ignored, insertion order kept")

	favs, err = s.RemoveFavorite("alice", "SUP-0002")
	require.NoError(t, err)
	assert.Equal(t, []string{"SUP-0001"}, favs)

	favs, err = s.RemoveFavorite("alice", "SUP-0404")
	require.NoError(t, err)
	assert.Equal(t, []string{"SUP-0001"}, favs)

	assert.Equal(t, []string{"SUP-0001"}, s.Favorites("alice"))
}

func TestStore_FavoritesRequireSupplierID(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.AddFavorite("alice", "")
	assert.ErrorIs(t, err, ErrSupplierIDRequired)
	_, err = s.RemoveFavorite("alice", "")
	assert.ErrorIs(t, err, ErrSupplierIDRequired)
}

func TestStore_UsersAreIsolated(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.AddFavorite("alice", "SUP-0001")
	require.NoError(t, err)

	assert.Empty(t, s.Favorites("bob"))
	assert.Equal(t, []string{"SUP-0001"}, s.Favorites("alice"))
}

func TestStore_EmptyUserIsAnonymous(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.AddFavorite("", "SUP-0001")
	require.NoError(t, err)

	assert.Equal(t, []string{"SUP-0001"}, s.Favorites(AnonymousUser))
	assert.Equal(t, AnonymousUser, s.Profile("").ID)
}

func TestStore_ReturnedValuesAreCopies(t *testing.T) {
	s, _ := newTestStore()

	favs, err := s.AddFavorite("alice", "SUP-0001")
	require.NoError(t, err)
	favs[0] = "mutated"

	prefs := s.Preferences("alice")
	prefs["theme"] = "dark"

	assert.Equal(t, []string{"SUP-0001"}, s.Favorites("alice"))
	assert.Equal(t, "light", s.Preferences("alice")["theme"])
}

func TestStore_Notes(t *testing.T) {
	s, clock := newTestStore()

	notes, err := s.SaveNote("alice", "SUP-0001", "Call back on Monday")
	require.NoError(t, err)
	require.Contains(t, notes, "SUP-0001")
	assert.Equal(t, "Call back on Monday", notes["SUP-0001"].Content)
	assert.Equal(t, testNow, notes["SUP-0001"].UpdatedAt)

	clock.Advance(time.Hour)
	_, err = s.SaveNote("alice", "SUP-0001", "Moved to Tuesday")
	require.NoError(t, err)

	note, ok := s.Note("alice", "SUP-0001")
	require.True(t, ok)
	assert.Equal(t, "Moved to Tuesday", note.Content)
	assert.Equal(t, testNow.Add(time.Hour), note.UpdatedAt)

	_, ok = s.Note("alice", "SUP-0002")
	assert.False(t, ok)
}

func TestStore_BlankNoteDeletes(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.SaveNote("alice", "SUP-0001", "keep")
	require.NoError(t, err)
	_, err = s.SaveNote("alice", "SUP-0002", "drop")
	require.NoError(t, err)

	notes, err := s.SaveNote("alice", "SUP-0002", "  \n\t ")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Contains(t, notes, "SUP-0001")

	_, err = s.SaveNote("alice", "", "content")
	assert.ErrorIs(t, err, ErrSupplierIDRequired)
}

func TestStore_Inbox(t *testing.T) {
	s, _ := newTestStore()

	inbox := s.AddInboxMessage("alice", "Price update", "New quote received", "SUP-0003")
	require.Len(t, inbox, 1)
	msg := inbox[0]
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Price update", msg.Title)
	assert.Equal(t, "New quote received", msg.Message)
	assert.Equal(t, "SUP-0003", msg.SupplierID)
	assert.Equal(t, testNow, msg.Timestamp)
	assert.False(t, msg.Read)

	inbox = s.AddInboxMessage("alice", "Reminder", "Contract renewal", "")
	require.Len(t, inbox, 2)
	assert.NotEqual(t, inbox[0].ID, inbox[1].ID)

	inbox, err := s.MarkRead("alice", msg.ID)
	require.NoError(t, err)
	assert.True(t, inbox[0].Read)
	assert.False(t, inbox[1].Read)

	// Unknown ids leave the inbox unchanged
	inbox, err = s.MarkRead("alice", "unknown")
	require.NoError(t, err)
	assert.Equal(t, s.Inbox("alice"), inbox)

	_, err = s.MarkRead("alice", "")
	assert.ErrorIs(t, err, ErrMessageIDRequired)
}

func TestStore_PreferencesMergeShallowly(t *testing.T) {
	s, _ := newTestStore()

	prefs := s.UpdatePreferences("alice", map[string]any{
		"theme":     "dark",
		"pageSize":  float64(25),
		"dashboard": map[string]any{"compact": true},
	})

	assert.Equal(t, "dark", prefs["theme"])
	assert.Equal(t, "rating", prefs["sortBy"])
	assert.Nil(t, prefs["defaultCategory"])
	assert.Equal(t, float64(25), prefs["pageSize"])

	prefs = s.UpdatePreferences("alice", map[string]any{"dashboard": map[string]any{"wide": true}})
	assert.Equal(t, map[string]any{"wide": true}, prefs["dashboard"], "nested values are replaced, not merged")
	assert.Equal(t, "dark", prefs["theme"])
}

func TestStore_Profile(t *testing.T) {
	s, _ := newTestStore()
	_, err := s.AddFavorite("alice", "SUP-0001")
	require.NoError(t, err)

	p := s.Profile("alice")
	assert.Equal(t, "alice", p.ID)
	assert.Equal(t, "procurement_officer", p.Role)
	assert.Equal(t, "Supplier Relations", p.Department)
	assert.Equal(t, []string{"SUP-0001"}, p.Favorites)
	assert.Equal(t, "light", p.Preferences["theme"])
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, _ := newTestStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("SUP-%04d", i%10)
			_, _ = s.AddFavorite("alice", id)
			_, _ = s.SaveNote("alice", id, "note")
			_ = s.Favorites("alice")
			_ = s.Profile("alice")
		}()
	}
	wg.Wait()

	assert.Len(t, s.Favorites("alice"), 10)
	assert.Len(t, s.Notes("alice"), 10)
}
