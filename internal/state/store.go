package state

import (
	"sync"
	"time"

	"github.com/clemctl/clemctl/internal/remotemsg"
)

// Status is the playback status exposed to callers. The engine-state names
// mirror what the player reports; Disconnected is assigned locally.
type Status string

// Status values.
const (
	StatusDisconnected Status = "Disconnected"
	StatusEmpty        Status = "Empty"
	StatusIdle         Status = "Idle"
	StatusPlaying      Status = "Playing"
	StatusPaused       Status = "Paused"
)

// StatusFromEngineState maps a wire engine state onto a Status.
func StatusFromEngineState(s remotemsg.EngineState) Status {
	return Status(s.String())
}

// Unknown marks numeric snapshot fields the player has not reported yet.
const Unknown = -1

// Snapshot is the latest player state known to the client. Fields start out
// absent and stay that way until the corresponding message type has arrived:
// numeric fields hold Unknown, Shuffle and Repeat are empty strings, Track
// and Playlists are nil, LastUpdate is the zero time.
type Snapshot struct {
	Status              Status
	Version             int32
	Volume              int
	Position            int
	Shuffle             string
	Repeat              string
	Track               *remotemsg.SongMetadata
	Playlists           map[int32]remotemsg.Playlist
	ActivePlaylistID    int32
	InitialSyncComplete bool
	LastUpdate          time.Time
}

// Connected reports whether the client currently believes it has a live
// connection to the player.
func (s Snapshot) Connected() bool {
	return s.Status != StatusDisconnected
}

// ActivePlaylist returns the active playlist entry when both the playlist
// set and the active id are known.
func (s Snapshot) ActivePlaylist() (remotemsg.Playlist, bool) {
	if s.ActivePlaylistID == Unknown {
		return remotemsg.Playlist{}, false
	}
	p, ok := s.Playlists[s.ActivePlaylistID]
	return p, ok
}

// Store coordinates concurrent access to the snapshot. The receive loop is
// the only writer; any goroutine may read via Snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns a store with every field still unknown.
func NewStore() *Store {
	return &Store{snapshot: Snapshot{
		Status:           StatusDisconnected,
		Version:          0,
		Volume:           Unknown,
		Position:         Unknown,
		ActivePlaylistID: Unknown,
	}}
}

// Touch records that a message arrived, whatever its type.
func (s *Store) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastUpdate = now
}

// SetInfo records the server's protocol version and engine state.
func (s *Store) SetInfo(version int32, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Version = version
	s.snapshot.Status = status
}

// SetStatus records a playback state transition.
func (s *Store) SetStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Status = status
}

// SetPosition records playback progress in seconds.
func (s *Store) SetPosition(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Position = seconds
}

// SetVolume records the player volume (0-100).
func (s *Store) SetVolume(volume int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Volume = volume
}

// SetTrack replaces the current track wholesale. The store keeps its own
// copy, so later mutation of track by the caller does not leak in.
func (s *Store) SetTrack(track *remotemsg.SongMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Track = cloneTrack(track)
}

// SetShuffle records the shuffle mode name.
func (s *Store) SetShuffle(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Shuffle = mode
}

// SetRepeat records the repeat mode name.
func (s *Store) SetRepeat(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Repeat = mode
}

// SetFirstDataSentComplete marks the initial state sync as finished.
func (s *Store) SetFirstDataSentComplete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.InitialSyncComplete = true
}

// ReplacePlaylists swaps in a new playlist set keyed by id. The active
// playlist id is recomputed from the entry carrying the active flag; when no
// entry carries it the previous id stands.
func (s *Store) ReplacePlaylists(playlists []remotemsg.Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[int32]remotemsg.Playlist, len(playlists))
	for _, p := range playlists {
		set[p.ID] = p
		if p.Active {
			s.snapshot.ActivePlaylistID = p.ID
		}
	}
	s.snapshot.Playlists = set
}

// SetActivePlaylist updates the active playlist id only.
func (s *Store) SetActivePlaylist(id int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.ActivePlaylistID = id
}

// SetDisconnected downgrades the status after the connection is gone. All
// other fields keep their last known values.
func (s *Store) SetDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Status = StatusDisconnected
}

// Snapshot returns a copy of the current state. Track and playlist data are
// cloned so callers can hold the result as long as they like.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Track = cloneTrack(s.snapshot.Track)
	snap.Playlists = clonePlaylists(s.snapshot.Playlists)
	return snap
}

func cloneTrack(track *remotemsg.SongMetadata) *remotemsg.SongMetadata {
	if track == nil {
		return nil
	}
	dup := *track
	if len(track.Art) > 0 {
		dup.Art = make([]byte, len(track.Art))
		copy(dup.Art, track.Art)
	}
	return &dup
}

func clonePlaylists(playlists map[int32]remotemsg.Playlist) map[int32]remotemsg.Playlist {
	if playlists == nil {
		return nil
	}
	dup := make(map[int32]remotemsg.Playlist, len(playlists))
	for id, p := range playlists {
		dup[id] = p
	}
	return dup
}
