package app

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/clemctl/clemctl/internal/remotemsg"
	"github.com/clemctl/clemctl/internal/state"
)

// printSnapshot writes the player state as a human-readable block. Fields the
// player has not reported yet are omitted rather than printed as zeroes.
func printSnapshot(w io.Writer, snap state.Snapshot) {
	fmt.Fprintf(w, "Status:    %s\n", snap.Status)
	if snap.Version > 0 {
		fmt.Fprintf(w, "Version:   %d\n", snap.Version)
	}
	if snap.Volume != state.Unknown {
		fmt.Fprintf(w, "Volume:    %d%%\n", snap.Volume)
	}
	if snap.Position != state.Unknown {
		fmt.Fprintf(w, "Position:  %s\n", formatSeconds(snap.Position))
	}
	if snap.Shuffle != "" {
		fmt.Fprintf(w, "Shuffle:   %s\n", snap.Shuffle)
	}
	if snap.Repeat != "" {
		fmt.Fprintf(w, "Repeat:    %s\n", snap.Repeat)
	}

	if track := snap.Track; track != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Track:")
		if track.Title != "" {
			fmt.Fprintf(w, "  Title:   %s\n", track.Title)
		} else if track.Filename != "" {
			fmt.Fprintf(w, "  Title:   %s\n", track.Filename)
		}
		if track.Artist != "" {
			fmt.Fprintf(w, "  Artist:  %s\n", track.Artist)
		}
		if track.Album != "" {
			album := track.Album
			if track.PrettyYear != "" {
				album += " (" + track.PrettyYear + ")"
			}
			fmt.Fprintf(w, "  Album:   %s\n", album)
		}
		if length := trackLength(track); length != "" {
			fmt.Fprintf(w, "  Length:  %s\n", length)
		}
	}

	if len(snap.Playlists) > 0 {
		fmt.Fprintln(w)
		printPlaylists(w, snap)
	}
}

// printPlaylists writes the playlist table sorted by id; the active playlist
// carries a leading asterisk.
func printPlaylists(w io.Writer, snap state.Snapshot) {
	ids := make([]int32, 0, len(snap.Playlists))
	for id := range snap.Playlists {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tNAME\tITEMS")
	for _, id := range ids {
		pl := snap.Playlists[id]
		marker := " "
		if id == snap.ActivePlaylistID {
			marker = "*"
		}
		name := strings.TrimSpace(pl.Name)
		if name == "" {
			name = fmt.Sprintf("Playlist %d", id)
		}
		fmt.Fprintf(tw, "%s %d\t%s\t%d\n", marker, id, name, pl.ItemCount)
	}
	tw.Flush()
}

func trackLength(track *remotemsg.SongMetadata) string {
	if track.PrettyLength != "" {
		return track.PrettyLength
	}
	if track.Length > 0 {
		return formatSeconds(int(track.Length))
	}
	return ""
}

// formatSeconds renders a duration in seconds as m:ss, or h:mm:ss past an
// hour. Negative values mean the position is unknown.
func formatSeconds(total int) string {
	if total < 0 {
		return "-:--"
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
