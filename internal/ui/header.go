package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/clemctl/clemctl/internal/remotemsg"
)

// renderHeader renders the status bar with the playback state at a glance.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	if !m.snapshot.Connected() {
		return m.renderDisconnectedHeader(styles, bg, sep)
	}

	var parts []string

	parts = append(parts, bg.Render("clemctl", styles.Logo))
	parts = append(parts, bg.Render("● ON", styles.SuccessText))
	parts = append(parts, styles.StatusStyle(string(m.snapshot.Status)).Render(string(m.snapshot.Status)))

	if track := m.snapshot.Track; track != nil {
		summary := truncate(trackSummary(track), 48)
		if position := m.renderPosition(track); position != "" {
			summary += " " + position
		}
		parts = append(parts, bg.Render(summary, styles.Text))
	}

	parts = append(parts,
		bg.Render("Vol:", styles.MutedText)+bg.Space()+
			bg.Render(m.volumeLabel(), styles.Text))

	if m.snapshot.Shuffle != "" && m.snapshot.Shuffle != "Off" {
		parts = append(parts, bg.Render("Shuffle "+m.snapshot.Shuffle, styles.InfoText))
	}
	if m.snapshot.Repeat != "" && m.snapshot.Repeat != "Off" {
		parts = append(parts, bg.Render("Repeat "+m.snapshot.Repeat, styles.InfoText))
	}

	parts = append(parts, bg.Render(m.updatedLabel(), styles.MutedText))

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderDisconnectedHeader shows the connecting/offline state.
func (m Model) renderDisconnectedHeader(styles Styles, bg BgStyle, sep string) string {
	parts := []string{
		bg.Render("clemctl", styles.Logo),
	}

	if m.snapshot.LastUpdate.IsZero() {
		parts = append(parts, bg.Render("Connecting to player...", styles.WarningText.Bold(true)))
	} else {
		parts = append(parts, bg.Render("● OFF", styles.DangerText))
		parts = append(parts, bg.Render("Disconnected", styles.DangerText))
		parts = append(parts, bg.Render("last update "+m.snapshot.LastUpdate.Format("15:04:05"), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar renders the per-view key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewPlaylists:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Open"},
			{"r", "Refresh"},
			{"Space", "Play/Pause"},
			{"Tab", "View"},
			{"?", "More"},
		}
	case ViewEvents:
		followLabel := "Pause"
		if !m.follow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"f", followLabel},
			{"j/k", "Scroll"},
			{"Space", "Play/Pause"},
			{"Tab", "View"},
			{"?", "More"},
		}
	default: // ViewNowPlaying
		commands = []cmd{
			{"Space", "Play/Pause"},
			{"s", "Stop"},
			{"n/b", "Next/Prev"},
			{"+/-", "Volume"},
			{"Tab", "View"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Surface the most recent failed command instead of hiding it.
	if m.lastCmdErr != nil {
		segments = append(segments,
			bg.Render("! "+truncate(m.lastCmdErr.Error(), 40), styles.DangerText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}

// trackSummary builds a one-line description of a track.
func trackSummary(track *remotemsg.SongMetadata) string {
	title := strings.TrimSpace(track.Title)
	artist := strings.TrimSpace(track.Artist)
	switch {
	case title != "" && artist != "":
		return artist + " · " + title
	case title != "":
		return title
	case track.Filename != "":
		return track.Filename
	default:
		return "(untitled)"
	}
}

// renderPosition formats "position/length" when both sides are known.
func (m Model) renderPosition(track *remotemsg.SongMetadata) string {
	length := strings.TrimSpace(track.PrettyLength)
	if length == "" && track.Length > 0 {
		length = formatSeconds(int(track.Length))
	}

	if m.snapshot.Position < 0 {
		if length == "" {
			return ""
		}
		return "[" + length + "]"
	}
	if length == "" {
		return "[" + formatSeconds(m.snapshot.Position) + "]"
	}
	return "[" + formatSeconds(m.snapshot.Position) + "/" + length + "]"
}

func (m Model) volumeLabel() string {
	if m.snapshot.Volume < 0 {
		return "--%"
	}
	return fmt.Sprintf("%d%%", m.snapshot.Volume)
}

// updatedLabel formats the last-update clock with a relative hint.
func (m Model) updatedLabel() string {
	if m.snapshot.LastUpdate.IsZero() {
		return "waiting for data"
	}
	label := m.snapshot.LastUpdate.Format("15:04:05")
	since := time.Since(m.snapshot.LastUpdate)
	switch {
	case since < time.Minute:
		label += " (now)"
	case since < time.Hour:
		label += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	}
	return label
}
