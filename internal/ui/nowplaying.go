package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clemctl/clemctl/internal/remotemsg"
)

// renderNowPlaying renders the current-track view.
func (m Model) renderNowPlaying() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2 // Account for header + cmdbar

	track := m.snapshot.Track
	if track == nil {
		label := "Nothing playing"
		if !m.snapshot.Connected() {
			label = "Not connected"
		}
		empty := styles.MutedText.Render(label)
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	content := m.renderTrackDetails(*track, m.width-4)
	return m.renderTitledBox("Now Playing", content, m.width, contentHeight, true)
}

// renderTrackDetails formats the metadata block for the current track.
func (m Model) renderTrackDetails(track remotemsg.SongMetadata, width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	valueWidth := max(width-12, 16)

	var b strings.Builder

	// -- Header: title plus state chips --
	title := strings.TrimSpace(track.Title)
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(bg.Render(truncate(title, width), styles.Text.Bold(true)))
	b.WriteString("\n")

	chips := []string{styles.StatusStyle(string(m.snapshot.Status)).Render(string(m.snapshot.Status))}
	if m.snapshot.Shuffle != "" && m.snapshot.Shuffle != "Off" {
		chips = append(chips, bg.Render("Shuffle "+m.snapshot.Shuffle, styles.InfoText))
	}
	if m.snapshot.Repeat != "" && m.snapshot.Repeat != "Off" {
		chips = append(chips, bg.Render("Repeat "+m.snapshot.Repeat, styles.InfoText))
	}
	b.WriteString(strings.Join(chips, bg.Spaces(2)))
	b.WriteString("\n\n")

	// -- Credits --
	artist := strings.TrimSpace(track.Artist)
	if artist == "" {
		artist = strings.TrimSpace(track.Albumartist)
	}
	if artist != "" {
		b.WriteString(bg.Render("Artist:    ", styles.MutedText))
		b.WriteString(bg.Render(truncate(artist, valueWidth), styles.Text))
		b.WriteString("\n")
	}
	if album := strings.TrimSpace(track.Album); album != "" {
		b.WriteString(bg.Render("Album:     ", styles.MutedText))
		b.WriteString(bg.Render(truncate(album, valueWidth), styles.Text))
		if year := strings.TrimSpace(track.PrettyYear); year != "" {
			b.WriteString(bg.Render(" ("+year+")", styles.FaintText))
		}
		b.WriteString("\n")
	}
	if track.Track > 0 {
		b.WriteString(bg.Render("Track:     ", styles.MutedText))
		b.WriteString(bg.Render(fmt.Sprintf("%d", track.Track), styles.Text))
		if track.Disc > 0 {
			b.WriteString(bg.Render(fmt.Sprintf(" (disc %d)", track.Disc), styles.FaintText))
		}
		b.WriteString("\n")
	}
	if genre := strings.TrimSpace(track.Genre); genre != "" {
		b.WriteString(bg.Render("Genre:     ", styles.MutedText))
		b.WriteString(bg.Render(truncate(genre, valueWidth), styles.Text))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// -- Position --
	m.renderTrackPosition(&b, track, styles, bg)

	// -- Listening stats --
	if track.Rating > 0 {
		stars := int(track.Rating*5 + 0.5)
		stars = min(max(stars, 0), 5)
		b.WriteString(bg.Render("Rating:    ", styles.MutedText))
		b.WriteString(bg.Render(strings.Repeat("★", stars)+strings.Repeat("☆", 5-stars), styles.WarningText))
		b.WriteString("\n")
	}
	if track.Playcount > 0 {
		b.WriteString(bg.Render("Plays:     ", styles.MutedText))
		b.WriteString(bg.Render(fmt.Sprintf("%d", track.Playcount), styles.Text))
		b.WriteString("\n")
	}

	// -- Source --
	if name := strings.TrimSpace(track.Filename); name != "" {
		b.WriteString(bg.Render("File:      ", styles.MutedText))
		b.WriteString(bg.Render(truncate(filepath.Base(name), valueWidth), styles.Text))
		if track.FileSize > 0 {
			b.WriteString(bg.Render(" ("+formatBytes(int64(track.FileSize))+")", styles.FaintText))
		}
		if !track.IsLocal {
			b.WriteString(bg.Render(" remote", styles.InfoText))
		}
		b.WriteString("\n")
	}
	if len(track.Art) > 0 {
		b.WriteString(bg.Render("Art:       ", styles.MutedText))
		b.WriteString(bg.Render("embedded ("+formatBytes(int64(len(track.Art)))+")", styles.FaintText))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTrackPosition writes the elapsed/total line with a progress bar.
func (m Model) renderTrackPosition(b *strings.Builder, track remotemsg.SongMetadata, styles Styles, bg BgStyle) {
	length := strings.TrimSpace(track.PrettyLength)
	if length == "" && track.Length > 0 {
		length = formatSeconds(int(track.Length))
	}

	if m.snapshot.Position < 0 && length == "" {
		return
	}

	b.WriteString(bg.Render("Position:  ", styles.MutedText))
	switch {
	case m.snapshot.Position < 0:
		b.WriteString(bg.Render(length, styles.Text))
	case length == "":
		b.WriteString(bg.Render(formatSeconds(m.snapshot.Position), styles.Text))
	default:
		b.WriteString(bg.Render(formatSeconds(m.snapshot.Position), styles.Text))
		b.WriteString(bg.Render(" / ", styles.FaintText))
		b.WriteString(bg.Render(length, styles.Text))
	}
	b.WriteString("\n")

	if m.snapshot.Position >= 0 && track.Length > 0 {
		percent := clampPercent(float64(m.snapshot.Position) / float64(track.Length) * 100)
		b.WriteString(bg.Spaces(11))
		b.WriteString(renderProgressBar(percent, 30, styles, bg))
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(fmt.Sprintf("%3.0f%%", percent), styles.MutedText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// renderTitledBox renders content in a box with the title embedded in the top
// border: ┌─── Title ───┐. When focused is true the border and background use
// the focus colors.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2 // Account for left and right border chars
	title = truncate(title, max(innerWidth-4, 0))
	leftPad := max((innerWidth-len([]rune(title))-2)/2, 0)
	rightPad := max(innerWidth-len([]rune(title))-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", max(innerWidth, 0)), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2 // -2 for top and bottom borders

	var paddedLines []string
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

// renderProgressBar renders a text-based progress bar without percentage text.
func renderProgressBar(percent float64, width int, styles Styles, bg BgStyle) string {
	percent = clampPercent(percent)
	filled := min(int(float64(width)*percent/100), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return bg.Render(bar, styles.AccentText)
}

// clampPercent ensures percent is between 0 and 100.
func clampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// formatBytes formats bytes as a human-readable size.
func formatBytes(bytes int64) string {
	const (
		gib = 1024 * 1024 * 1024
		mib = 1024 * 1024
		kib = 1024
	)
	switch {
	case bytes >= gib:
		return fmt.Sprintf("%.2f GiB", float64(bytes)/gib)
	case bytes >= mib:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/mib)
	default:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/kib)
	}
}
