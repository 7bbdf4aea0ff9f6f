package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/movierec/internal/session"
)

// View renders the current UI
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🎬 Movie Recommendations"))
	sb.WriteString("\n\n")

	if m.sess.Chat.State() != session.ChatClosed {
		sb.WriteString(m.chatView())
	} else {
		sb.WriteString(m.formView())
		sb.WriteString("\n\n")
		sb.WriteString(m.paneView())
		sb.WriteString("\n\n")
		sb.WriteString(m.gridView(m.gridMovies(), m.focus == focusMovies))
	}

	if m.sess.Loading.Active() {
		sb.WriteString("\n\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(normalTextStyle.Render("Finding movies for you..."))
	}

	if m.status != "" {
		sb.WriteString("\n\n")
		if m.statusErr {
			sb.WriteString(errorStyle.Render(m.status))
		} else {
			sb.WriteString(mutedTextStyle.Render(m.status))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(mutedTextStyle.Render(m.helpView()))

	return lipgloss.NewStyle().
		Width(m.width).
		AlignHorizontal(lipgloss.Center).
		MaxHeight(m.height).
		Render(sb.String())
}

func (m Model) formView() string {
	genre := fmt.Sprintf("Genre: ‹ %s ›", m.genreLabel())

	fields := []string{
		m.field(genre, m.focus == focusGenre),
		m.field(m.actorInput.View(), m.focus == focusActor),
		m.field(m.yearInput.View(), m.focus == focusYear),
	}

	var sb strings.Builder
	sb.WriteString(subtitleStyle.Render("Find a movie:"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, fields...))
	if m.formPending {
		sb.WriteString("\n")
		sb.WriteString(mutedTextStyle.Render("Waiting for the current request..."))
	}
	return sb.String()
}

func (m Model) field(content string, focused bool) string {
	if focused {
		return focusedFieldStyle.Render(content)
	}
	return fieldStyle.Render(content)
}

func (m Model) paneView() string {
	if m.typewriter.Text() == "" {
		return mutedTextStyle.Render("Pick a genre, actor or year and press Enter.")
	}
	return paneStyle.Render(m.viewport.View())
}

// gridView lays the movie cards out in rows that fit the window.
func (m Model) gridView(movies []session.Movie, selectable bool) string {
	if len(movies) == 0 {
		return ""
	}

	perRow := max(m.width/(cardWidth+4), 1)
	var rows []string
	for start := 0; start < len(movies); start += perRow {
		end := min(start+perRow, len(movies))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(movies[i], selectable && i == m.selectedIdx))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(movie session.Movie, selected bool) string {
	title := movie.Title
	if title == "" {
		title = "No Title"
	}
	released := movie.ReleaseDate
	if released == "" {
		released = "Unknown Release Date"
	}
	rating := "Rating: N/A"
	if movie.VoteAverage != nil {
		rating = fmt.Sprintf("Rating: %.1f/10", *movie.VoteAverage)
	}

	var sb strings.Builder
	if selected {
		sb.WriteString(highlightedTextStyle.Render("> " + title))
	} else {
		sb.WriteString(subtitleStyle.Render(title))
	}
	sb.WriteString("\n")
	sb.WriteString(normalTextStyle.Render(released + " • " + rating))
	if movie.Overview != "" {
		sb.WriteString("\n")
		sb.WriteString(normalTextStyle.Render(wrapText(truncate(movie.Overview, 120), cardWidth-4)))
	}
	sb.WriteString("\n")
	sb.WriteString(mutedTextStyle.Render(truncate(m.sess.Posters.URL(movie), cardWidth-4)))

	if selected {
		return selectedCardStyle.Render(sb.String())
	}
	return cardStyle.Render(sb.String())
}

func (m Model) chatView() string {
	var sb strings.Builder
	width := max(m.width-16, 20)

	sb.WriteString(subtitleStyle.Render("Movie Bot"))
	sb.WriteString("\n\n")
	for _, msg := range m.sess.Chat.Messages() {
		text := wrapText(msg.Text, width)
		if msg.Sender == session.SenderUser {
			sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, userBubbleStyle.Render(text)))
		} else {
			sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Left, botBubbleStyle.Render(text)))
		}
		sb.WriteString("\n")
	}
	if m.sess.Chat.State() == session.ChatAwaitingResponse {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(mutedTextStyle.Render("thinking..."))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fieldStyle.Render(m.chatInput.View()))

	if movies := m.sess.Chat.Movies(); m.sess.Chat.ShowMovies() && len(movies) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(m.gridView(movies, false))
	}

	return dialogStyle.Render(sb.String())
}

func (m Model) helpView() string {
	if m.sess.Chat.State() != session.ChatClosed {
		return helpLine(m.keys.Submit, m.keys.CloseChat, m.keys.Skip, m.keys.Quit)
	}
	if m.focus == focusMovies {
		return helpLine(m.keys.Left, m.keys.Right, m.keys.NextField, m.keys.Quit) + " • enter: open poster"
	}
	return helpLine(m.keys.Submit, m.keys.NextField, m.keys.Left, m.keys.OpenChat, m.keys.Skip, m.keys.Quit)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
