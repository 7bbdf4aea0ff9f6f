// Package ui is the terminal front end: a bubbletea program with a filter
// form, a chat dialog, a typewriter recommendation pane and a movie grid.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/movierec/internal/config"
	"github.com/sebastiantruijens/movierec/internal/logging"
	"github.com/sebastiantruijens/movierec/internal/session"
)

// Form focus targets, in tab order
const (
	focusGenre = iota
	focusActor
	focusYear
	focusMovies
	focusCount
)

// Model is the root bubbletea model.
type Model struct {
	ctx  context.Context
	sess *session.Session
	keys keyMap

	focus      int
	genres     []session.Genre
	genreIdx   int // 0 is "Any genre"
	actorInput textinput.Model
	yearInput  textinput.Model
	chatInput  textinput.Model

	spinner    spinner.Model
	viewport   viewport.Model
	typewriter Typewriter
	carousel   Carousel

	formPending bool
	selectedIdx int
	status      string
	statusErr   bool
	width       int
	height      int
}

// NewModel creates the root model around sess. ctx bounds every backend call.
func NewModel(ctx context.Context, sess *session.Session, cfg config.UIConfig) Model {
	actor := newInput("Actor, e.g. Keanu Reeves", 100, 30)
	actor.Prompt = "Actor: "
	year := newInput("e.g. 1999", 4, 10)
	year.Prompt = "Year: "
	chat := newInput("Type your message...", 500, 50)

	// Set up spinner for loading states
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	vp := viewport.New(76, 8)

	// The carousel runs until the first real movies arrive; Init schedules its first tick.
	carousel, _ := NewCarousel(FallbackMovies(), cfg.CarouselVisible, cfg.CarouselInterval).Start()

	return Model{
		ctx:        ctx,
		sess:       sess,
		keys:       defaultKeyMap(),
		focus:      focusGenre,
		genres:     []session.Genre{},
		actorInput: actor,
		yearInput:  year,
		chatInput:  chat,
		spinner:    sp,
		viewport:   vp,
		typewriter: NewTypewriter(cfg.TypingInterval),
		carousel:   carousel,
		width:      80,
		height:     24,
	}
}

func newInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width

	// Create explicit key mappings for Option+Backspace (Alt+Backspace)
	ti.KeyMap.DeleteWordBackward = key.NewBinding(
		key.WithKeys("option+backspace", "alt+backspace"),
	)
	ti.KeyMap.DeleteWordBackward.SetEnabled(true)
	return ti
}

type genresMsg struct {
	genres []session.Genre
}

type filterReplyMsg struct {
	reply session.Reply
}

type chatReplyMsg struct {
	turn  session.Turn
	reply session.Reply
}

type openBrowserMsg struct {
	url string
	err error
}

type clearStatusMsg struct{}

// Init fetches the genre catalog and starts the animations.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchGenres(), m.carousel.tick(), m.spinner.Tick, textinput.Blink)
}

func (m Model) fetchGenres() tea.Cmd {
	ctx, ctrl := m.ctx, m.sess.Controller
	return func() tea.Msg {
		return genresMsg{genres: ctrl.FetchGenres(ctx)}
	}
}

// SubmitFilterForm initiates a filter request. It returns nil while the
// form's previous request is still outstanding.
func (m *Model) SubmitFilterForm(f session.Filter) tea.Cmd {
	if m.formPending {
		return nil
	}
	m.formPending = true

	pending := m.sess.Controller.Initiate()
	ctx := m.ctx
	return func() tea.Msg {
		return filterReplyMsg{reply: pending.ByFilter(ctx, f)}
	}
}

// SubmitChatTurn records text in the chat transcript and initiates the
// query. Blank text, a closed dialog or a turn already in flight return nil.
func (m *Model) SubmitChatTurn(text string) tea.Cmd {
	turn, ok := m.sess.Chat.Submit(text)
	if !ok {
		return nil
	}
	m.chatInput.Reset()

	pending := m.sess.Controller.Initiate()
	ctx := m.ctx
	return func() tea.Msg {
		return chatReplyMsg{turn: turn, reply: pending.ByQuery(ctx, turn.Query)}
	}
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global key handling
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.carousel = m.carousel.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			m.typewriter = m.typewriter.Skip()
			m.refreshPane()
			return m, nil
		}

		if m.sess.Chat.State() != session.ChatClosed {
			cmd = m.handleChatKey(msg)
		} else {
			cmd = m.handleFormKey(msg)
		}
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-6, 20)
		m.viewport.Height = max(msg.Height/3, 4)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case TypeTickMsg:
		m.typewriter, cmd = m.typewriter.Update(msg)
		cmds = append(cmds, cmd)

	case CarouselTickMsg:
		m.carousel, cmd = m.carousel.Update(msg)
		cmds = append(cmds, cmd)

	case genresMsg:
		m.genres = msg.genres
		if m.genreIdx > len(m.genres) {
			m.genreIdx = 0
		}

	case filterReplyMsg:
		m.formPending = false
		cmds = append(cmds, m.applyReply(msg.reply))

	case chatReplyMsg:
		if !m.sess.Chat.Resolve(msg.turn, msg.reply) {
			logging.Debug().Uint64("seq", msg.reply.Seq).Msg("chat reply from a closed dialog dropped")
		}
		cmds = append(cmds, m.applyReply(msg.reply))

	case openBrowserMsg:
		if msg.err != nil {
			logging.Warn().Err(msg.err).Str("url", msg.url).Msg("open browser")
			m.status = fmt.Sprintf("failed to open browser: %v", msg.err)
			m.statusErr = true
		} else {
			m.status = "Opened " + msg.url
			m.statusErr = false
		}
		cmds = append(cmds, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		}))

	case clearStatusMsg:
		m.status = ""
		m.statusErr = false

	default:
		// Cursor blinks
		m.actorInput, cmd = m.actorInput.Update(msg)
		cmds = append(cmds, cmd)
		m.yearInput, cmd = m.yearInput.Update(msg)
		cmds = append(cmds, cmd)
		m.chatInput, cmd = m.chatInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refreshPane()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.CloseChat):
		m.sess.Chat.Close()
		m.chatInput.Blur()
		return m.setFocus(m.focus)
	case key.Matches(msg, m.keys.Submit):
		return m.SubmitChatTurn(m.chatInput.Value())
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.OpenChat):
		m.sess.Chat.Open()
		m.actorInput.Blur()
		m.yearInput.Blur()
		m.chatInput.Reset()
		return m.chatInput.Focus()

	case key.Matches(msg, m.keys.NextField):
		return m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.PrevField):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		step := 1
		if key.Matches(msg, m.keys.Left) {
			step = -1
		}
		switch m.focus {
		case focusGenre:
			n := len(m.genres) + 1
			m.genreIdx = (m.genreIdx + step + n) % n
			return nil
		case focusMovies:
			if n := len(m.gridMovies()); n > 0 {
				m.selectedIdx = (m.selectedIdx + step + n) % n
			}
			return nil
		}

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd

	case key.Matches(msg, m.keys.Submit):
		if m.focus == focusMovies {
			return m.openSelected()
		}
		return m.SubmitFilterForm(m.filter())
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusActor:
		m.actorInput, cmd = m.actorInput.Update(msg)
	case focusYear:
		m.yearInput, cmd = m.yearInput.Update(msg)
	}
	return cmd
}

func (m *Model) setFocus(f int) tea.Cmd {
	m.focus = f
	m.actorInput.Blur()
	m.yearInput.Blur()
	switch f {
	case focusActor:
		return m.actorInput.Focus()
	case focusYear:
		return m.yearInput.Focus()
	}
	return nil
}

// filter builds the form submission. Fields are sent as typed.
func (m Model) filter() session.Filter {
	f := session.Filter{
		ActorName:   m.actorInput.Value(),
		ReleaseYear: m.yearInput.Value(),
	}
	if m.genreIdx > 0 && m.genreIdx <= len(m.genres) {
		id := m.genres[m.genreIdx-1].ID
		f.GenreID = &id
	}
	return f
}

// genreLabel is the selector's current choice.
func (m Model) genreLabel() string {
	if m.genreIdx > 0 && m.genreIdx <= len(m.genres) {
		return m.genres[m.genreIdx-1].Name
	}
	return "Any genre"
}

// applyReply restarts the reveal on the committed text and swaps the grid
// between real movies and the carousel. Superseded replies change nothing.
func (m *Model) applyReply(reply session.Reply) tea.Cmd {
	if !reply.Committed {
		logging.Debug().Uint64("seq", reply.Seq).Msg("superseded reply not displayed")
		return nil
	}

	current := m.sess.Store.Current()
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.typewriter, cmd = m.typewriter.Start(current.Text)
	cmds = append(cmds, cmd)

	if len(current.Movies) > 0 {
		m.carousel = m.carousel.Stop()
	} else {
		m.carousel, cmd = m.carousel.Start()
		cmds = append(cmds, cmd)
	}
	m.selectedIdx = 0
	return tea.Batch(cmds...)
}

// gridMovies is what the grid shows: the committed movies, or the carousel
// window while there are none.
func (m Model) gridMovies() []session.Movie {
	if movies := m.sess.Store.Current().Movies; len(movies) > 0 {
		return movies
	}
	return m.carousel.Window()
}

func (m Model) openSelected() tea.Cmd {
	movies := m.gridMovies()
	if m.selectedIdx >= len(movies) {
		return nil
	}
	url := m.sess.Posters.URL(movies[m.selectedIdx])
	return func() tea.Msg {
		return openBrowserMsg{url: url, err: openBrowser(url)}
	}
}

// refreshPane puts the revealed recommendation text into the viewport.
func (m *Model) refreshPane() {
	text := m.typewriter.View()
	if m.typewriter.Typing() {
		text += "▌"
	}
	m.viewport.SetContent(wrapText(text, m.viewport.Width-2))
	if m.typewriter.Typing() {
		m.viewport.GotoBottom()
	}
}
