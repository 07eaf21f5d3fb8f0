package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/duet/internal/feed"
	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/session"
	"github.com/desertthunder/duet/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	DiscoverView
	MatchListView
	ProfileView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	engine    *tasks.Engine
	sessions  *session.Store
	width     int
	height    int
	inputs    []textinput.Model
	focus     int
	deck      *feed.Deck
	matchList list.Model
	matches   []models.Match
	banner    *models.LikeResult
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.Engine, sessions *session.Store) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	view := LoginView
	if sessions.Authenticated() {
		view = DiscoverView
	}

	return &Model{
		ctx:      ctx,
		view:     view,
		engine:   engine,
		sessions: sessions,
		inputs:   []textinput.Model{email, password},
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts in the discovery feed for a restored session, otherwise at the
// login form.
func (m *Model) Init() tea.Cmd {
	if m.sessions.Authenticated() {
		return tea.Batch(m.fetchUser(), m.buildDeck())
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.matchList.Width() == 0 {
			m.matchList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case DiscoverView:
			return m.handleDiscoverKeys(msg)
		case MatchListView:
			return m.handleMatchListKeys(msg)
		case ProfileView:
			return m.handleProfileKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case loginDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = DiscoverView
		return m, m.buildDeck()

	case userFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case deckReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.deck = msg.deck
		return m, nil

	case matchesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = DiscoverView
			return m, nil
		}
		m.matches = msg.matches
		items := make([]list.Item, len(msg.matches))
		currentUserID := ""
		if user := m.sessions.CurrentUser(); user != nil {
			currentUserID = user.ID
		}
		for i, match := range msg.matches {
			items[i] = matchItem{match: match, currentUserID: currentUserID}
		}
		m.matchList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.matchList.Title = "Matches"
		m.matchList.SetSize(m.width-4, m.height-8)
		m.view = MatchListView
		return m, nil

	case likeSettledMsg:
		if msg.err != nil {
			// The deck already advanced; the failed like is surfaced without
			// rolling back.
			m.err = msg.err
			return m, nil
		}
		if msg.result.Matched {
			m.banner = msg.result
			m.view = ResultView
		}
		return m, nil

	case matchDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.fetchMatches()
	}

	return m.updateChildren(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoginView:
		return m.renderLogin()
	case DiscoverView:
		return m.renderDiscover()
	case MatchListView:
		return m.renderMatchList()
	case ProfileView:
		return m.renderProfile()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.focus = (m.focus + 1) % len(m.inputs)
		cmds := make([]tea.Cmd, len(m.inputs))
		for i := range m.inputs {
			if i == m.focus {
				cmds[i] = m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, tea.Batch(cmds...)
	case "enter":
		email := strings.TrimSpace(m.inputs[0].Value())
		password := m.inputs[1].Value()
		if email == "" || password == "" {
			m.err = fmt.Errorf("email and password are required")
			return m, nil
		}
		return m, m.login(email, password)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleDiscoverKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.like):
		if m.deck == nil {
			return m, nil
		}
		profile, ok := m.deck.Current()
		if !ok {
			return m, nil
		}
		m.deck.Like()
		return m, m.like(profile)
	case key.Matches(msg, m.keys.skip):
		if m.deck != nil {
			m.deck.Skip()
		}
		return m, nil
	case key.Matches(msg, m.keys.matches):
		return m, m.fetchMatches()
	case key.Matches(msg, m.keys.profile):
		m.view = ProfileView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleMatchListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.discover):
		m.view = DiscoverView
		return m, nil
	case key.Matches(msg, m.keys.delete):
		selected := m.matchList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(matchItem); ok {
				return m, m.deleteMatch(item.match.ID)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.matchList, cmd = m.matchList.Update(msg)
	return m, cmd
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.discover):
		m.view = DiscoverView
		return m, nil
	case key.Matches(msg, m.keys.matches):
		return m, m.fetchMatches()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter), key.Matches(msg, m.keys.back):
		m.banner = nil
		m.view = DiscoverView
		return m, nil
	case key.Matches(msg, m.keys.matches):
		m.banner = nil
		return m, m.fetchMatches()
	}
	return m, nil
}

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LoginView:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	case MatchListView:
		m.matchList, cmd = m.matchList.Update(msg)
	}
	return m, cmd
}

func (m *Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{err: m.sessions.Login(m.ctx, email, password)}
	}
}

func (m *Model) fetchUser() tea.Cmd {
	return func() tea.Msg {
		user, err := m.engine.Me(m.ctx)
		return userFetchedMsg{user: user, err: err}
	}
}

func (m *Model) buildDeck() tea.Cmd {
	return func() tea.Msg {
		profiles, err := m.engine.Discover(m.ctx)
		if err != nil {
			return deckReadyMsg{err: err}
		}
		// Likes flow through [Model.like] so the match outcome reaches the
		// banner; the deck itself only tracks position.
		return deckReadyMsg{deck: feed.NewDeck(profiles, nil)}
	}
}

func (m *Model) fetchMatches() tea.Cmd {
	return func() tea.Msg {
		matches, err := m.engine.Matches(m.ctx)
		return matchesFetchedMsg{matches: matches, err: err}
	}
}

func (m *Model) like(profile models.UserProfile) tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.Like(m.ctx, profile.ID)
		return likeSettledMsg{profile: profile, result: result, err: err}
	}
}

func (m *Model) deleteMatch(matchID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.engine.DeleteMatch(m.ctx, matchID)
		return matchDeletedMsg{matchID: matchID, err: err}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("duet")
	form := fmt.Sprintf("%s\n%s", m.inputs[0].View(), m.inputs[1].View())

	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.err.Render(m.err.Error())
	}

	helpView := styles.help.Render("tab: switch field • enter: sign in • ctrl+c: quit")
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, form, errLine, helpView)
}

func (m *Model) renderDiscover() string {
	title := styles.title.Render("Discover")

	if m.err != nil {
		body := styles.err.Render(fmt.Sprintf("Error: %v", m.err))
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.matches, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
	}

	if m.deck == nil {
		return fmt.Sprintf("%s\nLoading candidates...", title)
	}

	profile, ok := m.deck.Current()
	if !ok {
		empty := "No more profiles to show.\n\nCheck back later or review your matches."
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.matches, m.keys.profile, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s", title, empty, helpView)
	}

	header := profile.Name
	if profile.Age > 0 {
		header = fmt.Sprintf("%s, %d", profile.Name, profile.Age)
	}

	var lines []string
	lines = append(lines, styles.ok.Render(header))
	lines = append(lines, styles.score.Render(fmt.Sprintf("%.0f%% compatible", profile.CompatibilityScore)))
	if profile.Bio != "" {
		lines = append(lines, "", profile.Bio)
	}
	if len(profile.CommonArtists) > 0 {
		lines = append(lines, "", "In common: "+strings.Join(profile.CommonArtists, ", "))
	} else if len(profile.TopArtists) > 0 {
		lines = append(lines, "", "Top artists: "+strings.Join(profile.TopArtists, ", "))
	}
	card := styles.card.Render(strings.Join(lines, "\n"))

	position := styles.help.Render(fmt.Sprintf("%d of %d", m.deck.Index()+1, m.deck.Len()))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.like, m.keys.skip, m.keys.matches, m.keys.profile, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, card, position, helpView)
}

func (m *Model) renderMatchList() string {
	helpKeys := []key.Binding{m.keys.delete, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.matchList.View(), helpView)
}

func (m *Model) renderProfile() string {
	title := styles.title.Render("Your Profile")

	user := m.sessions.CurrentUser()
	if user == nil {
		return fmt.Sprintf("%s\nLoading profile...", title)
	}

	var lines []string
	lines = append(lines, styles.ok.Render(user.Name))
	lines = append(lines, user.Email)
	if user.Bio != "" {
		lines = append(lines, "", user.Bio)
	}
	if user.LastfmUsername != "" {
		lines = append(lines, "", "Last.fm: "+user.LastfmUsername)
	} else {
		lines = append(lines, "", styles.warn.Render("Last.fm not connected"))
	}
	card := styles.card.Render(strings.Join(lines, "\n"))

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.discover, m.keys.matches, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, card, helpView)
}

func (m *Model) renderResult() string {
	title := styles.ok.Render("✓ It's a match!")

	var info string
	if m.banner != nil && m.banner.Match != nil {
		currentUserID := ""
		if user := m.sessions.CurrentUser(); user != nil {
			currentUserID = user.ID
		}
		info = fmt.Sprintf("\nYou matched with %s", m.banner.Match.OtherUserID(currentUserID))
		if m.banner.Match.CompatibilityScore != nil {
			info += fmt.Sprintf(" (%.0f%% compatible)", *m.banner.Match.CompatibilityScore)
		}
	}

	helpView := styles.help.Render("enter: keep swiping • m: view matches • q: quit")
	return fmt.Sprintf("%s%s\n\n%s", title, info, helpView)
}
