// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     explorer
// Description: Bubbletea model showing a parse tree and its diagnostics
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/thing/foundation/thing"
	"github.com/msto63/thing/foundation/thing/diag"
	"github.com/msto63/thing/foundation/thing/lexer"
	"github.com/msto63/thing/foundation/thing/parser"
	"github.com/msto63/thing/pkg/core/version"
)

// Config holds explorer configuration
type Config struct {
	// Title shown in the header, usually the file name
	Title string

	// Source is the initial text
	Source string

	// Load re-reads the source for "r" and SourceChangedMsg; nil disables reloading
	Load func() (string, error)

	Mode   thing.Mode
	Engine *thing.Engine
}

// Model is the main Bubbletea model for the explorer
type Model struct {
	width  int
	height int
	ready  bool

	showDiagnostics bool
	viewport        viewport.Model

	engine *thing.Engine
	mode   thing.Mode
	title  string
	load   func() (string, error)

	result *thing.Result
	err    error
}

// New creates a new explorer model and parses the initial source
func New(cfg Config) Model {
	if cfg.Engine == nil {
		cfg.Engine = thing.NewEngine(thing.Options{})
	}
	if cfg.Mode == "" {
		cfg.Mode = thing.ModeProgram
	}
	if cfg.Title == "" {
		cfg.Title = "<input>"
	}

	m := Model{
		showDiagnostics: true,
		engine:          cfg.Engine,
		mode:            cfg.Mode,
		title:           cfg.Title,
		load:            cfg.Load,
	}
	m.analyse(cfg.Source)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SourceChangedMsg:
		return m, m.reload()

	case sourceLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.analyse(msg.source)
		}
		m.resize()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		// Toggle diagnostics panel
		case "d":
			m.showDiagnostics = !m.showDiagnostics
			m.resize()
			return m, nil

		case "r":
			return m, m.reload()

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

// reload returns a command re-reading the source
func (m Model) reload() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		source, err := load()
		return sourceLoadedMsg{source: source, err: err}
	}
}

// analyse parses source and keeps the result
func (m *Model) analyse(source string) {
	result, err := m.engine.Parse(context.Background(), source, m.mode)
	if err != nil {
		m.err = err
		return
	}
	m.result = result
	m.err = nil
}

// resize lays out the viewport below the header and above the panels
func (m *Model) resize() {
	if m.width == 0 {
		return
	}

	headerHeight := 4
	footerHeight := 2
	if m.showDiagnostics {
		footerHeight += lipgloss.Height(m.renderDiagnostics())
	}
	height := m.height - headerHeight - footerHeight
	if height < 3 {
		height = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.width-4, height)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = m.width - 4
		m.viewport.Height = height
	}
	m.viewport.SetContent(strings.Join(m.treeLines(), "\n"))
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading explorer..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(TreePanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	if m.showDiagnostics {
		if panel := m.renderDiagnostics(); panel != "" {
			b.WriteString(panel)
			b.WriteString("\n")
		}
	}
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	var status string
	switch {
	case m.err != nil:
		status = StatusErrorStyle.Render(m.err.Error())
	case m.result.HasErrors():
		status = StatusErrorStyle.Render(diag.Summary(m.result.Diagnostics))
	default:
		status = StatusOKStyle.Render("no errors")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		HelpDescStyle.Render(" v"+version.Explorer+"  "),
		m.title,
		HelpDescStyle.Render(fmt.Sprintf("  [%s]  ", m.mode)),
		status,
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) renderDiagnostics() string {
	if m.result == nil || !m.result.HasErrors() {
		return ""
	}
	text := strings.TrimRight(diag.RenderString(m.result.Diagnostics, diag.Options{Color: true}), "\n")
	return DiagnosticsPanelStyle.Width(m.width - 2).Render(text)
}

func (m Model) renderHelpBar() string {
	hints := []string{
		RenderKeyHint("q", "quit"),
		RenderKeyHint("d", "diagnostics"),
		RenderKeyHint("g/G", "top/bottom"),
	}
	if m.load != nil {
		hints = append(hints, RenderKeyHint("r", "reload"))
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(hints, "  "))
}

// treeLines renders one line per node, error nodes highlighted
func (m Model) treeLines() []string {
	if m.result == nil {
		return nil
	}
	var lines []string
	parser.Walk(m.result.Root, func(n *parser.Node, depth int) bool {
		lines = append(lines, strings.Repeat("  ", depth)+renderNode(n))
		return true
	})
	return lines
}

// renderNode renders the label of a single node
func renderNode(n *parser.Node) string {
	label := fmt.Sprintf("'%s'", n.Token.Match)

	if n.IsError() {
		text := label + " !" + n.Err.String()
		if n.Err == parser.ErrWrongTokenType {
			text += " expected " + n.Expected.String()
		}
		return NodeErrorStyle.Render(text)
	}

	category := NodeCategoryStyle.Render(" " + n.Token.Category.Name())
	switch {
	case n.Token.Match == "":
		return NodeSyntheticStyle.Render("(root)")
	case n.Token.Category == lexer.Keyword:
		return NodeKeywordStyle.Render(label) + category
	case len(n.Children) > 0:
		return NodeOperatorStyle.Render(label) + category
	default:
		return NodeLeafStyle.Render(label) + category
	}
}
