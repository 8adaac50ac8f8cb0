// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/config"
	"todos/internal/todo"
)

// RunTUI starts the read-only store viewer. The store file is reloaded
// every second, so edits made by other processes show up live.
func RunTUI(ctx context.Context, cfg *config.Config) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(cfg)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// itemFilter selects which items the list view shows.
type itemFilter int

const (
	filterAll itemFilter = iota
	filterPending
	filterDone
)

func (f itemFilter) String() string {
	switch f {
	case filterPending:
		return "pending"
	case filterDone:
		return "done"
	default:
		return "all"
	}
}

type tuiModel struct {
	cfg          *config.Config
	store        *todo.Store
	list         *todo.List
	loadErr      error
	filter       itemFilter
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(cfg *config.Config) *tuiModel {
	return &tuiModel{
		cfg:          cfg,
		store:        todo.NewStore(cfg.StoreFile),
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = filterPending
			return m, nil
		case "2":
			m.filter = filterDone
			return m, nil
		case "0", "a":
			m.filter = filterAll
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	// Show help screen if enabled
	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	// Show filter indicator
	if m.filter != filterAll {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}

	if m.loadErr != nil {
		b.WriteString("Error loading todos file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.list == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.list)
	writeItems(&b, m.list, m.filter)
	writeRecent(&b, m.list)
	writeConfig(&b, m.cfg, m.store)
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	list, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		m.list = nil
		return
	}
	m.loadErr = nil
	m.list = list
}

func writeTitle(b *strings.Builder) {
	title := "Todos"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, list *todo.List) {
	pending, done := list.Counts()
	b.WriteString("Overview\n\n")
	b.WriteString(fmt.Sprintf("  Total: %d  Pending: %d  Done: %d\n\n",
		list.Len(), pending, done))
}

func writeItems(b *strings.Builder, list *todo.List, f itemFilter) {
	b.WriteString("Items\n\n")
	shown := 0
	for i, item := range list.Items {
		if f == filterPending && item.Done {
			continue
		}
		if f == filterDone && !item.Done {
			continue
		}
		b.WriteString(formatItem(i, item))
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		b.WriteString("  Nothing to show.\n")
	}
	b.WriteString("\n")
}

func writeRecent(b *strings.Builder, list *todo.List) {
	b.WriteString("Recently Completed\n\n")

	sorted := make([]todo.Item, len(list.Items))
	copy(sorted, list.Items)
	sort.Slice(sorted, func(i, j int) bool {
		left := sorted[i].UpdatedAt
		right := sorted[j].UpdatedAt
		if left == nil && right == nil {
			return false
		}
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.After(*right)
	})

	shown := 0
	for _, item := range sorted {
		if !item.Done {
			continue
		}
		b.WriteString(fmt.Sprintf("  [x] %s\n", item.Text))
		shown++
		if shown >= 5 {
			break
		}
	}
	if shown == 0 {
		b.WriteString("  No completed items yet.\n")
	}
	b.WriteString("\n")
}

func writeConfig(b *strings.Builder, cfg *config.Config, store *todo.Store) {
	b.WriteString("Configuration\n\n")
	b.WriteString(fmt.Sprintf("  Store File: %s (%s)\n", store.Path, store.Codec.Name()))
	if cfg.JournalFile != "" {
		b.WriteString(fmt.Sprintf("  Journal:    %s\n", cfg.JournalFile))
	} else {
		b.WriteString("  Journal:    disabled\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show pending items only\n")
	b.WriteString("  2            Show done items only\n")
	b.WriteString("  0, a         Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

func formatItem(index int, item todo.Item) string {
	icon := " "
	if item.Done {
		icon = "x"
	}
	return fmt.Sprintf("  %3d [%s] %s", index, icon, item.Text)
}

// IsTTY returns true if stdout is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
