package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Entity is anything the generic list can show.
type Entity interface {
	EntityID() string
	EntityName() string
	EntityDescription() string
	EntityStatus() string
}

// Summary is a filterable list of entities. The filter matches name or
// description, ignoring case; status and custom fields are display only.
type Summary[T Entity] struct {
	Title        string
	Description  string
	OnView       func(id string) tea.Cmd
	OnAdd        func() tea.Cmd
	RenderFields func(T) string

	items  []T
	filter textinput.Model
	cursor int
}

func NewSummary[T Entity](title, description string, items []T, onView func(id string) tea.Cmd) *Summary[T] {
	in := textinput.New()
	in.Prompt = "Search: "
	in.Placeholder = "Search " + strings.ToLower(title) + "..."
	return &Summary[T]{
		Title:       title,
		Description: description,
		OnView:      onView,
		items:       items,
		filter:      in,
	}
}

// SetItems replaces the items, keeping the filter text.
func (s *Summary[T]) SetItems(items []T) {
	s.items = items
	s.clampCursor()
}

func (s *Summary[T]) Items() []T { return s.items }

// Filtering reports whether the filter input has focus.
func (s *Summary[T]) Filtering() bool { return s.filter.Focused() }

func (s *Summary[T]) SetFilter(term string) {
	s.filter.SetValue(term)
	s.clampCursor()
}

// Visible returns the items matching the filter, in order.
func (s *Summary[T]) Visible() []T {
	term := strings.ToLower(s.filter.Value())
	if term == "" {
		return s.items
	}
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.EntityName()), term) ||
			strings.Contains(strings.ToLower(it.EntityDescription()), term) {
			out = append(out, it)
		}
	}
	return out
}

func (s *Summary[T]) clampCursor() {
	if n := len(s.Visible()); s.cursor >= n {
		s.cursor = max(n-1, 0)
	}
}

// Update handles a key. It reports whether the key was consumed.
func (s *Summary[T]) Update(m tea.KeyMsg) (bool, tea.Cmd) {
	if s.filter.Focused() {
		switch m.String() {
		case "enter", "esc":
			s.filter.Blur()
			return true, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(m)
		s.clampCursor()
		return true, cmd
	}
	switch m.String() {
	case "/":
		return true, s.filter.Focus()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return true, nil
	case "down", "j":
		if s.cursor < len(s.Visible())-1 {
			s.cursor++
		}
		return true, nil
	case "enter":
		visible := s.Visible()
		if len(visible) == 0 || s.OnView == nil {
			return true, nil
		}
		return true, s.OnView(visible[s.cursor].EntityID())
	case "a":
		if s.OnAdd == nil {
			return false, nil
		}
		return true, s.OnAdd()
	}
	return false, nil
}

// singular drops a trailing "s" for the add button label.
func singular(title string) string {
	return strings.TrimSuffix(title, "s")
}

func (s *Summary[T]) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title))
	b.WriteString("\n")
	if s.Description != "" {
		b.WriteString(subtleStyle.Render(s.Description) + "\n")
	}
	fmt.Fprintf(&b, "%d %s\n", len(s.items), strings.ToLower(s.Title))
	b.WriteString(s.filter.View() + "\n\n")

	visible := s.Visible()
	if len(visible) == 0 {
		fmt.Fprintf(&b, "No %s found\n", strings.ToLower(s.Title))
		b.WriteString(subtleStyle.Render("Try adjusting your search or filter criteria.") + "\n")
	}
	for i, it := range visible {
		marker := " "
		name := it.EntityName()
		if i == s.cursor {
			marker = "▶"
			name = cursorStyle.Render(name)
		}
		line := fmt.Sprintf("%s %s", marker, name)
		if st := it.EntityStatus(); st != "" {
			line += " " + badge(st)
		}
		b.WriteString(line + "\n")
		if d := it.EntityDescription(); d != "" {
			b.WriteString("    " + subtleStyle.Render(d) + "\n")
		}
		if s.RenderFields != nil {
			for _, f := range strings.Split(strings.TrimRight(s.RenderFields(it), "\n"), "\n") {
				if f != "" {
					b.WriteString("    " + f + "\n")
				}
			}
		}
	}
	hints := "[/] Search  [enter] View details"
	if s.OnAdd != nil {
		hints += "  [a] Add " + singular(s.Title)
	}
	b.WriteString("\n" + hints)
	return b.String()
}
