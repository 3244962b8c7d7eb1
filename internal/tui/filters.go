package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/store"
)

const (
	fieldType = iota
	fieldStatus
	fieldMinPrice
	fieldMaxPrice
	fieldBedrooms
	fieldBathrooms
	fieldMinSqft
	fieldMaxSqft
	fieldLocation
	fieldCount
)

var filterLabels = [fieldCount]string{
	"Type", "Status", "Min price", "Max price", "Bedrooms", "Bathrooms", "Min sqft", "Max sqft", "Location",
}

var filterHints = [fieldCount]string{
	"apartment, house, commercial, warehouse",
	"available, occupied, maintenance, sold",
	"e.g. 400000", "e.g. 900000", "exact", "exact", "", "", "part of the address",
}

// filterForm edits every search criterion as text. Empty fields are absent.
type filterForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newFilterForm() filterForm {
	var f filterForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = filterHints[i]
		in.CharLimit = 64
		f.inputs[i] = in
	}
	return f
}

func (f *filterForm) open() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = 0
	return f.inputs[0].Focus()
}

func (f *filterForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *filterForm) update(m tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(m)
	return cmd
}

// set loads filters into the inputs.
func (f *filterForm) set(fl store.Filters) {
	vals := [fieldCount]string{
		string(fl.Type), string(fl.Status),
		fmtOpt(fl.MinPrice), fmtOpt(fl.MaxPrice),
		fmtOpt(fl.Bedrooms), fmtOpt(fl.Bathrooms),
		fmtOpt(fl.MinSqft), fmtOpt(fl.MaxSqft),
		fl.Location,
	}
	for i, v := range vals {
		f.inputs[i].SetValue(v)
	}
}

func (f *filterForm) reset() { f.set(store.Filters{}) }

func fmtOpt[T int | int64](p *T) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}

// parse validates the inputs and builds filters.
func (f *filterForm) parse() (store.Filters, error) {
	var out store.Filters
	val := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	if v := strings.ToLower(val(fieldType)); v != "" {
		t := repository.PropertyType(v)
		if !t.Valid() {
			return out, fmt.Errorf("unknown type %q", v)
		}
		out.Type = t
	}
	if v := strings.ToLower(val(fieldStatus)); v != "" {
		s := repository.PropertyStatus(v)
		if !s.Valid() {
			return out, fmt.Errorf("unknown status %q", v)
		}
		out.Status = s
	}
	var err error
	if out.MinPrice, err = parseInt64(val(fieldMinPrice)); err != nil {
		return out, fmt.Errorf("min price: %w", err)
	}
	if out.MaxPrice, err = parseInt64(val(fieldMaxPrice)); err != nil {
		return out, fmt.Errorf("max price: %w", err)
	}
	ints := []struct {
		field int
		dst   **int
	}{
		{fieldBedrooms, &out.Bedrooms},
		{fieldBathrooms, &out.Bathrooms},
		{fieldMinSqft, &out.MinSqft},
		{fieldMaxSqft, &out.MaxSqft},
	}
	for _, it := range ints {
		n, err := parseInt64(val(it.field))
		if err != nil {
			return out, fmt.Errorf("%s: %w", strings.ToLower(filterLabels[it.field]), err)
		}
		if n != nil {
			v := int(*n)
			*it.dst = &v
		}
	}
	out.Location = val(fieldLocation)
	return out, nil
}

func parseInt64(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	s = strings.NewReplacer(",", "", "$", "", "_", "").Replace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number", s)
	}
	if n < 0 {
		return nil, fmt.Errorf("%d is negative", n)
	}
	return &n, nil
}

func (f *filterForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filters") + "\n")
	for i, in := range f.inputs {
		marker := " "
		if i == f.focus {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %-10s %s\n", marker, filterLabels[i], in.View())
	}
	b.WriteString("[tab/↓] Next  [shift+tab/↑] Prev  [enter] Apply  [ctrl+r] Reset  [esc] Cancel")
	return b.String()
}
