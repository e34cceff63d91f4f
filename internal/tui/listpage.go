package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/nav"
	"github.com/starford/petdesk/internal/petlist"
)

var listColumns = []table.Column{
	{Title: "Name", Width: 16},
	{Title: "Type", Width: 10},
	{Title: "Age", Width: 5},
	{Title: "Weight (kg)", Width: 11},
	{Title: "Caregiver name", Width: 18},
	{Title: "Docile", Width: 6},
}

// ListPage renders the pet list view-model.
type ListPage struct {
	id     uint64
	ctx    context.Context
	vm     *petlist.Model
	nav    nav.Navigator
	styles Styles

	table     table.Model
	search    textinput.Model
	searching bool

	// form is the open edit dialog, nil otherwise.
	form    *Form
	formFor string
}

func newListPage(ctx context.Context, id uint64, store petlist.Store, terms petlist.TermSink, navigator nav.Navigator, styles Styles, logger *slog.Logger) *ListPage {
	t := table.New(
		table.WithColumns(listColumns),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithWidth(80),
	)

	in := textinput.New()
	in.Placeholder = "Search..."
	in.Prompt = ""
	in.CharLimit = 80
	in.Width = 30

	return &ListPage{
		id:     id,
		ctx:    ctx,
		vm:     petlist.New(store, petlist.WithTermSink(terms), petlist.WithLogger(logger)),
		nav:    navigator,
		styles: styles,
		table:  t,
		search: in,
	}
}

func (p *ListPage) Init() tea.Cmd {
	return p.dispatch(petlist.Mount{})
}

func (p *ListPage) capturesText() bool {
	return p.searching || p.form != nil
}

func (p *ListPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listResult:
		if msg.page != p.id {
			return nil
		}
		return p.dispatch(msg.msg)
	case termSettled:
		return p.dispatch(petlist.TermSettled{Term: msg.term})
	case tea.WindowSizeMsg:
		p.table.SetHeight(max(5, msg.Height-12))
		return nil
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *ListPage) dispatch(msg petlist.Msg) tea.Cmd {
	eff := p.vm.Update(msg)
	p.sync()
	return listCmd(p.ctx, p.id, eff)
}

// sync copies view-model state into the widgets.
func (p *ListPage) sync() {
	s := p.vm.State()

	rows := make([]table.Row, len(s.Pets))
	for i, pet := range s.Pets {
		rows[i] = petRow(pet)
	}
	p.table.SetRows(rows)

	if s.Dialog.Kind != petlist.DialogEdit || s.Dialog.Pet == nil {
		p.form, p.formFor = nil, ""
		return
	}
	if p.form == nil || p.formFor != s.Dialog.Pet.ID {
		p.form = NewForm(s.Dialog.Defaults, p.styles)
		p.form.SetPlaceholders(s.Dialog.Defaults)
		p.formFor = s.Dialog.Pet.ID
	}
	p.form.SetErrors(s.Dialog.Errors)
}

func (p *ListPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := p.vm.State()

	switch s.Dialog.Kind {
	case petlist.DialogDelete:
		switch msg.String() {
		case "y", "enter":
			return p.dispatch(petlist.ConfirmDelete{})
		case "n", "esc":
			return p.dispatch(petlist.CloseDelete{})
		}
		return nil
	case petlist.DialogEdit:
		switch msg.String() {
		case "esc":
			return p.dispatch(petlist.CloseEdit{})
		case "enter", "ctrl+s":
			return p.dispatch(petlist.ConfirmEdit{Values: p.form.Values()})
		}
		if p.form == nil || s.Dialog.Busy {
			return nil
		}
		return p.form.Update(msg)
	}

	if p.searching {
		switch msg.String() {
		case "esc", "enter":
			p.searching = false
			p.search.Blur()
			return nil
		}
		before := p.search.Value()
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		if after := p.search.Value(); after != before {
			return tea.Batch(cmd, p.dispatch(petlist.SetTerm{Term: after}))
		}
		return cmd
	}

	switch msg.String() {
	case "/":
		p.searching = true
		return p.search.Focus()
	case "tab":
		return p.dispatch(petlist.SetSearchBy{By: s.By.Next()})
	case "c":
		p.search.SetValue("")
		return p.dispatch(petlist.ClearFilters{})
	case "r":
		return p.dispatch(petlist.Mount{})
	case "x":
		return p.dispatch(petlist.DismissNotice{})
	case "n":
		p.nav.NavigateTo(nav.RouteCreate, nav.Options{})
		return nil
	case "e":
		if pet, ok := p.selected(); ok {
			return p.dispatch(petlist.OpenEdit{Pet: pet})
		}
		return nil
	case "d":
		if pet, ok := p.selected(); ok {
			return p.dispatch(petlist.OpenDelete{ID: pet.ID})
		}
		return nil
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (p *ListPage) selected() (models.Pet, bool) {
	pets := p.vm.State().Pets
	i := p.table.Cursor()
	if i < 0 || i >= len(pets) {
		return models.Pet{}, false
	}
	return pets[i], true
}

func (p *ListPage) View() string {
	s := p.vm.State()
	var b strings.Builder

	b.WriteString(p.styles.Title.Render("Pets"))
	b.WriteString("\n")
	b.WriteString(p.styles.Label.Render(fmt.Sprintf("Search by %s: ", s.By.Label())))
	b.WriteString(p.search.View())
	b.WriteString("\n\n")

	if s.Notice != nil {
		style := p.styles.Warning
		if s.Notice.Level == petlist.NoticeError {
			style = p.styles.Error
		}
		b.WriteString(style.Render(s.Notice.Text))
		b.WriteString(p.styles.Muted.Render("  (x to dismiss)"))
		b.WriteString("\n\n")
	}

	switch {
	case s.Loading:
		b.WriteString(p.styles.Muted.Render("Loading..."))
	case s.Empty():
		b.WriteString(p.styles.Muted.Render("No pets found"))
	default:
		b.WriteString(p.table.View())
	}
	b.WriteString("\n")

	switch s.Dialog.Kind {
	case petlist.DialogDelete:
		b.WriteString("\n")
		b.WriteString(p.deleteDialog(s))
	case petlist.DialogEdit:
		if p.form != nil {
			b.WriteString("\n")
			b.WriteString(p.editDialog(s))
		}
	}

	b.WriteString(p.styles.Help.Render("/ search • tab attribute • c clear • n new • e edit • d delete • r reload • q quit"))
	return b.String()
}

func (p *ListPage) deleteDialog(s petlist.State) string {
	name := s.Dialog.TargetID
	if pet, ok := s.Find(s.Dialog.TargetID); ok {
		name = pet.Name
	}
	body := fmt.Sprintf("Delete %s?\n\n%s", p.styles.Highlight.Render(name), p.styles.Label.Render("y confirm • n cancel"))
	if s.Dialog.Busy {
		body = "Deleting..."
	}
	return p.styles.Dialog.Render(body)
}

func (p *ListPage) editDialog(s petlist.State) string {
	help := "enter save • tab next field • esc cancel"
	if s.Dialog.Busy {
		help = "Saving..."
	}
	return p.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
		p.styles.Title.Render("Edit pet"),
		p.form.View(),
		p.styles.Help.Render(help),
	))
}

func petRow(p models.Pet) table.Row {
	docile := "No"
	if p.IsDocile {
		docile = "Yes"
	}
	return table.Row{
		p.Name,
		p.Type,
		formatNumber(p.Age),
		formatNumber(p.Weight),
		p.CaregiverName,
		docile,
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
