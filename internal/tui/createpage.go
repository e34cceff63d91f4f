package tui

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/petdesk/internal/createpet"
	"github.com/starford/petdesk/internal/nav"
	"github.com/starford/petdesk/internal/petform"
)

// CreatePage renders the create-pet form.
type CreatePage struct {
	id     uint64
	ctx    context.Context
	vm     *createpet.Model
	form   *Form
	styles Styles
}

func newCreatePage(ctx context.Context, id uint64, creator createpet.Creator, navigator nav.Navigator, styles Styles, logger *slog.Logger) *CreatePage {
	return &CreatePage{
		id:     id,
		ctx:    ctx,
		vm:     createpet.New(creator, navigator, createpet.WithLogger(logger)),
		form:   NewForm(petform.Values{}, styles),
		styles: styles,
	}
}

func (p *CreatePage) Init() tea.Cmd { return nil }

func (p *CreatePage) capturesText() bool { return true }

func (p *CreatePage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case createResult:
		if msg.page != p.id {
			return nil
		}
		return p.dispatch(msg.msg)
	case tea.KeyMsg:
		if p.vm.Submitting {
			return nil
		}
		switch msg.String() {
		case "esc":
			return p.dispatch(createpet.Cancel{})
		case "enter", "ctrl+s":
			values := p.form.Values()
			for _, key := range petform.Fields {
				p.vm.Update(createpet.SetField{Field: key, Value: values.Get(key)})
			}
			return p.dispatch(createpet.Submit{})
		case "ctrl+x":
			return p.dispatch(createpet.DismissNotice{})
		}
		return p.form.Update(msg)
	}
	return nil
}

func (p *CreatePage) dispatch(msg createpet.Msg) tea.Cmd {
	eff := p.vm.Update(msg)
	p.form.SetErrors(p.vm.Errors)
	return createCmd(p.ctx, p.id, eff)
}

func (p *CreatePage) View() string {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render("Create pet"))
	b.WriteString("\n")
	b.WriteString(p.form.View())
	b.WriteString("\n\n")
	if p.vm.Notice != "" {
		b.WriteString(p.styles.Error.Render(p.vm.Notice))
		b.WriteString("\n")
	}
	if p.vm.Submitting {
		b.WriteString(p.styles.Muted.Render("Creating..."))
	} else {
		b.WriteString(p.styles.Help.Render("enter create • tab next field • esc cancel"))
	}
	return b.String()
}
