package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/petdesk/internal/createpet"
	"github.com/starford/petdesk/internal/petlist"
)

// listResult carries a petlist effect result back to the page that issued
// it. page identifies the page instance, so results from a list page that
// has since been replaced are dropped.
type listResult struct {
	page uint64
	msg  petlist.Msg
}

type createResult struct {
	page uint64
	msg  createpet.Msg
}

// termSettled is a value delivered by the search debouncer.
type termSettled struct {
	term string
}

func listCmd(ctx context.Context, page uint64, eff petlist.Effect) tea.Cmd {
	if eff == nil {
		return nil
	}
	return func() tea.Msg {
		return listResult{page: page, msg: eff(ctx)}
	}
}

func createCmd(ctx context.Context, page uint64, eff createpet.Effect) tea.Cmd {
	if eff == nil {
		return nil
	}
	return func() tea.Msg {
		return createResult{page: page, msg: eff(ctx)}
	}
}

// waitForTerm blocks until the debouncer settles. The App re-arms it after
// every delivery.
func waitForTerm(c <-chan string) tea.Cmd {
	return func() tea.Msg {
		term, ok := <-c
		if !ok {
			return nil
		}
		return termSettled{term: term}
	}
}
