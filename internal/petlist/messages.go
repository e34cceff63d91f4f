package petlist

import (
	"context"

	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/petform"
)

// Msg is any value accepted by Model.Update: a command issued by the user
// interface or the result of an Effect.
type Msg any

// Effect is asynchronous work requested by a transition. The runtime runs it
// off the event loop and passes the returned Msg back to Update.
type Effect func(ctx context.Context) Msg

// Commands.
type (
	// Mount loads the unfiltered list; sent once when the list is shown.
	Mount struct{}

	// SetTerm records the raw search box content and feeds the debouncer.
	SetTerm struct{ Term string }

	// TermSettled carries the search term once it has been stable for the
	// debounce interval.
	TermSettled struct{ Term string }

	// SetSearchBy selects the attribute searches filter on.
	SetSearchBy struct{ By models.SearchAttribute }

	// ClearFilters resets the attribute to name and empties the term.
	ClearFilters struct{}

	OpenDelete    struct{ ID string }
	CloseDelete   struct{}
	ConfirmDelete struct{}

	OpenEdit    struct{ Pet models.Pet }
	CloseEdit   struct{}
	ConfirmEdit struct{ Values petform.Values }

	DismissNotice struct{}
)

// Results of effects.
type (
	listLoaded struct {
		seq  uint64
		pets []models.Pet
		err  error
	}

	deleted struct {
		id  string
		err error
	}

	edited struct {
		id  string
		in  models.PetInput
		err error
	}
)
