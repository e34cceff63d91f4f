// Package petlist implements the pet list view-model: the single owner of the
// visible pet collection, the search term and attribute, and the edit and
// delete dialogs.
//
// State changes only through Model.Update, which runs on the caller's event
// loop. Remote work is returned as an Effect that the runtime executes
// elsewhere and feeds back into Update as a result message.
package petlist

import (
	"github.com/starford/petdesk/internal/models"
	"github.com/starford/petdesk/internal/petform"
)

// DialogKind identifies which dialog, if any, is open.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogDelete
	DialogEdit
)

func (k DialogKind) String() string {
	switch k {
	case DialogDelete:
		return "delete"
	case DialogEdit:
		return "edit"
	}
	return "none"
}

// Dialog is the open dialog. At most one is open at a time.
type Dialog struct {
	Kind DialogKind
	// TargetID is the pet pending deletion (DialogDelete).
	TargetID string
	// Pet is the pet being edited (DialogEdit).
	Pet *models.Pet
	// Defaults pre-populate the edit form.
	Defaults petform.Values
	// Errors holds field errors from the last rejected ConfirmEdit.
	Errors petform.FieldErrors
	// Busy is set while the dialog's request is in flight.
	Busy bool
}

// NoticeLevel classifies a user-visible notice.
type NoticeLevel int

const (
	NoticeWarning NoticeLevel = iota
	NoticeError
)

func (l NoticeLevel) String() string {
	if l == NoticeError {
		return "error"
	}
	return "warning"
}

// Notice is the single user-visible channel for failures.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// State is a snapshot of the view-model.
type State struct {
	Pets    []models.Pet
	Loading bool
	Term    string
	By      models.SearchAttribute
	Dialog  Dialog
	Notice  *Notice

	// seq is the sequence number of the most recently issued list request.
	seq uint64
}

// Empty reports the "no results" state: nothing loading and nothing to show.
func (s State) Empty() bool {
	return !s.Loading && len(s.Pets) == 0
}

// Find returns the pet with the given id.
func (s State) Find(id string) (models.Pet, bool) {
	for _, p := range s.Pets {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pet{}, false
}

func initialState() State {
	return State{
		Pets: []models.Pet{},
		By:   models.SearchByName,
	}
}
