//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"strings"

	"github.com/starford/petdesk/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; full-text queries use LIKE on the pets table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ models.Pet) error {
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// ftsWhere matches q as a case-insensitive substring of any text field.
func ftsWhere(q string) (string, []any) {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	like := "%" + r.Replace(q) + "%"
	return `(name LIKE ? ESCAPE '\' OR type LIKE ? ESCAPE '\' OR caregiver_name LIKE ? ESCAPE '\')`,
		[]any{like, like, like}
}
