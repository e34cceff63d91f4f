//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/petdesk/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS pets_fts USING fts5(
			id UNINDEXED,
			name,
			type,
			caregiver_name,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, p models.Pet) error {
	_, _ = tx.Exec(`DELETE FROM pets_fts WHERE id = ?`, p.ID)
	_, err := tx.Exec(`INSERT INTO pets_fts (id, name, type, caregiver_name) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Type, p.CaregiverName)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, id string) {
	_, _ = tx.Exec(`DELETE FROM pets_fts WHERE id = ?`, id)
}

// ftsWhere matches every token of q as a prefix.
func ftsWhere(q string) (string, []any) {
	var terms []string
	for _, tok := range strings.Fields(q) {
		terms = append(terms, `"`+strings.ReplaceAll(tok, `"`, `""`)+`"*`)
	}
	return `id IN (SELECT id FROM pets_fts WHERE pets_fts MATCH ?)`, []any{strings.Join(terms, " ")}
}
