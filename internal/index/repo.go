package index

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/starford/petdesk/internal/apperr"
	"github.com/starford/petdesk/internal/models"
)

// PetRow represents a row in the pets table.
type PetRow struct {
	Pet       models.Pet
	Position  int
	Checksum  string
	UpdatedAt time.Time
}

// RowMeta is the part of a row Sync compares against the file.
type RowMeta struct {
	Checksum string
	Position int
}

// Query selects pets. Equals holds exact matches keyed by JSON field name;
// Q is a free-text match over the text fields. Results keep file order.
type Query struct {
	Equals map[string]string
	Q      string
}

// filterColumns maps filterable JSON field names to columns.
var filterColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"type":          "type",
	"caregiverName": "caregiver_name",
	"age":           "age",
	"weight":        "weight",
	"isDocile":      "is_docile",
}

// Filterable reports whether field can be used in Query.Equals.
func Filterable(field string) bool {
	_, ok := filterColumns[field]
	return ok
}

const selectPets = `SELECT id, name, type, age, weight, caregiver_name, is_docile FROM pets`

// UpsertPet inserts or replaces a pet and its FTS entry within a transaction.
func (db *DB) UpsertPet(r PetRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now()
	}
	p := r.Pet
	_, err = tx.Exec(`
		INSERT INTO pets (id, name, type, age, weight, caregiver_name, is_docile, position, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name           = excluded.name,
			type           = excluded.type,
			age            = excluded.age,
			weight         = excluded.weight,
			caregiver_name = excluded.caregiver_name,
			is_docile      = excluded.is_docile,
			position       = excluded.position,
			checksum       = excluded.checksum,
			updated_at     = excluded.updated_at
	`, p.ID, p.Name, p.Type, p.Age, p.Weight, p.CaregiverName, p.IsDocile, r.Position, r.Checksum, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert pet: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// DeletePet removes a pet and its FTS entry.
func (db *DB) DeletePet(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	if _, err := tx.Exec(`DELETE FROM pets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("index: delete pet: %w", err)
	}
	return tx.Commit()
}

// GetPet returns the row for id, or apperr.ErrNotFound.
func (db *DB) GetPet(id string) (*PetRow, error) {
	var (
		r      PetRow
		docile int
	)
	err := db.conn.QueryRow(`
		SELECT id, name, type, age, weight, caregiver_name, is_docile, position, checksum, updated_at
		FROM pets WHERE id = ?
	`, id).Scan(&r.Pet.ID, &r.Pet.Name, &r.Pet.Type, &r.Pet.Age, &r.Pet.Weight, &r.Pet.CaregiverName,
		&docile, &r.Position, &r.Checksum, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("index: get pet: %w", err)
	}
	r.Pet.IsDocile = docile != 0
	return &r, nil
}

// ListPets returns the pets matching q in file order. An unknown field or a
// value that cannot be compared with its column yields apperr.ErrInvalidInput.
func (db *DB) ListPets(q Query) ([]models.Pet, error) {
	var (
		where []string
		args  []any
	)

	fields := make([]string, 0, len(q.Equals))
	for f := range q.Equals {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		col, ok := filterColumns[f]
		if !ok {
			return nil, fmt.Errorf("index: %w: unknown field %q", apperr.ErrInvalidInput, f)
		}
		v, err := filterValue(f, q.Equals[f])
		if err != nil {
			return nil, err
		}
		where = append(where, col+" = ?")
		args = append(args, v)
	}

	if text := strings.TrimSpace(q.Q); text != "" {
		clause, qargs := ftsWhere(text)
		where = append(where, clause)
		args = append(args, qargs...)
	}

	stmt := selectPets
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY position, id"

	rows, err := db.conn.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("index: list pets: %w", err)
	}
	defer rows.Close()

	out := []models.Pet{}
	for rows.Next() {
		var (
			p      models.Pet
			docile int
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Age, &p.Weight, &p.CaregiverName, &docile); err != nil {
			return nil, err
		}
		p.IsDocile = docile != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func filterValue(field, raw string) (any, error) {
	switch field {
	case "age", "weight":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("index: %w: %s must be a number", apperr.ErrInvalidInput, field)
		}
		return f, nil
	case "isDocile":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("index: %w: %s must be true or false", apperr.ErrInvalidInput, field)
		}
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return raw, nil
}

// AllMeta returns checksum and position for every indexed pet.
func (db *DB) AllMeta() (map[string]RowMeta, error) {
	rows, err := db.conn.Query(`SELECT id, checksum, position FROM pets`)
	if err != nil {
		return nil, fmt.Errorf("index: all meta: %w", err)
	}
	defer rows.Close()
	out := make(map[string]RowMeta)
	for rows.Next() {
		var (
			id string
			m  RowMeta
		)
		if err := rows.Scan(&id, &m.Checksum, &m.Position); err != nil {
			return nil, err
		}
		out[id] = m
	}
	return out, rows.Err()
}
