//go:build sqlite_fts5

package index

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM pets_fts`).Scan(&count); err != nil {
		t.Fatalf("pets_fts table missing: %v", err)
	}
}

func TestFTS5_PrefixMatch(t *testing.T) {
	db := testDB(t)
	seed(t, db, rex, tom, kiko)

	got, err := db.ListPets(Query{Q: "Ki"})
	if err != nil {
		t.Fatalf("ListPets: %v", err)
	}
	assertIDs(t, got, "c3")
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	seed(t, db, rex)
	_ = db.DeletePet("a1")

	var count int
	_ = db.conn.QueryRow(`SELECT count(*) FROM pets_fts WHERE id = 'a1'`).Scan(&count)
	if count != 0 {
		t.Error("deleted pet still in FTS index")
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	seed(t, db, rex)
	renamed := rex
	renamed.Name = "Bolt"
	_ = db.UpsertPet(PetRow{Pet: renamed, Checksum: "2"})

	got, _ := db.ListPets(Query{Q: "Rex"})
	if len(got) != 0 {
		t.Error("old FTS content should be gone")
	}
	got, _ = db.ListPets(Query{Q: "Bolt"})
	assertIDs(t, got, "a1")
}
