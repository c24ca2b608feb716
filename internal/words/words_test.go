package words

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadNormalizes(t *testing.T) {
	in := "# header\nleben\n  Gerne  \n\nKAMEL\n# trailing\nleben\n"
	got, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff([]string{"LEBEN", "GERNE", "KAMEL", "LEBEN"}, got); diff != "" {
		t.Errorf("Read mismatch (-want +got): %s", diff)
	}
}

func TestEmbeddedDictionaryIsUniform(t *testing.T) {
	list, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded failed: %v", err)
	}
	if len(list) < 100 {
		t.Fatalf("embedded dictionary has %d words", len(list))
	}
	for _, w := range list {
		if len(w) != 5 || strings.ToUpper(w) != w {
			t.Errorf("embedded word %q is not five uppercase letters", w)
		}
	}
	st := Summarize(list)
	if st.Words != len(list) || st.Distinct != len(list) || st.Length != 5 {
		t.Errorf("Summarize = %+v", st)
	}
}

func TestLoadPrefersFileOverEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("lesen\nnebel\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := Source{File: path}
	got, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff([]string{"LESEN", "NEBEL"}, got); diff != "" {
		t.Errorf("Load mismatch (-want +got): %s", diff)
	}
	if src.String() != "file:"+path {
		t.Errorf("String() = %s", src.String())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(context.Background(), Source{File: filepath.Join(t.TempDir(), "nope.txt")}); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestSQLiteImportAndLoad(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "data", "words.db")

	db, err := OpenDB(dsn)
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	// second run is a no-op
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}

	if err := Import(ctx, db, "test", []string{"KAMEL", "LEBEN", "KAMEL"}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if err := Import(ctx, db, "test2", []string{"RESTE", "BEBEN", "RESTE", "LEBEN"}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	got, err := LoadSQLite(ctx, db)
	if err != nil {
		t.Fatalf("LoadSQLite failed: %v", err)
	}
	if diff := cmp.Diff([]string{"RESTE", "BEBEN", "RESTE", "LEBEN"}, got); diff != "" {
		t.Errorf("LoadSQLite mismatch (-want +got): %s", diff)
	}
	if src, err := ImportedFrom(ctx, db); err != nil || src != "test2" {
		t.Errorf("ImportedFrom = %q, %v", src, err)
	}
	db.Close()

	got, err = Load(ctx, Source{DB: dsn, File: "ignored.txt"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("Load from sqlite returned %v", got)
	}
}

func TestImportedFromEmpty(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if src, err := ImportedFrom(ctx, db); err != nil || src != "" {
		t.Errorf("ImportedFrom = %q, %v", src, err)
	}
}
