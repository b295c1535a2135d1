package importer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/avolkov/footpred/internal/competitions"
	"github.com/avolkov/footpred/internal/pkg/storage"
	"github.com/avolkov/footpred/internal/textparse"
)

const importFixture = "Prem\tPremier League\tBournemouth\tBournemouth\t45%\n" +
	"Tue, 2 Dec 19:30\tDraw\t28%\n" +
	"Vitality Stadium\tEverton\tEverton\t27%\n" +
	"Prem\tPremier League\tFulham\tFulham\t20%\n" +
	"Tue, 2 Dec 19:30\tDraw\t24%\n" +
	"Craven Cottage\tManchester City\tMan City\t56%\n"

func newTestImporter(skipDuplicates bool) (*Importer, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	parser := textparse.New(competitions.Default())
	return New(parser, store, skipDuplicates), store
}

func TestImportCreatesMatches(t *testing.T) {
	imp, store := newTestImporter(true)
	ctx := context.Background()

	res := imp.Import(ctx, importFixture)
	if res.Created != 2 {
		t.Fatalf("Created = %d, want 2", res.Created)
	}
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Errorf("errors = %v, warnings = %v, want none", res.Errors, res.Warnings)
	}

	matches, err := store.ListMatches(ctx, 10)
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("stored %d matches, want 2", len(matches))
	}
	for _, m := range matches {
		if m.TeamA.ID == 0 || m.TeamB.ID == 0 {
			t.Errorf("match %s has unresolved team IDs", m.Name())
		}
	}
}

func TestImportDuplicateWarning(t *testing.T) {
	imp, _ := newTestImporter(true)
	ctx := context.Background()

	first := imp.Import(ctx, importFixture)
	if first.Created != 2 {
		t.Fatalf("first import Created = %d, want 2", first.Created)
	}

	second := imp.Import(ctx, importFixture)
	if second.Created != 0 {
		t.Errorf("second import Created = %d, want 0", second.Created)
	}
	if len(second.Warnings) != 2 {
		t.Fatalf("second import warnings = %v, want 2 entries", second.Warnings)
	}
	wantDate := expectedKickoff(t).Format("2006-01-02")
	if !strings.Contains(second.Warnings[0], "Duplicate skipped") ||
		!strings.Contains(second.Warnings[0], wantDate) {
		t.Errorf("warning = %q, want duplicate notice with date %s", second.Warnings[0], wantDate)
	}
}

func TestImportDuplicatesAllowed(t *testing.T) {
	imp, store := newTestImporter(false)
	ctx := context.Background()

	imp.Import(ctx, importFixture)
	res := imp.Import(ctx, importFixture)
	if res.Created != 2 {
		t.Errorf("Created = %d, want 2 (duplicate check disabled)", res.Created)
	}
	matches, _ := store.ListMatches(ctx, 10)
	if len(matches) != 4 {
		t.Errorf("stored %d matches, want 4", len(matches))
	}
}

func TestImportTeamIdentityReused(t *testing.T) {
	imp, store := newTestImporter(true)
	ctx := context.Background()

	// Everton appears in both fixtures; it must resolve to one identity.
	text := importFixture +
		"Prem\tPremier League\tEverton\tEverton\t40%\n" +
		"Wed, 3 Dec 19:30\tDraw\t30%\n" +
		"Hill Dickinson Stadium\tArsenal\tArsenal\t30%\n"

	res := imp.Import(ctx, text)
	if res.Created != 3 {
		t.Fatalf("Created = %d, want 3", res.Created)
	}

	matches, _ := store.ListMatches(ctx, 10)
	ids := map[string]int64{}
	for _, m := range matches {
		for _, team := range []struct {
			name string
			id   int64
		}{{m.TeamA.Name, m.TeamA.ID}, {m.TeamB.Name, m.TeamB.ID}} {
			if prev, ok := ids[team.name]; ok && prev != team.id {
				t.Errorf("team %s has two IDs: %d and %d", team.name, prev, team.id)
			}
			ids[team.name] = team.id
		}
	}
}

func TestImportEmptyText(t *testing.T) {
	imp, _ := newTestImporter(true)

	res := imp.Import(context.Background(), "nothing parseable here")
	if res.Created != 0 || len(res.Errors) != 0 {
		t.Errorf("Import = %+v, want empty result", res)
	}
}

func TestImportKickoffPreserved(t *testing.T) {
	imp, store := newTestImporter(true)
	ctx := context.Background()

	imp.Import(ctx, importFixture)
	matches, _ := store.ListMatches(ctx, 10)
	want := expectedKickoff(t)
	for _, m := range matches {
		if !m.Kickoff.Equal(want) {
			t.Errorf("kickoff = %v, want %v", m.Kickoff, want)
		}
	}
}

// expectedKickoff mirrors the parser's year resolution for the fixture's
// December date: the board lists upcoming fixtures, and December never sits
// before the current month, so the current year always applies.
func expectedKickoff(t *testing.T) time.Time {
	t.Helper()
	return time.Date(time.Now().Year(), time.December, 2, 19, 30, 0, 0, time.UTC)
}
