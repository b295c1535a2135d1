package competitions

import "strings"

// Entry is the normalized identity of a recognized competition token.
type Entry struct {
	Canonical string // display name, abbreviations expanded
	Country   string
}

// Table maps competition tokens (case-insensitive, exact) to their canonical
// name and country. It is built once at startup and injected into the text
// parser; extraction never mutates it.
type Table struct {
	entries map[string]Entry
}

// Default returns the table of competition names and abbreviations the board
// sources are known to use.
func Default() *Table {
	england := func(canonical string) Entry { return Entry{Canonical: canonical, Country: "England"} }
	europe := func(canonical string) Entry { return Entry{Canonical: canonical, Country: "Europe"} }

	raw := map[string]Entry{
		"Premier League":   england("Premier League"),
		"Prem":             england("Premier League"),
		"EPL":              england("Premier League"),
		"PL":               england("Premier League"),
		"Championship":     england("Championship"),
		"Champ.":           england("Championship"),
		"League One":       england("League One"),
		"League 1":         england("League One"),
		"League Two":       england("League Two"),
		"League 2":         england("League Two"),
		"FA Cup":           england("FA Cup"),
		"EFL":              england("EFL"),
		"La Liga":          {Canonical: "La Liga", Country: "Spain"},
		"Primera Division": {Canonical: "La Liga", Country: "Spain"},
		"Serie A":          {Canonical: "Serie A", Country: "Italy"},
		"Bundesliga":       {Canonical: "Bundesliga", Country: "Germany"},
		"Ligue 1":          {Canonical: "Ligue 1", Country: "France"},
		"MLS":              {Canonical: "MLS", Country: "USA"},
		"Champions League": europe("Champions League"),
		"Europa League":    europe("Europa League"),
	}

	entries := make(map[string]Entry, len(raw))
	for token, e := range raw {
		entries[normalize(token)] = e
	}
	return &Table{entries: entries}
}

// Lookup resolves a single token to its competition entry.
func (t *Table) Lookup(token string) (Entry, bool) {
	e, ok := t.entries[normalize(token)]
	return e, ok
}

// Contains reports whether the token is a known competition name.
func (t *Table) Contains(token string) bool {
	_, ok := t.Lookup(token)
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
