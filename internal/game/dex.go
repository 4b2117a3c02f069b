package game

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"pocketpal/internal/species"
)

// DexRow is one line of the dex export. Unseen species are listed without
// their details.
type DexRow struct {
	ID          int    `csv:"id"`
	Name        string `csv:"name"`
	Types       string `csv:"types"`
	Seen        bool   `csv:"seen"`
	Caught      bool   `csv:"caught"`
	EvolvesTo   string `csv:"evolves_to"`
	Requirement string `csv:"requirement"`
}

// DexRows builds the export rows in catalog order
func DexRows(s State, catalog *species.Catalog) []DexRow {
	all := catalog.All()
	rows := make([]DexRow, 0, len(all))
	for _, sp := range all {
		entry := s.Dex[sp.ID]
		row := DexRow{ID: sp.ID, Name: "???", Seen: entry.Seen, Caught: entry.Caught}
		if entry.Seen {
			row.Name = sp.Name
			row.Types = sp.Types.String()
			if target, ok := catalog.Lookup(sp.EvolvesTo); ok && sp.CanEvolve() {
				row.EvolvesTo = target.Name
				row.Requirement = sp.RequirementLabel()
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteDexCSV writes rows with a header line
func WriteDexCSV(w io.Writer, rows []DexRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing dex csv: %w", err)
	}
	return nil
}
