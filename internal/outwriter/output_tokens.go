package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// WriteTokens outputs the API token list, dispatching on the output format.
func WriteTokens(records []schema.TokenRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTokensCSV(w, records)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTokensTable(w, records)
		}, "Wrote table")
	}
}

func writeTokensTable(w io.Writer, records []schema.TokenRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Token", "Label", "Perm", "Active", "Expires"})

	var data [][]string
	for _, rec := range records {
		data = append(data, []string{
			rec.Token,
			rec.Label,
			rec.Perm,
			strconv.FormatBool(rec.Active),
			rec.ExpiresAt,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// tokensCSVHeader is the column order for CSV token output.
var tokensCSVHeader = []string{"token", "label", "perm", "active", "expires_at", "created_at"}

func writeTokensCSV(w io.Writer, records []schema.TokenRecord) error {
	return writeCSVWithHeader(w, tokensCSVHeader, func(csvWriter *csv.Writer) error {
		for _, rec := range records {
			row := []string{
				rec.Token,
				rec.Label,
				rec.Perm,
				strconv.FormatBool(rec.Active),
				rec.ExpiresAt,
				rec.CreatedAt,
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
