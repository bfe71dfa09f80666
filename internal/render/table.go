package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/mresende/go-weave/pkg/interfaces"
)

// CSVTable converts delimited text files into markdown pipe tables.
type CSVTable struct{}

// NewCSVTable constructs the default tabular-data converter.
func NewCSVTable() *CSVTable {
	return &CSVTable{}
}

// Convert reads the file at path and renders it as a pipe table. A non-empty
// header supplies the column names as a comma separated list; otherwise the
// first record of the file is promoted to the header row.
func (c *CSVTable) Convert(path string, header string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("table: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("table: read %s: %w", path, err)
	}

	var columns []string
	if strings.TrimSpace(header) != "" {
		for _, col := range strings.Split(header, ",") {
			columns = append(columns, strings.TrimSpace(col))
		}
	} else {
		if len(records) == 0 {
			return "", fmt.Errorf("table: %s has no records", path)
		}
		columns = records[0]
		records = records[1:]
	}

	var b strings.Builder
	writeRow(&b, columns)
	separator := make([]string, len(columns))
	for i := range separator {
		separator[i] = "---"
	}
	writeRow(&b, separator)
	for _, record := range records {
		writeRow(&b, record)
	}
	return b.String(), nil
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(cell, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

var _ interfaces.TableConverter = (*CSVTable)(nil)
