package content

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Column names of a stimulus sheet. The sheet keeps the original lab layout,
// so the passage column is named passage_hr.
var requiredColumns = []string{
	"item_id", "item", "condition", "first_mention", "recent_mention", "knowledge_cue",
	"start", "end", "passage_hr", "critical_q", "critical_a",
	"attn_check_1_q", "attn_check_1_a", "attn_check_2_q", "attn_check_2_a",
}

// LoadFile reads a stimulus file, picking the decoder from its extension.
func LoadFile(path string) ([]ItemContent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stimuli file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return LoadCSV(f)
	case ".xlsx":
		return LoadExcel(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported stimuli format %q", ext)
	}
}

func LoadCSV(reader io.Reader) ([]ItemContent, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return parseRows(records)
}

// LoadExcel reads items from the first sheet of an XLSX workbook.
func LoadExcel(reader io.Reader) ([]ItemContent, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	return parseRows(rows)
}

// LoadYAML reads a list of items keyed by the same names as the CSV columns,
// except that the passage is under "passage".
func LoadYAML(reader io.Reader) ([]ItemContent, error) {
	var doc struct {
		Items []ItemContent `yaml:"items"`
	}
	if err := yaml.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML stimuli: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("YAML stimuli contain no items")
	}
	return doc.Items, nil
}

func parseRows(rows [][]string) ([]ItemContent, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("stimuli must have header row and at least one data row, got %d rows", len(rows))
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range requiredColumns {
		if _, exists := headerMap[col]; !exists {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	items := make([]ItemContent, 0, len(rows)-1)
	for rowIndex, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		item, err := parseRow(row, headerMap)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIndex+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseRow(row []string, headerMap map[string]int) (ItemContent, error) {
	get := func(col string) string {
		idx := headerMap[col]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var number int
	if raw := strings.TrimSpace(get("item")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return ItemContent{}, fmt.Errorf("invalid item number %q: %w", raw, err)
		}
		number = n
	}

	return ItemContent{
		ItemID:             strings.TrimSpace(get("item_id")),
		Item:               number,
		Condition:          get("condition"),
		FirstMention:       get("first_mention"),
		RecentMention:      get("recent_mention"),
		KnowledgeCue:       get("knowledge_cue"),
		Start:              get("start"),
		End:                get("end"),
		Passage:            get("passage_hr"),
		CriticalQuestion:   get("critical_q"),
		CriticalAnswer:     get("critical_a"),
		AttnCheck1Question: get("attn_check_1_q"),
		AttnCheck1Answer:   get("attn_check_1_a"),
		AttnCheck2Question: get("attn_check_2_q"),
		AttnCheck2Answer:   get("attn_check_2_a"),
	}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
