package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawTable is an imported dataset before column inference: a header row
// plus data rows, all as text, in source order.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// ErrNoData signals input that is neither JSON nor CSV-shaped. The import
// as a whole is aborted with this one error; per-row problems never are.
var ErrNoData = errors.New("no importable data found")

// ParseFile reads an import file, choosing the parser from the extension.
// ".csv" and ".txt" go through the delimiter-sniffing CSV path, ".json"
// through the JSON path, ".xlsx" through excelize. Anything else falls
// back to content sniffing via ParsePasted.
func ParseFile(path string) (RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ParseXLSX(path)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return RawTable{}, fmt.Errorf("reading file: %w", err)
		}
		return ParseJSON(data)
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return RawTable{}, fmt.Errorf("reading file: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return RawTable{}, fmt.Errorf("reading file: %w", err)
		}
		return ParsePasted(string(data))
	}
}

// ParseCSV reads delimiter-separated text. The delimiter is sniffed from
// the header line (comma, semicolon or tab — whichever occurs most).
func ParseCSV(r io.Reader) (RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return RawTable{}, fmt.Errorf("reading input: %w", err)
	}

	delim, ok := sniffDelimiter(string(data))
	if !ok {
		return RawTable{}, ErrNoData
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var table RawTable
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return RawTable{}, fmt.Errorf("parsing CSV: %w", err)
		}
		if isBlankRow(record) {
			continue
		}
		if table.Headers == nil {
			table.Headers = record
			continue
		}
		table.Rows = append(table.Rows, record)
	}

	if table.Headers == nil {
		return RawTable{}, ErrNoData
	}
	return table, nil
}

// sniffDelimiter picks the most frequent candidate delimiter on the first
// non-empty line. Returns false when no candidate appears at all, which
// means the input is not CSV-shaped.
func sniffDelimiter(data string) (rune, bool) {
	var line string
	for _, l := range strings.Split(data, "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best := rune(0)
	bestCount := 0
	for _, candidate := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(candidate)); n > bestCount {
			best = candidate
			bestCount = n
		}
	}
	if bestCount == 0 {
		return 0, false
	}
	return best, true
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseJSON reads a JSON array of objects. Header order follows the key
// order of the first object as written in the source (encoding/json maps
// would lose it); keys appearing only in later objects are appended in
// first-seen order.
func ParseJSON(data []byte) (RawTable, error) {
	headers, err := jsonHeaders(data)
	if err != nil {
		return RawTable{}, err
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return RawTable{}, fmt.Errorf("parsing JSON: %w", err)
	}

	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}
	for _, obj := range objects {
		var extra []string
		for k := range obj {
			if !seen[k] {
				extra = append(extra, k)
				seen[k] = true
			}
		}
		// Deterministic order for keys the first object didn't have.
		sort.Strings(extra)
		headers = append(headers, extra...)
	}

	table := RawTable{Headers: headers}
	for _, obj := range objects {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = stringifyJSONValue(obj[h])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// jsonHeaders extracts the keys of the first object in document order by
// walking tokens instead of decoding into a map.
func jsonHeaders(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("parsing JSON: expected array of objects")
	}

	if !dec.More() {
		return nil, nil // empty array
	}
	tok, err = dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("parsing JSON: expected array of objects")
	}

	var headers []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing JSON: malformed object key")
		}
		headers = append(headers, key)
		if err := skipJSONValue(dec); err != nil {
			return nil, err
		}
	}
	return headers, nil
}

// skipJSONValue consumes one value, including nested arrays/objects.
func skipJSONValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil // scalar
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

func stringifyJSONValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

// ParseXLSX reads the first sheet of a spreadsheet: first non-empty row is
// the header, the rest are data rows.
func ParseXLSX(path string) (RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return RawTable{}, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return RawTable{}, ErrNoData
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return RawTable{}, fmt.Errorf("reading sheet: %w", err)
	}

	var table RawTable
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if table.Headers == nil {
			table.Headers = row
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if table.Headers == nil {
		return RawTable{}, ErrNoData
	}
	return table, nil
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	pyLiteralRe     = regexp.MustCompile(`\b(None|True|False)\b`)
)

// ParsePasted handles free-form pasted content: strict JSON first, then a
// permissive near-JSON pass (single quotes, trailing commas, Python-style
// literals), then CSV. Input that survives none of these is reported as
// ErrNoData — one error for the whole paste.
func ParsePasted(text string) (RawTable, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return RawTable{}, ErrNoData
	}

	if strings.HasPrefix(trimmed, "[") {
		if table, err := ParseJSON([]byte(trimmed)); err == nil {
			return table, nil
		}
		if table, err := ParseJSON([]byte(relaxJSON(trimmed))); err == nil {
			return table, nil
		}
	}

	table, err := ParseCSV(strings.NewReader(text))
	if err != nil {
		return RawTable{}, ErrNoData
	}
	return table, nil
}

// relaxJSON rewrites common paste artifacts into strict JSON.
func relaxJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = pyLiteralRe.ReplaceAllStringFunc(s, func(m string) string {
		switch m {
		case "None":
			return "null"
		default:
			return strings.ToLower(m)
		}
	})
	return s
}
