package textbookrsa

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// TranscriptParser defines the interface for reading intercepted traffic.
type TranscriptParser interface {
	// ParseTranscript parses a transcript from a source and returns it.
	ParseTranscript(source string) (*Transcript, error)
}

// JSONParser parses transcripts from JSON files.
type JSONParser struct {
	EField     string // Field name for e (default: "e")
	NField     string // Field name for n (default: "n")
	CodesField string // Field name for the code list (default: "codes")
}

// ParseTranscript parses a transcript from a JSON file.
//
// Expected format:
//
//	{"e": 79, "n": "0xca1", "codes": ["3000", 28, ...]}
func (p *JSONParser) ParseTranscript(jsonFile string) (*Transcript, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	defer file.Close()
	return p.Decode(file)
}

// Decode reads one JSON transcript from r.
func (p *JSONParser) Decode(r io.Reader) (*Transcript, error) {
	decoder := jsonIter.NewDecoder(r)
	decoder.UseNumber()

	var item map[string]interface{}
	if err := decoder.Decode(&item); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	eField := fieldOr(p.EField, "e")
	nField := fieldOr(p.NField, "n")
	codesField := fieldOr(p.CodesField, "codes")

	t := &Transcript{}
	for _, f := range []struct {
		name string
		dst  **big.Int
	}{{eField, &t.E}, {nField, &t.N}} {
		v, ok := item[f.name]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidTranscript, "missing %s field", f.name)
		}
		x, err := parseBigInt(v)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", f.name)
		}
		*f.dst = x
	}

	raw, ok := item[codesField].([]interface{})
	if !ok {
		return nil, errors.Wrapf(ErrInvalidTranscript, "missing or non-list %s field", codesField)
	}
	t.Codes = make([]*big.Int, 0, len(raw))
	for i, v := range raw {
		c, err := parseBigInt(v)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse code %d", i)
		}
		t.Codes = append(t.Codes, c)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// CSVParser parses transcripts from CSV files with one code per row.
// The e and n columns must be set on the first row and may be left empty
// or repeated on later rows.
type CSVParser struct {
	ECol    string // Column name for e (default: "e")
	NCol    string // Column name for n (default: "n")
	CodeCol string // Column name for the code (default: "code")
}

// ParseTranscript parses a transcript from a CSV file.
func (p *CSVParser) ParseTranscript(csvFile string) (*Transcript, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	eCol := fieldOr(p.ECol, "e")
	nCol := fieldOr(p.NCol, "n")
	codeCol := fieldOr(p.CodeCol, "code")

	eIdx, nIdx, codeIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case eCol:
			eIdx = i
		case nCol:
			nIdx = i
		case codeCol:
			codeIdx = i
		}
	}
	if eIdx == -1 || nIdx == -1 || codeIdx == -1 {
		return nil, errors.Wrapf(ErrInvalidTranscript, "missing required columns: %s, %s or %s", eCol, nCol, codeCol)
	}

	t := &Transcript{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read record")
		}

		for _, f := range []struct {
			idx int
			dst **big.Int
		}{{eIdx, &t.E}, {nIdx, &t.N}} {
			if f.idx >= len(record) || record[f.idx] == "" {
				continue
			}
			x, err := parseBigInt(record[f.idx])
			if err != nil {
				return nil, errors.Wrapf(err, "row %d: failed to parse %s", row, header[f.idx])
			}
			if *f.dst != nil && (*f.dst).Cmp(x) != 0 {
				return nil, errors.Wrapf(ErrInvalidTranscript, "row %d: %s changes from %v to %v", row, header[f.idx], *f.dst, x)
			}
			*f.dst = x
		}

		if codeIdx >= len(record) {
			return nil, errors.Errorf("row %d: code column index out of range", row)
		}
		c, err := parseBigInt(record[codeIdx])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: failed to parse code", row)
		}
		t.Codes = append(t.Codes, c)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParserForFile picks the CSV parser for .csv files and JSON otherwise.
func ParserForFile(path string) TranscriptParser {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return &CSVParser{}
	}
	return &JSONParser{}
}

type transcriptJSON struct {
	E     string   `json:"e"`
	N     string   `json:"n"`
	Codes []string `json:"codes"`
}

// WriteJSON writes t in the format read by JSONParser, numbers as decimal
// strings.
func WriteJSON(w io.Writer, t *Transcript) error {
	if err := t.Validate(); err != nil {
		return err
	}
	out := transcriptJSON{E: t.E.String(), N: t.N.String(), Codes: make([]string, len(t.Codes))}
	for i, c := range t.Codes {
		out.Codes[i] = c.String()
	}
	enc := jsonIter.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "failed to write JSON")
}

func fieldOr(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

// numberLiteral matches the json.Number produced by UseNumber.
type numberLiteral interface {
	Int64() (int64, error)
	String() string
}

// parseBigInt parses a big integer from a decimal string, a 0x-prefixed
// hex string or a JSON number.
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s, base = s[2:], 16
		}
		z, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, errors.Errorf("invalid number format: %q", v)
		}
		return z, nil

	case numberLiteral:
		z, ok := new(big.Int).SetString(v.String(), 10)
		if !ok {
			return nil, errors.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		z, ok := new(big.Int).SetString(fmt.Sprintf("%.0f", v), 10)
		if !ok {
			return nil, errors.Errorf("invalid number format: %v", v)
		}
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	default:
		return nil, errors.Errorf("unsupported type: %T", val)
	}
}
