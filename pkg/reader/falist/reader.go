// Package falist provides a streaming reader for fatty-acid tables (CSV or TSV).
package falist

import (
	"bufio"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

//go:embed default_fa_list.csv
var defaultList string

// Column header aliases, compared case-insensitively.
var (
	doubleBondHeaders = []string{"db", "double_bonds", "doublebonds", "n_db"}
	nameHeaders       = []string{"fa", "name", "abbreviation", "abbr"}
	carbonHeaders     = []string{"c", "carbons", "carbon"}
)

// Reader provides streaming access to an FA table. The first line is a header
// naming at least the double-bond column.
type Reader struct {
	csv       *csv.Reader
	lineNum   int
	dbCol     int
	nameCol   int
	carbonCol int
	current   *core.FattyAcid
	err       error
}

// NewReader creates a reader. The delimiter (tab or comma) is taken from the
// header line.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if strings.TrimSpace(header) == "" {
		return nil, fmt.Errorf("FA table is empty, expected a header line")
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	if strings.Contains(header, "\t") {
		cr.Comma = '\t'
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	reader := &Reader{csv: cr, nameCol: -1, carbonCol: -1}
	fields, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	reader.lineNum = 1
	if err := reader.parseHeader(fields); err != nil {
		return nil, err
	}

	return reader, nil
}

// Default returns a reader over the built-in FA list.
func Default() *Reader {
	r, err := NewReader(strings.NewReader(defaultList))
	if err != nil {
		panic(err)
	}
	return r
}

// Next advances to the next fatty acid. Returns false when no more rows or error.
func (r *Reader) Next() bool {
	r.current = nil

	fa, err := r.readFattyAcid()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.current = fa
	return true
}

// FattyAcid returns the current fatty acid.
func (r *Reader) FattyAcid() *core.FattyAcid {
	return r.current
}

// Err returns any error encountered during reading.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads the remaining rows.
func (r *Reader) ReadAll() ([]core.FattyAcid, error) {
	var out []core.FattyAcid
	for r.Next() {
		out = append(out, *r.FattyAcid())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadAll reads a complete FA table.
func ReadAll(rd io.Reader) ([]core.FattyAcid, error) {
	r, err := NewReader(rd)
	if err != nil {
		return nil, err
	}
	return r.ReadAll()
}

// parseHeader locates the columns the reader needs.
func (r *Reader) parseHeader(fields []string) error {
	r.dbCol = -1
	for i, field := range fields {
		key := strings.ToLower(strings.TrimSpace(field))
		switch {
		case r.dbCol < 0 && contains(doubleBondHeaders, key):
			r.dbCol = i
		case r.nameCol < 0 && contains(nameHeaders, key):
			r.nameCol = i
		case r.carbonCol < 0 && contains(carbonHeaders, key):
			r.carbonCol = i
		}
	}

	if r.dbCol < 0 {
		return fmt.Errorf("line 1: no double bond column, expected one of %s", strings.Join(doubleBondHeaders, ", "))
	}
	return nil
}

// readFattyAcid reads rows until a non-empty one is found.
func (r *Reader) readFattyAcid() (*core.FattyAcid, error) {
	for {
		fields, err := r.csv.Read()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("line %d: %w", r.lineNum+1, err)
		}
		line, _ := r.csv.FieldPos(0)
		r.lineNum = line

		if isBlank(fields) {
			continue
		}

		fa := &core.FattyAcid{}

		db, err := r.intField(fields, r.dbCol, "double bond")
		if err != nil {
			return nil, err
		}
		fa.DoubleBonds = db

		if r.carbonCol >= 0 {
			c, err := r.intField(fields, r.carbonCol, "carbon")
			if err != nil {
				return nil, err
			}
			fa.Carbons = c
		}

		if r.nameCol >= 0 && r.nameCol < len(fields) {
			fa.Name = strings.TrimSpace(fields[r.nameCol])
		}

		if err := fa.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
		}

		return fa, nil
	}
}

func (r *Reader) intField(fields []string, col int, what string) (int, error) {
	if col >= len(fields) {
		return 0, fmt.Errorf("line %d: missing %s count", r.lineNum, what)
	}
	raw := strings.TrimSpace(fields[col])
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Spreadsheet exports write integers as "2.0".
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("line %d: invalid %s count '%s'", r.lineNum, what, raw)
		}
		v = int(f)
	}
	return v, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
