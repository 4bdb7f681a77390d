package ioref

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/agrosense/fertadvisor/pkg/refdata"
)

// Header names recognised in reference CSV files. Matching ignores
// case and surrounding spaces.
var (
	regionColumns = []string{"State/UT", "State", "Region"}
	nameColumns   = []string{"fertilizers", "fertilizer", "name"}
	dosageColumns = []string{"Dosage"}
)

type csvSource struct {
	deficiencyPath string
	dosagePath     string
}

// NewCSV creates a Source that reads two CSV files.
func NewCSV(deficiencyPath, dosagePath string) refdata.Source {
	return &csvSource{
		deficiencyPath: deficiencyPath,
		dosagePath:     dosagePath,
	}
}

// Profiles implements refdata.Source.
func (s *csvSource) Profiles(_ context.Context) (*deficiency.Table, error) {
	header, records, err := readCSV(s.deficiencyPath)
	if err != nil {
		return nil, err
	}

	regionIdx, err := column(header, s.deficiencyPath, regionColumns...)
	if err != nil {
		return nil, err
	}
	nutrIdx := make([]int, nutrient.ProfileSize)
	for i, name := range nutrient.Names() {
		if nutrIdx[i], err = column(header, s.deficiencyPath, name); err != nil {
			return nil, err
		}
	}

	rows := make([]deficiency.Row, 0, len(records))
	labels := make([]string, nutrient.ProfileSize)
	for i, rec := range records {
		for j, idx := range nutrIdx {
			labels[j] = rec[idx]
		}
		row, err := deficiency.ParseRow(rec[regionIdx], labels)
		if err != nil {
			return nil, RecordError(s.deficiencyPath, i+2, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, EmptyTableError(s.deficiencyPath)
	}

	return deficiency.New(rows)
}

// Dosages implements refdata.Source.
func (s *csvSource) Dosages(_ context.Context) (*dosage.Table, error) {
	header, records, err := readCSV(s.dosagePath)
	if err != nil {
		return nil, err
	}

	nameIdx, err := column(header, s.dosagePath, nameColumns...)
	if err != nil {
		return nil, err
	}
	dosageIdx, err := column(header, s.dosagePath, dosageColumns...)
	if err != nil {
		return nil, err
	}

	rows := make([]dosage.Row, len(records))
	for i, rec := range records {
		rows[i] = dosage.Row{Name: rec[nameIdx], Dosage: rec[dosageIdx]}
	}
	return dosage.New(rows), nil
}

// Close implements refdata.Source.
func (s *csvSource) Close() error {
	return nil
}

// readCSV returns the header and the remaining records of a file.
// Every record must have as many fields as the header.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, OpenError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, EmptyTableError(path)
	}
	if err != nil {
		return nil, nil, RecordError(path, 1, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := len(records) + 2
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, nil, RecordError(path, line, err)
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// column finds the index of the first matching header name.
func column(header []string, path string, names ...string) (int, error) {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i, nil
			}
		}
	}
	return 0, HeaderError(path, names[0])
}
