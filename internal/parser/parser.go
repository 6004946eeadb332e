package parser

import (
	"io"

	"outpatient-planner/internal/domain/entity"
)

// Parse reads an upload using the parser its file name calls for.
func Parse(filename string, r io.Reader) (*entity.ActivityTable, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if format == FormatXLSX {
		return ParseWorkbook(r)
	}
	return ParseCSV(r)
}
