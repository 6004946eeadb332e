package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"outpatient-planner/internal/domain/entity"
)

// ParseCSV reads comma-delimited activity data with a header row. Every
// record must have as many fields as the header.
func ParseCSV(r io.Reader) (*entity.ActivityTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &entity.ParseError{Err: ErrEmptyFile}
		}
		return nil, toParseError(err)
	}

	builder, err := newTableBuilder(header)
	if err != nil {
		return nil, err
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		builder.add(row)
	}

	return builder.table, nil
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &entity.ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &entity.ParseError{Err: fmt.Errorf("read csv: %w", err)}
}
