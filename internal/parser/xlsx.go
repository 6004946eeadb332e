package parser

import (
	"fmt"
	"io"

	"outpatient-planner/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads activity data from the first sheet of an .xlsx
// workbook, using the same header rules as ParseCSV.
func ParseWorkbook(r io.Reader) (*entity.ActivityTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &entity.ParseError{Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &entity.ParseError{Err: ErrEmptyFile}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &entity.ParseError{Err: fmt.Errorf("read sheet %q: %w", sheets[0], err)}
	}
	if len(rows) == 0 {
		return nil, &entity.ParseError{Err: ErrEmptyFile}
	}

	builder, err := newTableBuilder(rows[0])
	if err != nil {
		return nil, err
	}

	for i, row := range rows[1:] {
		// excelize drops trailing empty cells, so short rows are padded.
		if len(row) > builder.width {
			return nil, &entity.ParseError{
				Line: i + 2,
				Err:  fmt.Errorf("row has %d fields, header has %d", len(row), builder.width),
			}
		}
		if isBlank(row) {
			continue
		}
		builder.add(row)
	}

	return builder.table, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
