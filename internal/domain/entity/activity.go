package entity

// Column names recognised in uploaded activity data.
const (
	ColumnSpecialty            = "specialty"
	ColumnDate                 = "date"
	ColumnReferrals            = "referrals"
	ColumnFirstAppointments    = "first_appointments"
	ColumnFollowUpAppointments = "follow_up_appointments"
	ColumnDischarges           = "discharges"
)

// ActivityRecord is one row of historical outpatient activity. Numeric cells
// that are empty or non-numeric hold zero; Date keeps the raw cell text and is
// parsed only by the views that need a calendar date.
type ActivityRecord struct {
	Specialty            string  `json:"specialty"`
	Date                 string  `json:"date,omitempty"`
	Referrals            float64 `json:"referrals"`
	FirstAppointments    float64 `json:"first_appointments"`
	FollowUpAppointments float64 `json:"follow_up_appointments"`
	Discharges           float64 `json:"discharges"`
}

// ActivityTable is an ordered collection of records sharing the header they
// were read with. Columns lists the header exactly as uploaded, including
// columns the planner ignores.
type ActivityTable struct {
	Columns []string         `json:"columns"`
	Records []ActivityRecord `json:"records"`
}

func (t *ActivityTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the header contained the named column.
func (t *ActivityTable) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RequireColumns returns a MissingColumnError for the first absent column.
func (t *ActivityTable) RequireColumns(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return &MissingColumnError{Column: name}
		}
	}
	return nil
}

// WithRecords returns a new table with the same header and the given rows.
// The receiver is never modified.
func (t *ActivityTable) WithRecords(records []ActivityRecord) *ActivityTable {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	return &ActivityTable{
		Columns: columns,
		Records: records,
	}
}

// Head returns up to n leading records.
func (t *ActivityTable) Head(n int) []ActivityRecord {
	if t == nil || n <= 0 {
		return []ActivityRecord{}
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	head := make([]ActivityRecord, n)
	copy(head, t.Records[:n])
	return head
}
