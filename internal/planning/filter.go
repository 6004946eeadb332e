// Package planning holds the arithmetic behind the outpatient planner:
// specialty filtering, referral prediction, capacity planning and the
// exploratory views. Every function is pure; tables are never modified.
package planning

import "outpatient-planner/internal/domain/entity"

// Specialties returns the distinct non-empty specialty values in the order
// they first appear, so the default selection is stable for a given file.
func Specialties(table *entity.ActivityTable) []string {
	specialties := []string{}
	if table == nil {
		return specialties
	}
	seen := make(map[string]struct{})
	for _, rec := range table.Records {
		if rec.Specialty == "" {
			continue
		}
		if _, ok := seen[rec.Specialty]; ok {
			continue
		}
		seen[rec.Specialty] = struct{}{}
		specialties = append(specialties, rec.Specialty)
	}
	return specialties
}

// DefaultSpecialty is the first specialty seen in the table.
func DefaultSpecialty(table *entity.ActivityTable) (string, bool) {
	specialties := Specialties(table)
	if len(specialties) == 0 {
		return "", false
	}
	return specialties[0], true
}

// FilterBySpecialty returns a new table holding only rows whose specialty
// equals the selection, in their original order. No match yields an empty
// table rather than an error.
func FilterBySpecialty(table *entity.ActivityTable, specialty string) *entity.ActivityTable {
	records := []entity.ActivityRecord{}
	for _, rec := range table.Records {
		if rec.Specialty == specialty {
			records = append(records, rec)
		}
	}
	return table.WithRecords(records)
}
