package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// ParseCensusCSV parses a census import CSV into Participant records.
// Required columns: employee_id, compensation, is_hce
// Optional columns: dob, hire_date, termination_date, pre_tax, after_tax,
// roth, match, non_elective (missing columns and empty cells default to
// null dates / zero amounts).
// Dates are YYYY-MM-DD. An empty dob or hire_date is legal here; the
// eligibility pass turns it into a tagged exclusion, not a parse failure.
func ParseCensusCSV(r io.Reader) ([]models.Participant, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"employee_id", "compensation", "is_hce"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	optionalCol := func(record []string, col string) string {
		idx, ok := colIdx[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	seen := make(map[string]bool)
	var participants []models.Participant
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		employeeID := strings.TrimSpace(record[colIdx["employee_id"]])
		if employeeID == "" {
			return nil, fmt.Errorf("row %d: employee_id is empty", rowNum)
		}
		if seen[employeeID] {
			return nil, fmt.Errorf("row %d: duplicate employee_id %q", rowNum, employeeID)
		}
		seen[employeeID] = true

		compensation, err := parseAmount(record[colIdx["compensation"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid compensation: %w", rowNum, err)
		}

		isHCE, err := parseBool(record[colIdx["is_hce"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid is_hce: %w", rowNum, err)
		}

		p := models.Participant{
			EmployeeID:   employeeID,
			Compensation: compensation,
			IsHCE:        isHCE,
		}

		for col, dst := range map[string]**time.Time{
			"dob":              &p.DOB,
			"hire_date":        &p.HireDate,
			"termination_date": &p.TerminationDate,
		} {
			d, err := parseDate(optionalCol(record, col))
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s: %w", rowNum, col, err)
			}
			*dst = d
		}

		for col, dst := range map[string]*float64{
			"pre_tax":      &p.PreTax,
			"after_tax":    &p.AfterTax,
			"roth":         &p.Roth,
			"match":        &p.Match,
			"non_elective": &p.NonElective,
		} {
			raw := optionalCol(record, col)
			if raw == "" {
				continue
			}
			v, err := parseAmount(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s: %w", rowNum, col, err)
			}
			*dst = v
		}

		participants = append(participants, p)
	}

	return participants, nil
}

func parseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("must be non-negative, got %g", v)
	}
	return v, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", raw)
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", raw)
	}
	return &d, nil
}
