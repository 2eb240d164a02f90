package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

// ExportService renders run results for reporting consumers. This is the
// presentation boundary: numeric rounding happens here and nowhere upstream.
type ExportService struct{}

// NewExportService creates a new ExportService
func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteGridCSV writes the scenario grid as CSV. Nil fields (ERROR cells)
// render as empty strings, never as zero.
func (s *ExportService) WriteGridCSV(w io.Writer, run *models.Run) error {
	cw := csv.NewWriter(w)

	header := []string{
		"adoption_rate", "contribution_rate", "status",
		"nhce_acp", "hce_acp",
		"limit_125", "limit_2pct_uncapped", "cap_2x", "limit_2pct_capped", "effective_limit",
		"binding_rule", "margin", "seed_used", "excluded_count",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, sc := range run.Scenarios {
		record := []string{
			formatRate(sc.AdoptionRate),
			formatRate(sc.ContributionRate),
			string(sc.Status),
			formatNullable(sc.NHCEACP),
			formatNullable(sc.HCEACP),
			formatNullable(sc.Limit125),
			formatNullable(sc.Limit2PctUncapped),
			formatNullable(sc.Cap2x),
			formatNullable(sc.Limit2PctCapped),
			formatNullable(sc.EffectiveLimit),
			formatBinding(sc.BindingRule),
			formatNullable(sc.Margin),
			strconv.FormatInt(sc.SeedUsed, 10),
			strconv.Itoa(sc.ExcludedCount),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

func formatBinding(b *models.BindingRule) string {
	if b == nil {
		return ""
	}
	return string(*b)
}
