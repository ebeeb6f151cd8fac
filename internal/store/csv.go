package store

import (
	"encoding/csv"
	"io"
	"strconv"

	"immojobs-engine/internal/domain"
)

// WriteCSV streams the collection as CSV for spreadsheet export.
func WriteCSV(w io.Writer, jobs []domain.Job) error {
	cw := csv.NewWriter(w)

	header := []string{"title", "company", "location", "description", "source", "scraped_date", "url", "estimated_salary", "estimated_fee"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, j := range jobs {
		rec := []string{
			j.Title,
			j.Company,
			j.Location,
			j.Description,
			j.Source,
			j.ScrapedDate,
			j.URL,
			formatAmount(j.EstimatedSalary),
			formatAmount(j.EstimatedFee),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
