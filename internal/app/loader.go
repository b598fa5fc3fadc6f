package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/companysearch/internal/domain/company"
)

// maxLineBytes caps one JSONL record.
const maxLineBytes = 1 << 20

// CompanyRecord is the JSONL ingestion shape of one company.
type CompanyRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Domain      string `json:"domain,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Country     string `json:"country,omitempty"`
	Locality    string `json:"locality,omitempty"`
	YearFounded *int   `json:"year_founded,omitempty"`
	SizeRange   string `json:"size_range,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Current     *int64 `json:"current_employee_estimate,omitempty"`
	Total       *int64 `json:"total_employee_estimate,omitempty"`
	// Regional maps a region code to that region's estimates.
	Regional map[string]EstimateRecord `json:"regional_estimates,omitempty"`
}

// EstimateRecord is a regional estimate pair.
type EstimateRecord struct {
	Current *int64 `json:"current,omitempty"`
	Total   *int64 `json:"total,omitempty"`
}

// Document converts the record. An unknown size range is an error.
func (r CompanyRecord) Document() (company.Document, error) {
	if strings.TrimSpace(r.ID) == "" {
		return company.Document{}, fmt.Errorf("id is required")
	}
	var size company.SizeRange
	if r.SizeRange != "" {
		var ok bool
		if size, ok = company.ParseSizeRange(r.SizeRange); !ok {
			return company.Document{}, fmt.Errorf("company %s: unknown size range %q", r.ID, r.SizeRange)
		}
	}
	var regional map[string]company.Estimate
	if len(r.Regional) > 0 {
		regional = make(map[string]company.Estimate, len(r.Regional))
		for code, e := range r.Regional {
			regional[strings.ToLower(code)] = company.Estimate{Current: e.Current, Total: e.Total}
		}
	}
	return company.Reconstruct(company.Props{
		ID:          r.ID,
		Name:        r.Name,
		Domain:      r.Domain,
		Industry:    r.Industry,
		Country:     r.Country,
		Locality:    r.Locality,
		YearFounded: r.YearFounded,
		SizeRange:   size,
		LinkedInURL: r.LinkedInURL,
		Current:     r.Current,
		Total:       r.Total,
		Regional:    regional,
	}), nil
}

// DecodeCompanies reads one CompanyRecord per line. Blank lines are skipped.
func DecodeCompanies(r io.Reader) ([]company.Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	var docs []company.Document
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var rec CompanyRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		doc, err := rec.Document()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read companies: %w", err)
	}
	return docs, nil
}
