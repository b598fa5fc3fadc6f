package company

import (
	"cmp"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/kailas-cloud/companysearch/internal/db"
	domcompany "github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
)

// estimateDTO is the stored form of one regional estimate pair.
type estimateDTO struct {
	Current *int64 `json:"current,omitempty"`
	Total   *int64 `json:"total,omitempty"`
}

// buildRecord converts a document into flat index fields.
func buildRecord(doc *domcompany.Document) (db.Record, error) {
	m := map[string]string{
		fieldName:        doc.Name(),
		fieldIndustry:    doc.Industry(),
		fieldDomain:      doc.Domain(),
		fieldIndustryTag: normalize(doc.Industry()),
		fieldCountry:     normalize(doc.Country()),
		fieldSizeRange:   string(doc.SizeRange()),
		fieldLocalityTag: strings.Join(filter.LocalityComponents(doc.Locality()), localitySeparator),
		fieldNameSort:    normalize(doc.Name()),
		fieldCountryName: strings.TrimSpace(doc.Country()),
		fieldLocality:    doc.Locality(),
		fieldLinkedIn:    doc.LinkedInURL(),
	}
	if ord := doc.SizeRange().Ordinal(); ord >= 0 {
		m[fieldSizeRank] = strconv.Itoa(ord)
	}
	if y := doc.YearFounded(); y != nil {
		m[fieldYear] = strconv.Itoa(*y)
	}
	if g := doc.Global(); g.Current != nil {
		m[fieldCurrent] = strconv.FormatInt(*g.Current, 10)
	}
	if g := doc.Global(); g.Total != nil {
		m[fieldTotal] = strconv.FormatInt(*g.Total, 10)
	}

	if regional := doc.RegionalCodes(); len(regional) > 0 {
		dto := make(map[string]estimateDTO, len(regional))
		for code, est := range regional {
			dto[code] = estimateDTO{Current: est.Current, Total: est.Total}
		}
		raw, err := json.Marshal(dto)
		if err != nil {
			return db.Record{}, err
		}
		m[fieldRegional] = string(raw)
	}

	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return db.Record{Key: KeyPrefix + doc.ID(), Fields: m}, nil
}

// parseRecord converts stored index fields back into a document.
// Malformed optional values are treated as missing.
func parseRecord(key string, m map[string]string) domcompany.Document {
	p := domcompany.Props{
		ID:          strings.TrimPrefix(key, KeyPrefix),
		Name:        m[fieldName],
		Domain:      m[fieldDomain],
		Industry:    m[fieldIndustry],
		Country:     cmp.Or(m[fieldCountryName], m[fieldCountry]),
		Locality:    m[fieldLocality],
		LinkedInURL: m[fieldLinkedIn],
		Current:     parseInt64(m[fieldCurrent]),
		Total:       parseInt64(m[fieldTotal]),
	}
	if sr, ok := domcompany.ParseSizeRange(m[fieldSizeRange]); ok {
		p.SizeRange = sr
	}
	if y := parseInt64(m[fieldYear]); y != nil {
		v := int(*y)
		p.YearFounded = &v
	}
	if raw := m[fieldRegional]; raw != "" {
		var dto map[string]estimateDTO
		if err := json.Unmarshal([]byte(raw), &dto); err == nil {
			p.Regional = make(map[string]domcompany.Estimate, len(dto))
			for code, est := range dto {
				p.Regional[code] = domcompany.Estimate{Current: est.Current, Total: est.Total}
			}
		}
	}
	return domcompany.Reconstruct(p)
}

// parseInt64 accepts integers and integral floats ("12" or "12.0").
func parseInt64(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return nil
	}
	v := int64(f)
	return &v
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
