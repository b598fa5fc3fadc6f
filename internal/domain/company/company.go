package company

// Estimate is an employee-count estimate pair. Either side may be absent.
type Estimate struct {
	Current *int64
	Total   *int64
}

// IsZero reports whether neither side is present.
func (e Estimate) IsZero() bool { return e.Current == nil && e.Total == nil }

// Props carries the stored attributes of a company for hydration.
type Props struct {
	ID          string
	Name        string
	Domain      string
	Industry    string
	Country     string
	Locality    string
	YearFounded *int
	SizeRange   SizeRange
	LinkedInURL string
	Current     *int64
	Total       *int64
	// Regional maps a region code to that region's estimate pair.
	Regional map[string]Estimate
}

// Document is an indexed company. Owned by ingestion, read-only here.
type Document struct {
	id          string
	name        string
	domain      string
	industry    string
	country     string
	locality    string
	yearFounded *int
	sizeRange   SizeRange
	linkedInURL string
	global      Estimate
	regional    map[string]Estimate
}

// Reconstruct creates a Document from stored attributes without validation.
func Reconstruct(p Props) Document {
	var regional map[string]Estimate
	if len(p.Regional) > 0 {
		regional = make(map[string]Estimate, len(p.Regional))
		for code, est := range p.Regional {
			if !est.IsZero() {
				regional[code] = est
			}
		}
	}
	return Document{
		id:          p.ID,
		name:        p.Name,
		domain:      p.Domain,
		industry:    p.Industry,
		country:     p.Country,
		locality:    p.Locality,
		yearFounded: p.YearFounded,
		sizeRange:   p.SizeRange,
		linkedInURL: p.LinkedInURL,
		global:      Estimate{Current: p.Current, Total: p.Total},
		regional:    regional,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Name returns the company name.
func (d *Document) Name() string { return d.name }

// Domain returns the company web domain.
func (d *Document) Domain() string { return d.domain }

// Industry returns the indexed industry value.
func (d *Document) Industry() string { return d.industry }

// Country returns the registration country.
func (d *Document) Country() string { return d.country }

// Locality returns the "city, state, country" locality string.
func (d *Document) Locality() string { return d.locality }

// YearFounded returns the founding year, nil when unknown.
func (d *Document) YearFounded() *int { return d.yearFounded }

// SizeRange returns the size bucket.
func (d *Document) SizeRange() SizeRange { return d.sizeRange }

// LinkedInURL returns the company LinkedIn URL.
func (d *Document) LinkedInURL() string { return d.linkedInURL }

// Global returns the global employee estimates.
func (d *Document) Global() Estimate { return d.global }

// Regional returns the estimate pair for a region code.
func (d *Document) Regional(code string) (Estimate, bool) {
	est, ok := d.regional[code]
	return est, ok
}

// RegionalCodes returns the region codes carrying an estimate.
func (d *Document) RegionalCodes() map[string]Estimate { return d.regional }

// Props returns the document's attributes.
func (d *Document) Props() Props {
	return Props{
		ID: d.id, Name: d.name, Domain: d.domain, Industry: d.industry,
		Country: d.country, Locality: d.locality, YearFounded: d.yearFounded,
		SizeRange: d.sizeRange, LinkedInURL: d.linkedInURL,
		Current: d.global.Current, Total: d.global.Total, Regional: d.regional,
	}
}
