package companysearch

import (
	"fmt"

	"github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

func toDocuments(companies []Company) ([]company.Document, error) {
	out := make([]company.Document, len(companies))
	for i := range companies {
		c := &companies[i]
		if c.ID == "" {
			return nil, fmt.Errorf("company %d: id is required", i)
		}
		var size company.SizeRange
		if c.SizeRange != "" {
			var ok bool
			if size, ok = company.ParseSizeRange(string(c.SizeRange)); !ok {
				return nil, fmt.Errorf("company %s: unknown size range %q", c.ID, c.SizeRange)
			}
		}
		var regional map[string]company.Estimate
		if len(c.Regional) > 0 {
			regional = make(map[string]company.Estimate, len(c.Regional))
			for code, e := range c.Regional {
				regional[code] = company.Estimate{Current: e.Current, Total: e.Total}
			}
		}
		out[i] = company.Reconstruct(company.Props{
			ID:          c.ID,
			Name:        c.Name,
			Domain:      c.Domain,
			Industry:    c.Industry,
			Country:     c.Country,
			Locality:    c.Locality,
			YearFounded: c.YearFounded,
			SizeRange:   size,
			LinkedInURL: c.LinkedInURL,
			Current:     c.Estimate.Current,
			Total:       c.Estimate.Total,
			Regional:    regional,
		})
	}
	return out, nil
}

func fromDocument(d *company.Document) Company {
	g := d.Global()
	c := Company{
		ID:          d.ID(),
		Name:        d.Name(),
		Domain:      d.Domain(),
		Industry:    d.Industry(),
		Country:     d.Country(),
		Locality:    d.Locality(),
		YearFounded: d.YearFounded(),
		SizeRange:   SizeRange(d.SizeRange()),
		LinkedInURL: d.LinkedInURL(),
		Estimate:    Estimate{Current: g.Current, Total: g.Total},
	}
	if codes := d.RegionalCodes(); len(codes) > 0 {
		c.Regional = make(map[string]Estimate, len(codes))
		for code, e := range codes {
			c.Regional[code] = Estimate{Current: e.Current, Total: e.Total}
		}
	}
	return c
}

func toFilterSet(f Filters) filter.Set {
	s := filter.Set{
		Industry: f.Industry,
		Country:  f.Country,
		Locality: f.Locality,
		YearMin:  f.YearMin,
		YearMax:  f.YearMax,
	}
	if f.SizeRange != nil {
		sr := company.SizeRange(*f.SizeRange)
		s.SizeRange = &sr
	}
	return s
}

func fromFilterSet(s filter.Set) Filters {
	f := Filters{
		Industry: s.Industry,
		Country:  s.Country,
		Locality: s.Locality,
		YearMin:  s.YearMin,
		YearMax:  s.YearMax,
	}
	if s.SizeRange != nil {
		sr := SizeRange(*s.SizeRange)
		f.SizeRange = &sr
	}
	return f
}

func toRequest(r SearchRequest) (request.Request, error) {
	return request.New(request.Params{
		Query:       r.Query,
		Filters:     toFilterSet(r.Filters),
		RegionScope: r.RegionScope,
		Locale:      r.Locale,
		Page:        r.Page,
		Size:        r.Size,
		Sort:        sortkey.Key(r.Sort),
	})
}

func fromResult(r *result.SearchResult) *SearchResult {
	out := &SearchResult{
		Hits:   make([]Hit, len(r.Hits)),
		Total:  r.Total,
		Facets: make(map[string][]Bucket, len(r.Facets)),
		Meta: Meta{
			Page:        r.Meta.Page,
			Size:        r.Meta.Size,
			Sort:        Sort(r.Meta.Sort),
			RegionScope: r.Meta.RegionScope,
			Locale:      r.Meta.Locale,
			Implicit:    fromFilterSet(r.Meta.Implicit),
			Residual:    r.Meta.Residual,
		},
	}
	for i := range r.Hits {
		h := &r.Hits[i]
		out.Hits[i] = Hit{
			Company:          fromDocument(&h.Document),
			Score:            h.Score,
			Current:          h.Current,
			Total:            h.Total,
			CurrentFormatted: h.CurrentFormatted,
			TotalFormatted:   h.TotalFormatted,
			Source:           EstimateSource(h.Source),
		}
	}
	for _, f := range []filter.Field{filter.Industry, filter.SizeRange, filter.Country} {
		buckets := []Bucket{}
		if fc, ok := r.Facet(f); ok {
			for _, b := range fc.Buckets {
				buckets = append(buckets, Bucket{Value: b.Value, Count: b.Count})
			}
		}
		out.Facets[string(f)] = buckets
	}
	return out
}

func fromRegions(rs []region.Region) []Region {
	out := make([]Region, len(rs))
	for i, r := range rs {
		out[i] = Region{
			ID:      r.ID(),
			Label:   r.Label(),
			Locale:  r.Locale(),
			Country: r.Country(),
			Aliases: r.Aliases(),
		}
	}
	return out
}

func fromTag(t *domtag.Tag) Tag {
	snap := t.Snapshot()
	return Tag{
		ID:     t.ID(),
		UserID: t.UserID(),
		Name:   t.Name(),
		Snapshot: Snapshot{
			Filters:     fromFilterSet(snap.Filters),
			RegionScope: snap.RegionScope,
		},
		CreatedAt: t.CreatedAt(),
	}
}
