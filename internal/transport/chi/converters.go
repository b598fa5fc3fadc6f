package chi

import (
	"github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	"github.com/kailas-cloud/companysearch/internal/domain/search/request"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	"github.com/kailas-cloud/companysearch/internal/domain/search/sortkey"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

func filtersFromAPI(f *Filters) filter.Set {
	if f == nil {
		return filter.Set{}
	}
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

// filtersToAPI returns nil for an empty set so optional JSON fields drop out.
func filtersToAPI(s filter.Set) *Filters {
	if s.IsEmpty() {
		return nil
	}
	f := &Filters{
		Industry: s.Industry,
		Country:  s.Country,
		Locality: s.Locality,
		YearMin:  s.YearMin,
		YearMax:  s.YearMax,
	}
	if s.SizeRange != nil {
		v := s.SizeRange.String()
		f.SizeRange = &v
	}
	return f
}

func searchRequestFromAPI(body SearchRequest) (request.Request, error) {
	return request.New(request.Params{
		Query:       body.Query,
		Filters:     filtersFromAPI(body.Filters),
		RegionScope: body.CountryScope,
		Locale:      body.Locale,
		Page:        body.Page,
		Size:        body.Size,
		Sort:        sortkey.Key(body.Sort),
	})
}

func searchResultToAPI(r *result.SearchResult) SearchResponse {
	hits := make([]Hit, len(r.Hits))
	for i := range r.Hits {
		hits[i] = hitToAPI(&r.Hits[i])
	}
	return SearchResponse{
		Hits:  hits,
		Total: r.Total,
		Facets: Facets{
			Industry:  bucketsToAPI(r, filter.Industry),
			SizeRange: bucketsToAPI(r, filter.SizeRange),
			Country:   bucketsToAPI(r, filter.Country),
		},
		Meta: Meta{
			Page:            r.Meta.Page,
			Size:            r.Meta.Size,
			Sort:            string(r.Meta.Sort),
			RegionScope:     r.Meta.RegionScope,
			Locale:          r.Meta.Locale,
			ImplicitFilters: filtersToAPI(r.Meta.Implicit),
			Residual:        r.Meta.Residual,
		},
	}
}

func hitToAPI(h *result.Hit) Hit {
	d := &h.Document
	return Hit{
		ID:                      d.ID(),
		Name:                    d.Name(),
		Domain:                  d.Domain(),
		Industry:                d.Industry(),
		Country:                 d.Country(),
		Locality:                d.Locality(),
		YearFounded:             d.YearFounded(),
		SizeRange:               d.SizeRange().String(),
		LinkedInURL:             d.LinkedInURL(),
		CurrentEmployeeEstimate: h.Current,
		TotalEmployeeEstimate:   h.Total,
		CurrentFormatted:        h.CurrentFormatted,
		TotalFormatted:          h.TotalFormatted,
		EstimateSource:          string(h.Source),
		Score:                   h.Score,
	}
}

func bucketsToAPI(r *result.SearchResult, f filter.Field) []Bucket {
	out := []Bucket{}
	fc, ok := r.Facet(f)
	if !ok {
		return out
	}
	for _, b := range fc.Buckets {
		out = append(out, Bucket{Value: b.Value, Count: b.Count})
	}
	return out
}

func regionsToAPI(rs []region.Region) RegionsResponse {
	out := make([]Region, len(rs))
	for i, r := range rs {
		out[i] = Region{ID: r.ID(), Label: r.Label(), Locale: r.Locale()}
	}
	return RegionsResponse{Regions: out}
}

func snapshotFromAPI(s *FilterSnapshot) domtag.Snapshot {
	if s == nil {
		return domtag.Snapshot{}
	}
	return domtag.Snapshot{Filters: filtersFromAPI(s.Filters), RegionScope: s.CountryScope}
}

func tagToAPI(t *domtag.Tag) Tag {
	snap := t.Snapshot()
	return Tag{
		ID:     t.ID(),
		UserID: t.UserID(),
		Name:   t.Name(),
		FilterSnapshot: FilterSnapshot{
			Filters:      filtersToAPI(snap.Filters),
			CountryScope: snap.RegionScope,
		},
		CreatedAt: t.CreatedAt(),
	}
}
