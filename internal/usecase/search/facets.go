package search

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
)

// DefaultFacetSize is the number of buckets kept per facet.
const DefaultFacetSize = 20

// FacetFields are the aggregated fields, in response order.
var FacetFields = []filter.Field{filter.Industry, filter.SizeRange, filter.Country}

// facetRequestSize over-fetches so ties at the cap resolve locally.
func facetRequestSize(size int) int { return size * 2 }

// normalizeBuckets drops empty values, merges values equal up to case (keeping
// the first form seen), orders by count desc then value asc ignoring case and
// keeps the first limit buckets.
func normalizeBuckets(in []result.Bucket, limit int) []result.Bucket {
	out := make([]result.Bucket, 0, len(in))
	pos := make(map[string]int, len(in))
	for _, b := range in {
		v := strings.TrimSpace(b.Value)
		if v == "" || b.Count <= 0 {
			continue
		}
		k := strings.ToLower(v)
		if i, ok := pos[k]; ok {
			out[i].Count += b.Count
			continue
		}
		pos[k] = len(out)
		out = append(out, result.Bucket{Value: v, Count: b.Count})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if a, b := strings.ToLower(out[i].Value), strings.ToLower(out[j].Value); a != b {
			return a < b
		}
		return out[i].Value < out[j].Value
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
