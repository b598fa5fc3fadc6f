package chi

import "time"

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"
	ErrorCodeNotFound            ErrorCode = "not_found"
	ErrorCodeConflict            ErrorCode = "conflict"
	ErrorCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// Filters is the explicit filter set of a search or tag snapshot.
type Filters struct {
	Industry  []string `json:"industry,omitempty"`
	SizeRange *string  `json:"size_range,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Locality  *string  `json:"locality,omitempty"`
	YearMin   *int     `json:"year_min,omitempty"`
	YearMax   *int     `json:"year_max,omitempty"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query        string   `json:"query,omitempty"`
	Filters      *Filters `json:"filters,omitempty"`
	CountryScope string   `json:"country_scope,omitempty"`
	Locale       string   `json:"locale,omitempty"`
	Page         int      `json:"page,omitempty"`
	Size         int      `json:"size,omitempty"`
	Sort         string   `json:"sort,omitempty"`
}

// Hit is one company in a search response, with region-projected estimates.
type Hit struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Domain                  string  `json:"domain,omitempty"`
	Industry                string  `json:"industry,omitempty"`
	Country                 string  `json:"country,omitempty"`
	Locality                string  `json:"locality,omitempty"`
	YearFounded             *int    `json:"year_founded,omitempty"`
	SizeRange               string  `json:"size_range,omitempty"`
	LinkedInURL             string  `json:"linkedin_url,omitempty"`
	CurrentEmployeeEstimate *int64  `json:"current_employee_estimate,omitempty"`
	TotalEmployeeEstimate   *int64  `json:"total_employee_estimate,omitempty"`
	CurrentFormatted        *string `json:"current_employee_estimate_formatted,omitempty"`
	TotalFormatted          *string `json:"total_employee_estimate_formatted,omitempty"`
	EstimateSource          string  `json:"estimate_source"`
	Score                   float64 `json:"score"`
}

// Bucket is one facet value and its count.
type Bucket struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Facets holds the buckets of each faceted field. Every key is always present.
type Facets struct {
	Industry  []Bucket `json:"industry"`
	SizeRange []Bucket `json:"size_range"`
	Country   []Bucket `json:"country"`
}

// Meta reports how the request was interpreted.
type Meta struct {
	Page            int      `json:"page"`
	Size            int      `json:"size"`
	Sort            string   `json:"sort"`
	RegionScope     string   `json:"region_scope,omitempty"`
	Locale          string   `json:"locale,omitempty"`
	ImplicitFilters *Filters `json:"implicit_filters,omitempty"`
	Residual        string   `json:"residual_query,omitempty"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Hits   []Hit  `json:"hits"`
	Total  int64  `json:"total"`
	Facets Facets `json:"facets"`
	Meta   Meta   `json:"meta"`
}

// Region is one declared region.
type Region struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Locale string `json:"locale"`
}

// RegionsResponse is the body of GET /regions.
type RegionsResponse struct {
	Regions []Region `json:"regions"`
}

// FilterSnapshot is a saved filter set and region scope.
type FilterSnapshot struct {
	Filters      *Filters `json:"filters,omitempty"`
	CountryScope string   `json:"country_scope,omitempty"`
}

// CreateTagRequest is the body of POST /tags/{user_id}.
type CreateTagRequest struct {
	Name           string          `json:"name"`
	FilterSnapshot *FilterSnapshot `json:"filter_snapshot,omitempty"`
}

// Tag is a saved filter snapshot.
type Tag struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Name           string         `json:"name"`
	FilterSnapshot FilterSnapshot `json:"filter_snapshot"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TagListResponse is the body of GET /tags/{user_id}.
type TagListResponse struct {
	Tags []Tag `json:"tags"`
}

// ApplyTagRequest is the body of POST /tags/{user_id}/{tag_id}/search.
type ApplyTagRequest struct {
	Query  string `json:"query,omitempty"`
	Locale string `json:"locale,omitempty"`
	Page   int    `json:"page,omitempty"`
	Size   int    `json:"size,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
