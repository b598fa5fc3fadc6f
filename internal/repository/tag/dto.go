package tag

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

type filtersDTO struct {
	Industry  []string `json:"industry,omitempty"`
	SizeRange *string  `json:"size_range,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Locality  *string  `json:"locality,omitempty"`
	YearMin   *int     `json:"year_min,omitempty"`
	YearMax   *int     `json:"year_max,omitempty"`
}

type snapshotDTO struct {
	Filters     filtersDTO `json:"filters"`
	RegionScope string     `json:"country_scope,omitempty"`
}

type tagDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Snapshot  snapshotDTO `json:"filter_snapshot"`
	CreatedAt time.Time   `json:"created_at"`
}

func toSnapshotDTO(s domtag.Snapshot) snapshotDTO {
	f := s.Filters
	dto := snapshotDTO{
		Filters: filtersDTO{
			Industry: f.Industry,
			Country:  f.Country,
			Locality: f.Locality,
			YearMin:  f.YearMin,
			YearMax:  f.YearMax,
		},
		RegionScope: s.RegionScope,
	}
	if f.SizeRange != nil {
		sr := string(*f.SizeRange)
		dto.Filters.SizeRange = &sr
	}
	return dto
}

func fromSnapshotDTO(dto snapshotDTO) domtag.Snapshot {
	f := filter.Set{
		Industry: dto.Filters.Industry,
		Country:  dto.Filters.Country,
		Locality: dto.Filters.Locality,
		YearMin:  dto.Filters.YearMin,
		YearMax:  dto.Filters.YearMax,
	}
	if dto.Filters.SizeRange != nil {
		sr := company.SizeRange(*dto.Filters.SizeRange)
		f.SizeRange = &sr
	}
	return domtag.Snapshot{Filters: f, RegionScope: dto.RegionScope}
}

func encodeList(tags []domtag.Tag) ([]byte, error) {
	dtos := make([]tagDTO, 0, len(tags))
	for i := range tags {
		t := &tags[i]
		dtos = append(dtos, tagDTO{
			ID:        t.ID(),
			Name:      t.Name(),
			Snapshot:  toSnapshotDTO(t.Snapshot()),
			CreatedAt: t.CreatedAt(),
		})
	}
	return json.Marshal(dtos)
}

func decodeList(user string, raw []byte) ([]domtag.Tag, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var dtos []tagDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("decode tags of %s: %w", user, err)
	}
	tags := make([]domtag.Tag, 0, len(dtos))
	for _, d := range dtos {
		tags = append(tags, domtag.Reconstruct(d.ID, user, d.Name, fromSnapshotDTO(d.Snapshot), d.CreatedAt))
	}
	return tags, nil
}
