package search

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
)

// Projector picks the employee estimates a hit reports.
type Projector struct {
	printer *message.Printer
}

// NewProjector creates a projector. A nil locale disables number formatting.
func NewProjector(locale *language.Tag) *Projector {
	p := &Projector{}
	if locale != nil {
		p.printer = message.NewPrinter(*locale)
	}
	return p
}

// Project returns m with regional estimates when reg is set and the document
// has an estimate for it, global ones otherwise. Each side of a regional pair
// falls back to the global value when absent.
func (p *Projector) Project(m result.Match, reg *region.Region) result.Hit {
	g := m.Document.Global()
	hit := result.Hit{
		Document: m.Document,
		Score:    m.Score,
		Current:  g.Current,
		Total:    g.Total,
		Source:   result.SourceGlobal,
	}

	if reg != nil {
		if est, ok := m.Document.Regional(reg.ID()); ok {
			hit.Source = result.SourceRegional
			if est.Current != nil {
				hit.Current = est.Current
			}
			if est.Total != nil {
				hit.Total = est.Total
			}
		}
	}

	if p.printer != nil {
		hit.CurrentFormatted = p.format(hit.Current)
		hit.TotalFormatted = p.format(hit.Total)
	}
	return hit
}

func (p *Projector) format(v *int64) *string {
	if v == nil {
		return nil
	}
	s := p.printer.Sprintf("%d", *v)
	return &s
}

// projectionLocale picks the formatting locale: explicit first, then the
// region's own locale when formatByRegion is set.
func projectionLocale(explicit *language.Tag, reg *region.Region, formatByRegion bool) *language.Tag {
	if explicit != nil {
		return explicit
	}
	if !formatByRegion || reg == nil {
		return nil
	}
	tag, err := language.Parse(reg.Locale())
	if err != nil {
		return nil
	}
	return &tag
}
