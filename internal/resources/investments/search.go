package investments

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.trai.ch/capigrow/internal/core/domain"
)

type catalogue []domain.Investment

func (c catalogue) String(i int) string {
	inv := c[i]
	return inv.Name + " " + inv.Category + " " + inv.RiskLevel
}

func (c catalogue) Len() int { return len(c) }

// Search ranks the unfiltered catalogue against text, best match first. The catalogue is
// read through the cache, so repeated searches do not refetch it while it is fresh. An
// empty text returns the whole catalogue.
func (s *Service) Search(ctx context.Context, text string) domain.QueryResult[[]domain.Investment] {
	res := s.List(ctx, domain.InvestmentFilter{})
	text = strings.TrimSpace(text)
	if text == "" || len(res.Data) == 0 {
		return res
	}

	matches := fuzzy.FindFrom(text, catalogue(res.Data))
	ranked := make([]domain.Investment, len(matches))
	for i, m := range matches {
		ranked[i] = res.Data[m.Index]
	}
	res.Data = ranked
	return res
}
