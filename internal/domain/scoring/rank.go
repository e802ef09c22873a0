package scoring

import "sort"

// Result is the ranked outcome of an assessment. Best holds non-eliminated
// roles; NextBest holds fallback roles surfaced only when too few eligible
// roles remain.
type Result struct {
	Best     []string
	NextBest []string
}

// WithFallbackFloor sets a minimum score for fallback roles, so a
// zero-scoring eliminated role is never recommended. Default is no floor.
func WithFallbackFloor(floor int) Option {
	return func(s *Scorer) {
		f := floor
		s.fallbackFloor = &f
	}
}

// TopMatches returns up to n non-eliminated roles sorted by score
// descending, ties broken by catalog load order. When fewer than n eligible
// roles remain, fallback roles are drawn from the eliminated set by the
// same ordering, never repeating a primary entry.
func (s *Scorer) TopMatches(n int) Result {
	if n <= 0 {
		return Result{}
	}

	order := make([]int, s.catalog.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.total[order[a]] > s.total[order[b]]
	})

	names := s.catalog.Names()
	res := Result{}
	for _, i := range order {
		if s.eliminated[i] || len(res.Best) == n {
			continue
		}
		res.Best = append(res.Best, names[i])
	}

	if len(res.Best) >= n {
		return res
	}
	for _, i := range order {
		if !s.eliminated[i] || len(res.NextBest) == n {
			continue
		}
		if s.fallbackFloor != nil && s.total[i] < *s.fallbackFloor {
			continue
		}
		res.NextBest = append(res.NextBest, names[i])
	}
	return res
}
