package smoketest

import (
	"fmt"
	"log"
	"sort"
)

// verifyOutcomes checks the structural invariants of every assessment
// outcome against the catalog served by the service.
func verifyOutcomes(config *Config, outcomes []Outcome, roles []string, stats *Stats) error {
	log.Println("🔍 Verifying outcomes...")

	known := make(map[string]bool, len(roles))
	for _, role := range roles {
		known[role] = true
	}
	stats.RolesInCatalog = len(roles)

	verified := 0
	var problems []string
	for _, outcome := range outcomes {
		if outcome.SessionID == "" {
			continue // failed run, already counted
		}
		if err := verifySingleOutcome(config, outcome, known); err != nil {
			problems = append(problems, fmt.Sprintf("session %s: %v", outcome.SessionID, err))
			continue
		}
		verified++
	}

	for _, problem := range problems {
		log.Printf("⚠️  %s", problem)
	}

	if verified == 0 {
		return fmt.Errorf("no outcomes to verify")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d of %d outcomes failed verification", len(problems), verified+len(problems))
	}

	displayRoleDistribution(outcomes, config.Verbose)

	log.Println("✅ Outcome verification completed")
	return nil
}

// verifySingleOutcome checks one outcome's role buckets.
func verifySingleOutcome(config *Config, outcome Outcome, known map[string]bool) error {
	if len(outcome.Best) == 0 {
		return fmt.Errorf("empty best-fit bucket")
	}
	if len(outcome.Best) > config.TopN {
		return fmt.Errorf("best-fit bucket has %d roles, expected at most %d", len(outcome.Best), config.TopN)
	}
	if len(outcome.NextBest) > config.TopN {
		return fmt.Errorf("next-best bucket has %d roles, expected at most %d", len(outcome.NextBest), config.TopN)
	}

	seen := make(map[string]bool, len(outcome.Best)+len(outcome.NextBest))
	for _, role := range append(append([]string{}, outcome.Best...), outcome.NextBest...) {
		if !known[role] {
			return fmt.Errorf("role %q is not in the catalog", role)
		}
		if seen[role] {
			return fmt.Errorf("role %q appears in more than one bucket", role)
		}
		seen[role] = true
	}

	return nil
}

// displayRoleDistribution shows how often each role was the top match.
func displayRoleDistribution(outcomes []Outcome, verbose bool) {
	topPicks := make(map[string]int)
	personaCounts := make(map[string]int)
	for _, outcome := range outcomes {
		if len(outcome.Best) == 0 {
			continue
		}
		topPicks[outcome.Best[0]]++
		personaCounts[outcome.Persona]++
	}

	type roleCount struct {
		role  string
		count int
	}
	counts := make([]roleCount, 0, len(topPicks))
	for role, count := range topPicks {
		counts = append(counts, roleCount{role: role, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].role < counts[j].role
	})

	log.Printf("🏆 Top-match distribution across %d roles:", len(counts))
	for _, rc := range counts {
		log.Printf("   %s: %d", rc.role, rc.count)
	}

	if verbose {
		personas := make([]string, 0, len(personaCounts))
		for p := range personaCounts {
			personas = append(personas, p)
		}
		sort.Strings(personas)

		log.Println("📊 Persona distribution:")
		for _, p := range personas {
			log.Printf("   %s: %d", p, personaCounts[p])
		}
	}
}
