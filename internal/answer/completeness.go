package answer

import (
	"errors"
	"fmt"

	"github.com/lacquerai/archetype/internal/catalog"
)

// Gap is a question the completeness check found open
type Gap struct {
	QuestionID string       `json:"question_id"`
	Kind       catalog.Kind `json:"kind"`
	Reason     string       `json:"reason"`
}

// Gap reasons
const (
	ReasonUnanswered     = "unanswered"
	ReasonKindMismatch   = "answer kind does not match question kind"
	ReasonUnknownOption  = "unknown option"
	ReasonNotPermutation = "ranking must order every option exactly once"
)

// Missing returns the open questions in catalog order. An empty result
// means the answers are complete.
func Missing(c *catalog.Catalog, r Reader) []Gap {
	var gaps []Gap
	for _, q := range c.Questions {
		a, ok := r.Get(q.ID)
		if !ok {
			gaps = append(gaps, Gap{QuestionID: q.ID, Kind: q.Kind, Reason: ReasonUnanswered})
			continue
		}
		if err := Check(q, a); err != nil {
			gaps = append(gaps, Gap{QuestionID: q.ID, Kind: q.Kind, Reason: err.Error()})
		}
	}
	return gaps
}

// Complete reports whether every question has a usable answer
func Complete(c *catalog.Catalog, r Reader) bool {
	return len(Missing(c, r)) == 0
}

// Check reports why a does not answer q, or nil. Scale values and choice
// tokens only need the matching kind; values without points are skipped
// when scoring. Rankings must order every option exactly once.
func Check(q *catalog.Question, a Answer) error {
	if a.Kind() != q.Kind {
		return errors.New(ReasonKindMismatch)
	}

	if q.Kind == catalog.KindRanking {
		tokens, _ := a.RankingValue()
		return CheckRanking(q, tokens)
	}
	return nil
}

// CheckRanking reports whether tokens is a permutation of the options of q
func CheckRanking(q *catalog.Question, tokens []string) error {
	if len(tokens) != len(q.Options) {
		return fmt.Errorf("%s: got %d of %d options", ReasonNotPermutation, len(tokens), len(q.Options))
	}

	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if _, ok := q.GetOption(token); !ok {
			return fmt.Errorf("%s: %s", ReasonUnknownOption, token)
		}
		if seen[token] {
			return fmt.Errorf("%s: %s repeated", ReasonNotPermutation, token)
		}
		seen[token] = true
	}
	return nil
}
