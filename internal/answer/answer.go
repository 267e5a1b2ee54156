package answer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lacquerai/archetype/internal/catalog"
)

// Answer is the raw response to one question. Its kind decides which
// accessor carries the value. The zero Answer has no kind and answers
// nothing.
type Answer struct {
	kind    catalog.Kind
	value   int
	choice  string
	ranking []string
}

// Scale answers a scale question with v
func Scale(v int) Answer {
	return Answer{kind: catalog.KindScale, value: v}
}

// Choice answers a single-choice question with an option token
func Choice(token string) Answer {
	return Answer{kind: catalog.KindSingleChoice, choice: token}
}

// Ranking answers a ranking question. tokens[0] is rank 1.
func Ranking(tokens ...string) Answer {
	r := make([]string, len(tokens))
	copy(r, tokens)
	return Answer{kind: catalog.KindRanking, ranking: r}
}

// Kind returns the kind of question the answer was built for
func (a Answer) Kind() catalog.Kind {
	return a.kind
}

// ScaleValue returns the integer of a scale answer
func (a Answer) ScaleValue() (int, bool) {
	return a.value, a.kind == catalog.KindScale
}

// ChoiceValue returns the token of a single-choice answer
func (a Answer) ChoiceValue() (string, bool) {
	return a.choice, a.kind == catalog.KindSingleChoice
}

// RankingValue returns a copy of the tokens of a ranking answer, most
// preferred first
func (a Answer) RankingValue() ([]string, bool) {
	if a.kind != catalog.KindRanking {
		return nil, false
	}
	r := make([]string, len(a.ranking))
	copy(r, a.ranking)
	return r, true
}

// Value returns the answer as a plain value for serialization: int, string
// or []string.
func (a Answer) Value() any {
	switch a.kind {
	case catalog.KindScale:
		return a.value
	case catalog.KindSingleChoice:
		return a.choice
	case catalog.KindRanking:
		r, _ := a.RankingValue()
		return r
	default:
		return nil
	}
}

// String implements fmt.Stringer
func (a Answer) String() string {
	switch a.kind {
	case catalog.KindScale:
		return fmt.Sprintf("%d", a.value)
	case catalog.KindSingleChoice:
		return a.choice
	case catalog.KindRanking:
		return strings.Join(a.ranking, " > ")
	default:
		return "<none>"
	}
}

// Reader is read access to a set of answers. The scoring engine only ever
// sees a Reader.
type Reader interface {
	Get(questionID string) (Answer, bool)
	Len() int
}

// AnswerSet maps question IDs to answers. It is built incrementally by the
// presentation layer and is not safe for concurrent use.
type AnswerSet struct {
	answers map[string]Answer
}

// New returns an empty AnswerSet
func New() *AnswerSet {
	return &AnswerSet{answers: make(map[string]Answer)}
}

// Set records or replaces the answer to a question
func (s *AnswerSet) Set(questionID string, a Answer) {
	if s.answers == nil {
		s.answers = make(map[string]Answer)
	}
	s.answers[questionID] = a
}

// Get returns the answer to a question
func (s *AnswerSet) Get(questionID string) (Answer, bool) {
	if s == nil {
		return Answer{}, false
	}
	a, ok := s.answers[questionID]
	return a, ok
}

// Delete removes the answer to a question
func (s *AnswerSet) Delete(questionID string) {
	if s == nil {
		return
	}
	delete(s.answers, questionID)
}

// Reset clears every answer
func (s *AnswerSet) Reset() {
	if s == nil {
		return
	}
	s.answers = make(map[string]Answer)
}

// Len returns the number of answered questions
func (s *AnswerSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.answers)
}

// IDs returns the answered question IDs, sorted
func (s *AnswerSet) IDs() []string {
	ids := make([]string, 0, s.Len())
	if s == nil {
		return ids
	}
	for id := range s.answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy
func (s *AnswerSet) Clone() *AnswerSet {
	out := New()
	if s == nil {
		return out
	}
	for id, a := range s.answers {
		if a.ranking != nil {
			a = Ranking(a.ranking...)
		}
		out.answers[id] = a
	}
	return out
}

// Values returns every answer as a plain value keyed by question ID
func (s *AnswerSet) Values() map[string]any {
	out := make(map[string]any, s.Len())
	if s == nil {
		return out
	}
	for id, a := range s.answers {
		out[id] = a.Value()
	}
	return out
}

// DecodeError reports an answer that could not be decoded for its question
type DecodeError struct {
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("answer %s: %s", e.QuestionID, e.Message)
}
