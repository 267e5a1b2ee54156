package parser

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/lacquerai/archetype/internal/answer"
	"github.com/lacquerai/archetype/internal/catalog"
	"gopkg.in/yaml.v3"
)

// AnswerFile is the on-disk form of a respondent's answers. JSON is
// accepted too since it is valid YAML.
//
//	catalog: designer-archetypes
//	catalog_version: "^1.0.0"
//	answers:
//	  q1_skill_visual: 4
//	  q12_aspire_impact: shape_strategy
//	  q11_aspire_axes: [innovation, leadership, execution, teamwork]
type AnswerFile struct {
	// Catalog optionally names the catalog (metadata.name) the answers
	// were given for.
	Catalog string `yaml:"catalog,omitempty" json:"catalog,omitempty"`
	// CatalogVersion optionally constrains metadata.version of the catalog.
	CatalogVersion string `yaml:"catalog_version,omitempty" json:"catalog_version,omitempty"`
	// Answers maps question IDs to raw answers.
	Answers map[string]yaml.Node `yaml:"answers" json:"answers"`
}

// ParseAnswersFile reads an answers file and decodes it against c
func ParseAnswersFile(filename string, c *catalog.Catalog) (*answer.AnswerSet, error) {
	data, err := readFile(filename)
	if err != nil {
		return nil, err
	}

	set, err := parseAnswers(data, filename, c)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return set, nil
}

// ParseAnswers decodes answers data against c. Every answer is decoded
// according to the kind of its question; null answers are left unanswered.
// Decoding does not check option tokens or rankings. Malformed rankings
// surface as gaps in the completeness check; other unusable values score
// nothing.
func ParseAnswers(data []byte, c *catalog.Catalog) (*answer.AnswerSet, error) {
	return parseAnswers(data, "", c)
}

func parseAnswers(data []byte, filename string, c *catalog.Catalog) (*answer.AnswerSet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{
			Message:  "empty answers file",
			Position: catalog.Position{Line: 1, Column: 1, File: filename},
		}
	}

	var file AnswerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, wrapYAMLError(err, data, filename)
	}

	if err := checkCatalogRef(&file, c); err != nil {
		return nil, err
	}

	var multiErr MultiError
	set := answer.New()

	ids := make([]string, 0, len(file.Answers))
	for id := range file.Answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, ok := c.GetQuestion(id); !ok {
			node := file.Answers[id]
			multiErr.Add(answerError(&answer.DecodeError{QuestionID: id, Message: "unknown question"}, &node, data, filename))
		}
	}

	for _, q := range c.Questions {
		node, ok := file.Answers[q.ID]
		if !ok || isNull(&node) {
			continue
		}

		a, err := decodeAnswer(q, &node)
		if err != nil {
			multiErr.Add(answerError(err, &node, data, filename))
			continue
		}
		set.Set(q.ID, a)
	}

	if err := multiErr.ToError(); err != nil {
		return nil, err
	}
	return set, nil
}

// checkCatalogRef verifies the optional catalog name and version constraint
func checkCatalogRef(file *AnswerFile, c *catalog.Catalog) error {
	if file.Catalog != "" && c.Metadata != nil && c.Metadata.Name != "" && file.Catalog != c.Metadata.Name {
		return fmt.Errorf("answers are for catalog %q, not %q", file.Catalog, c.Metadata.Name)
	}

	if file.CatalogVersion == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(file.CatalogVersion)
	if err != nil {
		return fmt.Errorf("invalid catalog_version constraint %q: %w", file.CatalogVersion, err)
	}

	if c.Metadata == nil || c.Metadata.Version == "" {
		return fmt.Errorf("answers require catalog version %s but the catalog is unversioned", file.CatalogVersion)
	}

	version, err := semver.NewVersion(c.Metadata.Version)
	if err != nil {
		return fmt.Errorf("invalid catalog version %q: %w", c.Metadata.Version, err)
	}

	if !constraint.Check(version) {
		return fmt.Errorf("catalog version %s does not satisfy %s", version, file.CatalogVersion)
	}
	return nil
}

// decodeAnswer converts a YAML node into an answer for q
func decodeAnswer(q *catalog.Question, node *yaml.Node) (answer.Answer, error) {
	switch q.Kind {
	case catalog.KindScale:
		if node.Kind != yaml.ScalarNode {
			return answer.Answer{}, &answer.DecodeError{QuestionID: q.ID, Message: "expected an integer"}
		}
		v, err := strconv.Atoi(node.Value)
		if err != nil {
			return answer.Answer{}, &answer.DecodeError{QuestionID: q.ID, Message: fmt.Sprintf("expected an integer, got %q", node.Value)}
		}
		return answer.Scale(v), nil

	case catalog.KindSingleChoice:
		if node.Kind != yaml.ScalarNode {
			return answer.Answer{}, &answer.DecodeError{QuestionID: q.ID, Message: "expected an option token"}
		}
		return answer.Choice(node.Value), nil

	case catalog.KindRanking:
		if node.Kind != yaml.SequenceNode {
			return answer.Answer{}, &answer.DecodeError{QuestionID: q.ID, Message: "expected a list of option tokens"}
		}
		tokens := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return answer.Answer{}, &answer.DecodeError{QuestionID: q.ID, Message: "ranking entries must be option tokens"}
			}
			tokens = append(tokens, item.Value)
		}
		return answer.Ranking(tokens...), nil

	default:
		return answer.Answer{}, &answer.DecodeError{QuestionID: q.ID, Message: fmt.Sprintf("unsupported question kind %q", q.Kind)}
	}
}

func answerError(err error, node *yaml.Node, source []byte, filename string) *ParseError {
	pos := catalog.Position{Line: node.Line, Column: node.Column, File: filename}
	if pos.Line == 0 {
		pos.Line, pos.Column = 1, 1
	}
	parseErr := newParseError(err.Error(), pos, source)
	parseErr.Err = err
	return parseErr
}

func isNull(node *yaml.Node) bool {
	return node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}
