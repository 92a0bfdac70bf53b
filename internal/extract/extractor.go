package extract

import (
	"fmt"
	"strings"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/logger"

	"github.com/PuerkitoBio/goquery"
)

// ExtractionError means the markup held no recognizable position rows at
// all. Single malformed rows never produce it; those are the normalizer's
// problem.
type ExtractionError struct {
	Detail string
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("no trade rows found in markup: %s", e.Detail)
}

type Extractor struct {
	rules RuleSet
}

func NewExtractor() *Extractor {
	return &Extractor{rules: DefaultRuleSet()}
}

func NewExtractorWithRules(rules RuleSet) *Extractor {
	return &Extractor{rules: rules}
}

// ExtractRows pulls every detected position row out of pasted markup. Rows
// are kept even when cells are missing; values are raw cell text, entity
// decoding and whitespace collapsing already applied. Parsing the values
// into typed fields happens downstream.
func (e *Extractor) ExtractRows(html string) ([]domain.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	containers := doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return e.isRowContainer(s)
	})
	// when containers nest, only the innermost ones are rows
	containers = containers.FilterFunction(func(_ int, s *goquery.Selection) bool {
		inner := s.Find("div").FilterFunction(func(_ int, d *goquery.Selection) bool {
			return e.isRowContainer(d)
		})
		return inner.Length() == 0
	})

	if containers.Length() == 0 {
		return nil, ExtractionError{Detail: "no row containers matched the expected page structure"}
	}

	rows := []domain.RawRow{}
	containers.Each(func(_ int, s *goquery.Selection) {
		row := domain.RawRow{}
		for _, rule := range e.rules.Fields {
			if v := rule.locate(s); v != "" {
				row[rule.Field] = v
			}
		}
		if len(row) == 0 {
			// a container with none of the known cells is page chrome,
			// not a position row
			return
		}
		rows = append(rows, row)
	})

	if len(rows) == 0 {
		return nil, ExtractionError{Detail: "row containers matched but none held any recognizable cell"}
	}

	logger.Debug("extracted %d raw rows using rule set %s", len(rows), e.rules.Name)
	return rows, nil
}

func (e *Extractor) isRowContainer(s *goquery.Selection) bool {
	class, ok := s.Attr("class")
	if !ok {
		return false
	}
	for _, fragment := range e.rules.RowClassFragments {
		if !strings.Contains(class, fragment) {
			return false
		}
	}
	return true
}
