package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// FieldRule locates one field's raw text within a detected row. CellTitle
// narrows the search to the cell carrying that title attribute, the way the
// platform labels its columns; Selector then picks the value node inside
// it. Selectors match on class substrings so the hashed suffixes the
// platform appends (typeColumn__Psx6k and friends) don't matter.
type FieldRule struct {
	Field     string
	CellTitle string
	Selector  string
	Fallback  string
}

// RuleSet describes how one platform's markup maps to RawRow fields. Row
// containers are detected structurally: a div qualifies when its class
// attribute contains every fragment in RowClassFragments, in any order.
type RuleSet struct {
	Name              string
	RowClassFragments []string
	Fields            []FieldRule
}

// DefaultRuleSet matches the closed-positions page of the supported
// platform. New page layouts mean a new RuleSet, not new extraction code.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Name:              "closed-positions",
		RowClassFragments: []string{"border-grey-300", "flex", "items-center"},
		Fields: []FieldRule{
			{Field: domain.FieldSide, Selector: "div[class*='typeColumn'] span"},
			{Field: domain.FieldName, CellTitle: "Asset info", Selector: "p[class*='font-semibold']", Fallback: "p"},
			{Field: domain.FieldSymbol, CellTitle: "Asset info", Selector: "span[class*='text-secondary']", Fallback: "span"},
			{Field: domain.FieldAssetClass, CellTitle: "Asset info", Selector: "div[class*='mx-1']"},
			{Field: domain.FieldVolume, CellTitle: "Volume", Selector: "p"},
			{Field: domain.FieldOpenPrice, CellTitle: "Open price", Selector: "p"},
			{Field: domain.FieldClosePrice, CellTitle: "Close price", Selector: "p"},
			{Field: domain.FieldOpenTime, CellTitle: "Open date", Selector: "p[class*='text-secondary']", Fallback: "p"},
			{Field: domain.FieldCloseTime, CellTitle: "Close date", Selector: "p[class*='text-secondary']", Fallback: "p"},
			{Field: domain.FieldProfit, CellTitle: "Profit/Loss", Selector: "p[class*='text-md']", Fallback: "p"},
			{Field: domain.FieldProfitPct, CellTitle: "Profit/Loss", Selector: "div[class*='font-semibold']"},
		},
	}
}

func (r FieldRule) locate(row *goquery.Selection) string {
	scope := row
	if r.CellTitle != "" {
		scope = row.Find(fmt.Sprintf("[title=%q]", r.CellTitle)).First()
		if scope.Length() == 0 {
			return ""
		}
	}

	sel := scope
	if r.Selector != "" {
		sel = scope.Find(r.Selector).First()
	}
	if sel.Length() == 0 && r.Fallback != "" {
		sel = scope.Find(r.Fallback).First()
	}
	if sel.Length() == 0 {
		return ""
	}
	return collapseWhitespace(sel.Text())
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
