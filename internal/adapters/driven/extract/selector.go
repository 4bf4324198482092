package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driven"
)

// NumberSeparator joins the text of several number matches.
const NumberSeparator = "-"

type compiledField struct {
	subgame  string
	numbers  cascadia.Selector
	date     cascadia.Selector // nil when the source publishes no date
	dateAttr string
}

// SelectorExtractor is a CSS-selector driven.FieldExtractor.
type SelectorExtractor struct {
	sets map[string][]compiledField
}

var _ driven.FieldExtractor = (*SelectorExtractor)(nil)

// NewSelectorExtractor compiles every selector in table.
func NewSelectorExtractor(table domain.SelectorTable) (*SelectorExtractor, error) {
	e := &SelectorExtractor{sets: make(map[string][]compiledField, len(table))}

	for key, subgames := range table {
		names := make([]string, 0, len(subgames))
		for name := range subgames {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]compiledField, 0, len(names))
		for _, name := range names {
			fs := subgames[name]
			if strings.TrimSpace(fs.Numbers) == "" {
				return nil, fmt.Errorf("%w: selectors.%s.%s: numbers selector is required",
					domain.ErrInvalidInput, key, name)
			}
			numbers, err := cascadia.Compile(fs.Numbers)
			if err != nil {
				return nil, fmt.Errorf("%w: selectors.%s.%s.numbers: %v", domain.ErrInvalidInput, key, name, err)
			}
			field := compiledField{subgame: name, numbers: numbers, dateAttr: fs.DateAttr}
			if strings.TrimSpace(fs.Date) != "" {
				if field.date, err = cascadia.Compile(fs.Date); err != nil {
					return nil, fmt.Errorf("%w: selectors.%s.%s.date: %v", domain.ErrInvalidInput, key, name, err)
				}
			}
			fields = append(fields, field)
		}
		e.sets[key] = fields
	}
	return e, nil
}

// Extract returns the sub-games of doc that have numbers. A source with no
// selector set of its own uses the default set; with neither, it is an error.
func (e *SelectorExtractor) Extract(doc []byte, src domain.Source) (domain.RawPayload, error) {
	fields, ok := e.sets[src.ID]
	if !ok {
		if fields, ok = e.sets[domain.DefaultSelectorKey]; !ok {
			return nil, fmt.Errorf("no selectors for source %s", src.ID)
		}
	}

	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	payload := make(domain.RawPayload)
	for _, f := range fields {
		numbers := matchNumbers(root, f.numbers)
		if numbers == "" {
			continue
		}
		payload[f.subgame] = domain.RawDraw{
			Numbers: numbers,
			RawDate: matchDate(root, f),
		}
	}
	return payload, nil
}

func matchNumbers(root *html.Node, sel cascadia.Selector) string {
	var parts []string
	for _, n := range sel.MatchAll(root) {
		if text := nodeText(n); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, NumberSeparator)
}

func matchDate(root *html.Node, f compiledField) string {
	if f.date == nil {
		return ""
	}
	n := f.date.MatchFirst(root)
	if n == nil {
		return ""
	}
	if f.dateAttr != "" {
		for _, a := range n.Attr {
			if a.Key == f.dateAttr {
				return strings.TrimSpace(a.Val)
			}
		}
		return ""
	}
	return nodeText(n)
}

// nodeText returns the whitespace-collapsed text under n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
