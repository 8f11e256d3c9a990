// Package lexical is the deterministic fallback extraction path: keyword and
// pattern matching over the raw text, used when the interpretive service
// fails or is not configured. It never invents attributes and never infers a
// quantity beyond 1 without an explicit adjacent numeral or number word.
package lexical

import (
	"strings"

	"quote-engine/internal/catalog"
	"quote-engine/internal/models"
)

// Matcher matches catalog keywords against tokenized input.
type Matcher struct {
	cat *catalog.Catalog

	// phrase (space-joined normalized tokens) -> class ID, first catalog
	// entry wins on keyword overlap.
	phrases   map[string]string
	maxPhrase int
}

func NewMatcher(cat *catalog.Catalog) *Matcher {
	m := &Matcher{
		cat:     cat,
		phrases: make(map[string]string),
	}
	for _, entry := range cat.Entries() {
		for _, kw := range entry.Keywords {
			tokens := Tokenize(Normalize(kw))
			if len(tokens) == 0 {
				continue
			}
			phrase := strings.Join(tokens, " ")
			if _, exists := m.phrases[phrase]; exists {
				continue
			}
			m.phrases[phrase] = entry.ClassID
			if len(tokens) > m.maxPhrase {
				m.maxPhrase = len(tokens)
			}
		}
	}
	return m
}

// Match extracts furniture items from text. An empty result means nothing in
// the catalog was mentioned; the resolver owns the greeting-vs-unrecognized
// distinction.
func (m *Matcher) Match(text string) []models.ExtractedItem {
	normText := Normalize(text)
	tokens := Tokenize(normText)

	var items []models.ExtractedItem
	lastClass := ""
	lastEnd := -1

	i := 0
	for i < len(tokens) {
		classID, span := m.longestMatchAt(tokens, i)
		if classID == "" {
			i++
			continue
		}

		quantity := 1
		explicit := false
		if i > 0 {
			if n, ok := parseCount(tokens[i-1]); ok {
				quantity = n
				explicit = true
			}
		}

		// Adjacent repeats of the same base form ("mesa mesa") collapse
		// into the already-open candidate unless a new count is given.
		if classID == lastClass && i == lastEnd && !explicit {
			lastEnd = i + span
			i += span
			continue
		}

		items = append(items, m.buildItem(classID, quantity, normText))
		lastClass = classID
		lastEnd = i + span
		i += span
	}

	return items
}

// longestMatchAt tries the longest keyword phrase starting at position i.
func (m *Matcher) longestMatchAt(tokens []string, i int) (string, int) {
	max := m.maxPhrase
	if rest := len(tokens) - i; rest < max {
		max = rest
	}
	for span := max; span >= 1; span-- {
		phrase := strings.Join(tokens[i:i+span], " ")
		if classID, ok := m.phrases[phrase]; ok {
			return classID, span
		}
	}
	return "", 0
}

func (m *Matcher) buildItem(classID string, quantity int, normText string) models.ExtractedItem {
	item := models.ExtractedItem{
		ClassID:  classID,
		Quantity: quantity,
	}

	attrs := detectAttributes(classID, normText)
	if len(attrs) > 0 {
		item.Attributes = attrs
	}

	entry, ok := m.cat.Entry(classID)
	if !ok {
		return item
	}
	for _, required := range entry.RequiredAttributes() {
		if _, present := item.Attribute(required); !present {
			item.MissingAttributes = append(item.MissingAttributes, required)
		}
	}
	return item
}
