// Package catalog holds the static pricing configuration: furniture classes,
// their keywords, base prices, anchoring flags and attribute-conditioned
// pricing rules. A Catalog is built once at startup, is immutable afterwards
// and is passed explicitly to every component, so concurrent requests can
// read it without synchronization.
package catalog

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Service-wide pricing constants.
var (
	// PriceFloor is the minimum chargeable visit. A quote total never goes
	// below it regardless of the computed subtotal.
	PriceFloor = decimal.NewFromInt(30)

	// AnchoringFee is the flat fee for the wall-anchoring safety step,
	// added once per quote when any line item requires it.
	AnchoringFee = decimal.NewFromInt(15)
)

// ValueDelta maps an attribute value pattern to a price delta. Patterns are
// case-insensitive regular expressions; the first matching pattern in a rule
// wins. Deltas may be negative (e.g. a small-size discount).
type ValueDelta struct {
	Pattern string
	Delta   decimal.Decimal

	re *regexp.Regexp
}

// AttributeRule prices one attribute of a furniture class. Required rules
// must be resolved before the item can be priced at all; optional rules
// simply contribute nothing when the attribute is absent.
type AttributeRule struct {
	Attribute string
	Required  bool
	Values    []ValueDelta
}

// Match returns the price delta for the first value pattern matching v.
func (r *AttributeRule) Match(v string) (decimal.Decimal, bool) {
	for i := range r.Values {
		if r.Values[i].re.MatchString(v) {
			return r.Values[i].Delta, true
		}
	}
	return decimal.Zero, false
}

// CountableExtra describes an attribute counted against an included
// allowance: units beyond the allowance are charged per piece and itemized
// separately from the per-unit price.
type CountableExtra struct {
	Attribute string
	Allowance int
	PerUnit   decimal.Decimal
}

// Entry describes one furniture class.
type Entry struct {
	ClassID           string
	DisplayName       map[string]string // language -> label
	Keywords          []string
	BasePrice         decimal.Decimal
	RequiresAnchoring bool
	AttributeRules    []AttributeRule
	Extra             *CountableExtra
}

// RequiredAttributes returns the attribute names that must be known before
// this class can be priced, in rule order.
func (e *Entry) RequiredAttributes() []string {
	var out []string
	for i := range e.AttributeRules {
		if e.AttributeRules[i].Required {
			out = append(out, e.AttributeRules[i].Attribute)
		}
	}
	if e.Extra != nil {
		out = append(out, e.Extra.Attribute)
	}
	return out
}

// DisplayNameFor returns the label for lang, falling back to Spanish and
// then to the class ID.
func (e *Entry) DisplayNameFor(lang string) string {
	if name, ok := e.DisplayName[lang]; ok {
		return name
	}
	if name, ok := e.DisplayName["es"]; ok {
		return name
	}
	return e.ClassID
}

// Catalog is the immutable set of entries, ordered. Keyword overlap across
// entries is tolerated and resolved by first-match order.
type Catalog struct {
	entries []*Entry
	byID    map[string]*Entry
}

// New validates and compiles the entries into a Catalog.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]*Entry, 0, len(entries)),
		byID:    make(map[string]*Entry, len(entries)),
	}

	for i := range entries {
		e := entries[i]
		if e.ClassID == "" {
			return nil, fmt.Errorf("catalog entry %d: empty class_id", i)
		}
		if _, dup := c.byID[e.ClassID]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate class_id", e.ClassID)
		}
		if e.BasePrice.IsNegative() {
			return nil, fmt.Errorf("catalog entry %q: negative base_price", e.ClassID)
		}
		for ri := range e.AttributeRules {
			rule := &e.AttributeRules[ri]
			for vi := range rule.Values {
				re, err := regexp.Compile("(?i)" + rule.Values[vi].Pattern)
				if err != nil {
					return nil, fmt.Errorf("catalog entry %q, rule %q: %w", e.ClassID, rule.Attribute, err)
				}
				rule.Values[vi].re = re
			}
		}
		c.entries = append(c.entries, &e)
		c.byID[e.ClassID] = &e
	}

	if len(c.entries) == 0 {
		return nil, fmt.Errorf("catalog has no entries")
	}
	return c, nil
}

// Entry looks up a class by ID.
func (c *Catalog) Entry(classID string) (*Entry, bool) {
	e, ok := c.byID[classID]
	return e, ok
}

// Entries returns all entries in declaration order.
func (c *Catalog) Entries() []*Entry {
	return c.entries
}

// ClassIDs returns the class identifiers in declaration order.
func (c *Catalog) ClassIDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ClassID
	}
	return ids
}

// RequiredByClass returns class ID -> required attribute names, used to
// build the interpretive extraction prompt.
func (c *Catalog) RequiredByClass() map[string][]string {
	out := make(map[string][]string, len(c.entries))
	for _, e := range c.entries {
		if req := e.RequiredAttributes(); len(req) > 0 {
			out[e.ClassID] = req
		}
	}
	return out
}
