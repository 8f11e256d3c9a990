// internal/catalog/load.go
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type yamlValueDelta struct {
	Pattern string  `mapstructure:"pattern"`
	Delta   float64 `mapstructure:"delta"`
}

type yamlAttributeRule struct {
	Attribute string           `mapstructure:"attribute"`
	Required  bool             `mapstructure:"required"`
	Values    []yamlValueDelta `mapstructure:"values"`
}

type yamlCountableExtra struct {
	Attribute string  `mapstructure:"attribute"`
	Allowance int     `mapstructure:"allowance"`
	PerUnit   float64 `mapstructure:"per_unit"`
}

type yamlEntry struct {
	ClassID           string              `mapstructure:"class_id"`
	DisplayName       map[string]string   `mapstructure:"display_name"`
	Keywords          []string            `mapstructure:"keywords"`
	BasePrice         float64             `mapstructure:"base_price"`
	RequiresAnchoring bool                `mapstructure:"requires_anchoring"`
	AttributeRules    []yamlAttributeRule `mapstructure:"attribute_rules"`
	Extra             *yamlCountableExtra `mapstructure:"countable_extra"`
}

// Load reads a tariff override from a YAML file. The file fully replaces the
// built-in catalog, so deployments can reprice without a rebuild.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var raw struct {
		Entries []yamlEntry `mapstructure:"entries"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	entries := make([]Entry, 0, len(raw.Entries))
	for _, ye := range raw.Entries {
		e := Entry{
			ClassID:           ye.ClassID,
			DisplayName:       ye.DisplayName,
			Keywords:          ye.Keywords,
			BasePrice:         decimal.NewFromFloat(ye.BasePrice),
			RequiresAnchoring: ye.RequiresAnchoring,
		}
		for _, yr := range ye.AttributeRules {
			rule := AttributeRule{Attribute: yr.Attribute, Required: yr.Required}
			for _, yv := range yr.Values {
				rule.Values = append(rule.Values, ValueDelta{
					Pattern: yv.Pattern,
					Delta:   decimal.NewFromFloat(yv.Delta),
				})
			}
			e.AttributeRules = append(e.AttributeRules, rule)
		}
		if ye.Extra != nil {
			e.Extra = &CountableExtra{
				Attribute: ye.Extra.Attribute,
				Allowance: ye.Extra.Allowance,
				PerUnit:   decimal.NewFromFloat(ye.Extra.PerUnit),
			}
		}
		entries = append(entries, e)
	}

	return New(entries)
}
