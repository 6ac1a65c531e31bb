package rules

import (
	"fmt"
	"regexp"
)

// Section headings every provider page carries.
const (
	SectionExampleUsage       = "Example Usage"
	SectionArgumentReference  = "Argument Reference"
	SectionAttributeReference = "Attribute Reference"
)

// Section is one required heading. An empty Text matches any heading of the level.
type Section struct {
	Level       int    `toml:"level"`
	Text        string `toml:"text"`
	Code        string `toml:"code"`
	Description string `toml:"description"`
}

func (s Section) name() string {
	if s.Text == "" {
		return "Title"
	}
	return s.Text
}

type FrontMatterConfig struct {
	Required           bool     `toml:"required"`
	Keys               []string `toml:"keys"`
	DescriptionPattern string   `toml:"description_pattern"`
	AllowExtra         bool     `toml:"allow_extra"`
}

// Config tunes the rule set. The zero value is not usable; start from DefaultConfig.
type Config struct {
	MaxLineLength           int               `toml:"max_line_length"`
	RequiredSections        []Section         `toml:"required_sections"`
	RequireTitleDescription bool              `toml:"require_title_description"`
	FrontMatter             FrontMatterConfig `toml:"front_matter"`

	// Disabled lists rule names ("Formatting.TrailingWhitespace") or emitted
	// rule ids ("Formatting.EmptyLineGroup") to suppress.
	Disabled []string `toml:"disabled"`

	Parallel bool `toml:"parallel"`
}

func DefaultConfig() Config {
	return Config{
		MaxLineLength: 120,
		RequiredSections: []Section{
			{Level: 1, Code: "MissingTitle", Description: "Title (level 1 heading)"},
			{Level: 2, Text: SectionExampleUsage, Code: "MissingExampleUsage", Description: "'Example Usage' section"},
			{Level: 2, Text: SectionArgumentReference, Code: "MissingArgumentReference", Description: "'Argument Reference' section"},
			{Level: 2, Text: SectionAttributeReference, Code: "MissingAttributeReference", Description: "'Attribute Reference' section"},
		},
		FrontMatter: FrontMatterConfig{
			Keys:               []string{"subcategory", "layout", "page_title", "description"},
			DescriptionPattern: `(?is)^(Use|Using) this (resource|data source) to .*`,
		},
	}
}

func (c Config) Validate() error {
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be positive, got %d", c.MaxLineLength)
	}
	for i, s := range c.RequiredSections {
		if s.Level < 1 || s.Level > 6 {
			return fmt.Errorf("required_sections[%d]: level must be 1-6, got %d", i, s.Level)
		}
		if s.Code == "" {
			return fmt.Errorf("required_sections[%d]: code is required", i)
		}
	}
	if _, err := regexp.Compile(c.FrontMatter.DescriptionPattern); err != nil {
		return fmt.Errorf("front_matter.description_pattern: %w", err)
	}
	return nil
}

func (c Config) disabled(id string) bool {
	for _, d := range c.Disabled {
		if d == id {
			return true
		}
	}
	return false
}
