package cmdparser

import "gopkg.in/yaml.v3"

// Options gates the Oil-specific keywords and syntax extensions
// (spec.md §5): which features are active is a per-parse configuration,
// not a compile-time constant, so a single binary can parse both plain
// POSIX scripts and Oil-flavored ones.
//
// Grounded on spec.md §9's Ambient Stack note calling for a config
// struct loadable from YAML; no teacher analogue (wudi-hey's PHPVersion
// enum is the closest precedent — a single discrete dialect selector —
// generalized here into the finer per-feature boolean flags Oil's
// `shopt --set oil:upgrade` style actually exposes).
type Options struct {
	ParseBraceGroup bool `yaml:"parse_brace_group"` // `{ }` as a Oil-style do-group
	ParseParen      bool `yaml:"parse_paren"`       // `if (x)` / `while (x)` conditions
	ParseAtBracket  bool `yaml:"parse_at_bracket"`  // @[ ... ] array literals
	ParseEquals     bool `yaml:"parse_equals"`      // `var`/`setvar`/`set` assignment keywords
	ParseFuncProc   bool `yaml:"parse_func_proc"`   // `func`/`proc` definitions
	ParseForIn      bool `yaml:"parse_for_in"`      // `for (x in y) { }`
	ParseDollarSlash bool `yaml:"parse_dollar_slash"` // $/ .../ regex literals
}

// DefaultOptions parses under plain POSIX/bash semantics, matching every
// other shell's default behavior when no `shopt --set oil:*` has run.
func DefaultOptions() Options {
	return Options{}
}

// OilUpgradeOptions enables the whole Oil-upgrade feature bundle at
// once, the way `shopt --set oil:upgrade` does.
func OilUpgradeOptions() Options {
	return Options{
		ParseBraceGroup: true, ParseParen: true, ParseAtBracket: true,
		ParseEquals: true, ParseFuncProc: true, ParseForIn: true,
		ParseDollarSlash: true,
	}
}

// LoadOptionsYAML parses a YAML document (e.g. an `.oilrc` fragment)
// into Options, starting from DefaultOptions so an omitted key keeps its
// POSIX-compatible default rather than zeroing unrelated flags.
func LoadOptionsYAML(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}
