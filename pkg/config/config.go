// SPDX-License-Identifier: Apache-2.0

// Package config loads and validates the rule-set configuration that
// selects which rules run, at what severity, and what threshold fails a
// CLI invocation.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"sigs.k8s.io/yaml"

	"github.com/pglint/pglint/pkg/rules"
	"github.com/pglint/pglint/pkg/severity"
)

//go:embed schema.json
var schemaJSON []byte

// supportedSchemaVersion is the config schema version this build
// understands. A config whose schemaVersion is newer is accepted but
// compared below for informational purposes only; this package never
// refuses to load a config purely because of a newer compatible version.
const supportedSchemaVersion = "v1.0.0"

// Config is the fully resolved rule-set configuration.
type Config struct {
	DefaultSchema     string
	ActiveRules       []string
	SeverityOverrides map[string]severity.Severity
	FailOn            severity.Severity
}

// rawConfig mirrors the on-disk YAML/JSON shape before rule ids and
// severity strings are validated and converted.
type rawConfig struct {
	SchemaVersion     string            `json:"schemaVersion"`
	DefaultSchema     string            `json:"defaultSchema"`
	ActiveRules       []string          `json:"activeRules"`
	SeverityOverrides map[string]string `json:"severityOverrides"`
	FailOn            string            `json:"failOn"`
}

// Default returns every registered rule active at its default severity,
// with the fail-on threshold set to Critical.
func Default() *Config {
	all := rules.All()
	active := make([]string, len(all))
	for i, r := range all {
		active[i] = r.ID()
	}
	return &Config{
		DefaultSchema:     "public",
		ActiveRules:       active,
		SeverityOverrides: map[string]severity.Severity{},
		FailOn:            severity.Critical,
	}
}

// Load reads a YAML config file at path, validates its decoded JSON form
// against the embedded schema, and returns the resolved Config. An
// unknown rule id anywhere in activeRules or severityOverrides is a
// load-time error, not deferred to the pipeline.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("converting config to JSON: %w", err)
	}

	if err := validateAgainstSchema(path, jsonBytes); err != nil {
		return nil, err
	}

	var rc rawConfig
	if err := yaml.UnmarshalStrict(raw, &rc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return resolve(&rc)
}

func validateAgainstSchema(path string, jsonBytes []byte) error {
	compiler := jsonschema.NewCompiler()

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("decoding embedded config schema: %w", err)
	}
	if err := compiler.AddResource("pglint-config.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("loading embedded config schema: %w", err)
	}
	sch, err := compiler.Compile("pglint-config.schema.json")
	if err != nil {
		return fmt.Errorf("compiling embedded config schema: %w", err)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("decoding config document: %w", err)
	}
	if err := sch.Validate(instance); err != nil {
		return &SchemaValidationError{Path: path, Err: err}
	}
	return nil
}

func resolve(rc *rawConfig) (*Config, error) {
	cfg := &Config{
		DefaultSchema:     rc.DefaultSchema,
		SeverityOverrides: make(map[string]severity.Severity, len(rc.SeverityOverrides)),
		FailOn:            severity.Critical,
	}
	if cfg.DefaultSchema == "" {
		cfg.DefaultSchema = "public"
	}

	if rc.SchemaVersion != "" {
		checkSchemaVersionCompat(rc.SchemaVersion)
	}

	if len(rc.ActiveRules) == 0 {
		all := rules.All()
		cfg.ActiveRules = make([]string, len(all))
		for i, r := range all {
			cfg.ActiveRules[i] = r.ID()
		}
	} else {
		for _, id := range rc.ActiveRules {
			if _, ok := rules.Get(id); !ok {
				return nil, &UnknownRuleError{RuleID: id}
			}
		}
		cfg.ActiveRules = rc.ActiveRules
	}

	for id, sevStr := range rc.SeverityOverrides {
		if _, ok := rules.Get(id); !ok {
			return nil, &UnknownRuleError{RuleID: id}
		}
		sev, ok := severity.ParseSeverity(sevStr)
		if !ok {
			return nil, fmt.Errorf("config: invalid severity %q for rule %s", sevStr, id)
		}
		cfg.SeverityOverrides[id] = sev
	}

	if rc.FailOn != "" {
		sev, ok := severity.ParseSeverity(rc.FailOn)
		if !ok {
			return nil, fmt.Errorf("config: invalid failOn severity %q", rc.FailOn)
		}
		cfg.FailOn = sev
	}

	return cfg, nil
}

// checkSchemaVersionCompat is purely informational today: a future
// breaking change to the config shape would gate on this comparison.
func checkSchemaVersionCompat(configVersion string) int {
	v := ensureVPrefix(configVersion)
	want := ensureVPrefix(supportedSchemaVersion)
	if !semver.IsValid(v) {
		return 0
	}
	return semver.Compare(semver.Canonical(v), semver.Canonical(want))
}

func ensureVPrefix(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// ActiveRuleSet resolves cfg's ActiveRules into concrete rules.Rule
// values, skipping any id that somehow isn't registered (Load already
// rejects those at config time; this is a defensive no-op path for
// Configs built directly in Go, e.g. in tests).
func (c *Config) ActiveRuleSet() []rules.Rule {
	out := make([]rules.Rule, 0, len(c.ActiveRules))
	for _, id := range c.ActiveRules {
		if r, ok := rules.Get(id); ok {
			out = append(out, r)
		}
	}
	return out
}

// SeverityFor returns the effective severity for a rule: its override if
// configured, otherwise its default.
func (c *Config) SeverityFor(r rules.Rule) severity.Severity {
	if sev, ok := c.SeverityOverrides[r.ID()]; ok {
		return sev
	}
	return r.DefaultSeverity()
}
