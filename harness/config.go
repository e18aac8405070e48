// Package harness wires the browser, resolver, page model, API client and
// report store together and runs the verification scenarios sequentially.
package harness

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/roomcheck/resolve"
)

// Config is the top-level harness configuration.
type Config struct {
	Target  TargetConfig  `yaml:"target"`
	Browser BrowserConfig `yaml:"browser"`
	Waits   WaitConfig    `yaml:"waits"`
	Report  ReportConfig  `yaml:"report"`

	// Roles overrides individual role selectors for targets whose markup
	// deviates from the default data-testid table.
	Roles map[string]string `yaml:"roles"`
}

// TargetConfig names the deployment under verification.
type TargetConfig struct {
	PageURL string `yaml:"page_url"`
	APIURL  string `yaml:"api_url"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	Remote           string   `yaml:"remote"`
	Headful          bool     `yaml:"headful"`
	Stealth          bool     `yaml:"stealth"`
	ResourceBlocking []string `yaml:"resource_blocking"`
}

// WaitConfig bounds element and navigation waits.
type WaitConfig struct {
	Element  time.Duration `yaml:"element"`
	Navigate time.Duration `yaml:"navigate"`
}

// ReportConfig controls result persistence.
type ReportConfig struct {
	Path string `yaml:"path"`
}

// Default returns a configuration for pageURL with everything else at its
// default value.
func Default(pageURL string) *Config {
	cfg := &Config{}
	cfg.Target.PageURL = pageURL
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("harness: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Target.PageURL == "" {
		return fmt.Errorf("harness: config: target.page_url is required")
	}
	for role := range c.Roles {
		if _, ok := resolve.DefaultRoles()[resolve.Role(role)]; !ok {
			return fmt.Errorf("harness: config: unknown role %q in overrides", role)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Target.APIURL == "" {
		c.Target.APIURL = c.Target.PageURL + "/api/rooming-lists"
	}
	if c.Waits.Element <= 0 {
		c.Waits.Element = 10 * time.Second
	}
	if c.Waits.Navigate <= 0 {
		c.Waits.Navigate = 30 * time.Second
	}
	if c.Report.Path == "" {
		c.Report.Path = "roomcheck.db"
	}
}

// RoleOverrides converts the string-keyed override map to the resolver's
// role table form.
func (c *Config) RoleOverrides() map[resolve.Role]string {
	if len(c.Roles) == 0 {
		return nil
	}
	out := make(map[resolve.Role]string, len(c.Roles))
	for role, sel := range c.Roles {
		out[resolve.Role(role)] = sel
	}
	return out
}
