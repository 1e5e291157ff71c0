package config

import (
	"sort"
	"time"

	"github.com/arthur-debert/scanwatch/pkg/paths"
	"github.com/arthur-debert/scanwatch/pkg/types"
)

// DefaultRootName names the root declared by the top-level path key
const DefaultRootName = "default"

// Config is the decoded configuration document
type Config struct {
	// Path is a root watched with every rule
	Path string `koanf:"path"`
	// Printer is the legacy single-printer setting, see Load
	Printer string                `koanf:"printer"`
	Roots   map[string]RootConfig `koanf:"roots"`
	Rules   map[string]RuleConfig `koanf:"rules"`
	Watch   WatchConfig           `koanf:"watch"`
	Notify  NotifyConfig          `koanf:"notify"`

	// File is where the document was read from
	File string `koanf:"-"`
}

// RootConfig declares one watched directory
type RootConfig struct {
	Path string `koanf:"path"`
	// Rules limits the root to the named rules, all rules when empty
	Rules []string `koanf:"rules"`
}

// RuleConfig is one rule as written in the file
type RuleConfig struct {
	Cmd        string   `koanf:"cmd"`
	Args       []string `koanf:"args"`
	Msg        string   `koanf:"msg"`
	Icon       string   `koanf:"icon"`
	EndsWith   string   `koanf:"ends_with"`
	StartsWith string   `koanf:"starts_with"`
	Filter     string   `koanf:"filter"`
	X          string   `koanf:"x"`
	Y          string   `koanf:"y"`
	Z          string   `koanf:"z"`
}

// WatchConfig controls the event source and completion detection
type WatchConfig struct {
	Backend   string        `koanf:"backend"`
	Policy    string        `koanf:"policy"`
	Settle    time.Duration `koanf:"settle"`
	Recursive bool          `koanf:"recursive"`
	Buffer    int           `koanf:"buffer"`
}

// NotifyConfig controls notification delivery
type NotifyConfig struct {
	Desktop bool   `koanf:"desktop"`
	Console string `koanf:"console"`
	Title   string `koanf:"title"`
	Icon    string `koanf:"icon"`
	OnStart bool   `koanf:"on_start"`
}

// RuleNames returns the configured rule names in order
func (c *Config) RuleNames() []string {
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RuleSet converts the rule table into rules ordered by name
func (c *Config) RuleSet() []types.Rule {
	names := c.RuleNames()
	rules := make([]types.Rule, 0, len(names))
	for _, name := range names {
		rules = append(rules, c.Rules[name].toRule(name))
	}
	return rules
}

func (r RuleConfig) toRule(name string) types.Rule {
	return types.Rule{
		Name:    name,
		Suffix:  r.EndsWith,
		Prefix:  r.StartsWith,
		Pattern: r.Filter,
		Command: r.Cmd,
		Args:    append([]string(nil), r.Args...),
		Message: r.Msg,
		Icon:    r.Icon,
		X:       r.X,
		Y:       r.Y,
		Z:       r.Z,
	}
}

// WatchRoots returns every declared root with its path normalized.
// The top-level path comes first, the named roots follow in name order.
func (c *Config) WatchRoots() ([]types.WatchRoot, error) {
	var roots []types.WatchRoot

	if c.Path != "" {
		path, err := paths.Normalize(c.Path)
		if err != nil {
			return nil, err
		}
		roots = append(roots, types.WatchRoot{Name: DefaultRootName, Path: path})
	}

	names := make([]string, 0, len(c.Roots))
	for name := range c.Roots {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rc := c.Roots[name]
		path, err := paths.Normalize(rc.Path)
		if err != nil {
			return nil, err
		}
		roots = append(roots, types.WatchRoot{
			Name:  name,
			Path:  path,
			Rules: append([]string(nil), rc.Rules...),
		})
	}

	return roots, nil
}

// Document renders the configuration as plain maps using the file's key names
func (c *Config) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"watch": map[string]interface{}{
			"backend":   c.Watch.Backend,
			"policy":    c.Watch.Policy,
			"settle":    c.Watch.Settle.String(),
			"recursive": c.Watch.Recursive,
			"buffer":    c.Watch.Buffer,
		},
		"notify": map[string]interface{}{
			"desktop":  c.Notify.Desktop,
			"console":  c.Notify.Console,
			"title":    c.Notify.Title,
			"icon":     c.Notify.Icon,
			"on_start": c.Notify.OnStart,
		},
	}

	if c.Path != "" {
		doc["path"] = c.Path
	}

	if len(c.Roots) > 0 {
		roots := make(map[string]interface{}, len(c.Roots))
		for name, rc := range c.Roots {
			root := map[string]interface{}{"path": rc.Path}
			if len(rc.Rules) > 0 {
				root["rules"] = rc.Rules
			}
			roots[name] = root
		}
		doc["roots"] = roots
	}

	rules := make(map[string]interface{}, len(c.Rules))
	for name, rc := range c.Rules {
		rule := map[string]interface{}{"cmd": rc.Cmd}
		args := rc.Args
		if args == nil {
			args = []string{}
		}
		rule["args"] = args
		for key, value := range map[string]string{
			"msg":         rc.Msg,
			"icon":        rc.Icon,
			"ends_with":   rc.EndsWith,
			"starts_with": rc.StartsWith,
			"filter":      rc.Filter,
			"x":           rc.X,
			"y":           rc.Y,
			"z":           rc.Z,
		} {
			if value != "" {
				rule[key] = value
			}
		}
		rules[name] = rule
	}
	doc["rules"] = rules

	return doc
}
