// pkg/catalog/catalog.go
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Param describes one tool argument and where it lands on the vendor request.
type Param struct {
	Name        string `yaml:"name"`
	In          string `yaml:"in"` // path | query | body
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// Tool declares one vendor operation surfaced as an MCP tool. REST tools set
// Method/Path; SOAP tools set Service/Action and carry their arguments as
// body parameters rendered into the request element.
type Tool struct {
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Method      string   `yaml:"method"`
	Path        string   `yaml:"path"`
	Service     string   `yaml:"service"`
	Action      string   `yaml:"action"`
	Scopes      []string `yaml:"scopes"`
	Params      []Param  `yaml:"params"`
	// Select is an optional JMESPath applied to the vendor JSON response so
	// tool results stay compact for the model.
	Select string `yaml:"select"`
}

func (t Tool) IsSOAP() bool { return t.Service != "" }

// InputSchema renders the JSON-schema object MCP clients expect in tools/list.
func (t Tool) InputSchema() map[string]any {
	props := map[string]any{}
	var required []string
	for _, p := range t.Params {
		typ := p.Type
		if typ == "" {
			typ = "string"
		}
		props[p.Name] = map[string]any{"type": typ, "description": p.Description}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		sort.Strings(required)
		schema["required"] = required
	}
	return schema
}

// File is one YAML catalog document covering a single vendor domain.
type File struct {
	Domain string `yaml:"domain"`
	Tools  []Tool `yaml:"tools"`
}

var pathParamRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Validate checks a tool declaration for the mistakes that otherwise only
// show up at call time: unknown param placement, undeclared path params,
// missing dispatch target.
func (t Tool) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool with empty name")
	}
	if t.IsSOAP() {
		if t.Action == "" {
			return fmt.Errorf("tool %s: soap service without action", t.Name)
		}
	} else {
		if t.Method == "" || t.Path == "" {
			return fmt.Errorf("tool %s: rest tool needs method and path", t.Name)
		}
	}
	declared := map[string]bool{}
	for _, p := range t.Params {
		switch p.In {
		case "path", "query", "body", "":
		default:
			return fmt.Errorf("tool %s: param %s: unknown location %q", t.Name, p.Name, p.In)
		}
		declared[p.Name] = true
	}
	for _, m := range pathParamRe.FindAllStringSubmatch(t.Path, -1) {
		if !declared[m[1]] {
			return fmt.Errorf("tool %s: path param {%s} not declared", t.Name, m[1])
		}
	}
	return nil
}

// Load reads every *.yaml file under dir. Missing dir yields an empty catalog
// so callers can fall back to built-in tool definitions.
func Load(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []File
	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var f File
		if err := yaml.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		for _, t := range f.Tools {
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", e.Name(), err)
			}
			if prev, dup := seen[t.Name]; dup {
				return nil, fmt.Errorf("%s: tool %s already declared in %s", e.Name(), t.Name, prev)
			}
			seen[t.Name] = e.Name()
		}
		out = append(out, f)
	}
	return out, nil
}
