package hcm

import (
	"encoding/json"
	"fmt"

	jmes "github.com/jmespath/go-jmespath"
)

// Shape applies a catalog select expression to the decoded vendor response
// so tool results stay compact. Empty expressions pass the document through.
func Shape(doc any, expr string) (any, error) {
	if expr == "" {
		return doc, nil
	}
	out, err := jmes.Search(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("response select %q: %w", expr, err)
	}
	return out, nil
}

// RenderJSON produces the text payload handed back to the MCP client.
func RenderJSON(doc any) (string, error) {
	if s, ok := doc.(string); ok {
		return s, nil
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return string(b), nil
}
