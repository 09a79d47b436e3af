// internal/hcm/tools.go
package hcm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"hrbridge/pkg/catalog"
	"hrbridge/pkg/mcp"
)

// DefaultCatalog is the built-in tool set, used when no YAML catalog
// directory is deployed. Deployments override or extend it by shipping
// catalog files.
func DefaultCatalog() []catalog.File {
	return []catalog.File{
		{Domain: "staffing", Tools: StaffingTools()},
		{Domain: "learning", Tools: LearningTools()},
		{Domain: "payables", Tools: PayablesTools()},
		{Domain: "absence", Tools: AbsenceTools()},
		{Domain: "payroll", Tools: PayrollTools()},
		{Domain: "agentdef", Tools: AgentDefinitionTools()},
	}
}

// RegisterCatalogTools binds every catalog tool to a handler that marshals
// its arguments onto the vendor request.
func RegisterCatalogTools(reg *mcp.Registry, c *Client, files []catalog.File) error {
	for _, f := range files {
		for _, t := range f.Tools {
			if err := t.Validate(); err != nil {
				return err
			}
			def := mcp.ToolDef{
				Name:        t.Name,
				Title:       t.Title,
				Description: t.Description,
				InputSchema: t.InputSchema(),
				Scopes:      t.Scopes,
				Handler:     makeHandler(c, t),
			}
			if err := reg.Register(def); err != nil {
				return err
			}
		}
	}
	return nil
}

func makeHandler(c *Client, t catalog.Tool) mcp.Handler {
	if t.IsSOAP() {
		return makeSOAPHandler(c, t)
	}
	return makeRESTHandler(c, t)
}

func makeRESTHandler(c *Client, t catalog.Tool) mcp.Handler {
	method := strings.ToUpper(t.Method)
	return func(ctx context.Context, args map[string]any) (string, error) {
		path := t.Path
		query := url.Values{}
		body := map[string]any{}
		for _, p := range t.Params {
			v, ok := args[p.Name]
			if !ok || v == nil {
				if p.Required {
					return "", fmt.Errorf("missing required argument %q", p.Name)
				}
				continue
			}
			switch paramLocation(p, method) {
			case "path":
				path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(fmt.Sprint(v)))
			case "query":
				query.Set(p.Name, fmt.Sprint(v))
			case "body":
				body[p.Name] = v
			}
		}
		if strings.Contains(path, "{") {
			return "", fmt.Errorf("unresolved path parameters in %s", path)
		}
		var reqBody any
		if len(body) > 0 {
			reqBody = body
		}
		doc, err := c.Do(ctx, method, path, query, reqBody)
		if err != nil {
			return "", err
		}
		shaped, err := Shape(doc, t.Select)
		if err != nil {
			return "", err
		}
		return RenderJSON(shaped)
	}
}

func makeSOAPHandler(c *Client, t catalog.Tool) mcp.Handler {
	var order []string
	for _, p := range t.Params {
		order = append(order, p.Name)
	}
	return func(ctx context.Context, args map[string]any) (string, error) {
		for _, p := range t.Params {
			if p.Required {
				if v, ok := args[p.Name]; !ok || v == nil {
					return "", fmt.Errorf("missing required argument %q", p.Name)
				}
			}
		}
		elem := BuildRequestElement(t.Action, args, order)
		return c.DoSOAP(ctx, t.Service, t.Action, elem)
	}
}

// paramLocation resolves the effective placement: declared wins, otherwise
// query for reads and body for writes.
func paramLocation(p catalog.Param, method string) string {
	if p.In != "" {
		return p.In
	}
	switch method {
	case "GET", "DELETE":
		return "query"
	default:
		return "body"
	}
}
