package hcm

import "hrbridge/pkg/catalog"

// AgentDefinitionTools manage the vendor's registry of conversational agent
// definitions (the records that authorize an agent to act inside the HR
// platform).
func AgentDefinitionTools() []catalog.Tool {
	return []catalog.Tool{
		{
			Name:        "agentdef_list_definitions",
			Title:       "List Agent Definitions",
			Description: "List registered agent definitions and their enablement state.",
			Method:      "GET",
			Path:        "/agentDefinitions",
			Scopes:      []string{"agentdef:read"},
			Select:      "data[].{id: id, name: descriptor, enabled: enabled}",
		},
		{
			Name:        "agentdef_get_definition",
			Title:       "Get Agent Definition",
			Description: "Fetch one agent definition including its granted capabilities.",
			Method:      "GET",
			Path:        "/agentDefinitions/{definitionId}",
			Scopes:      []string{"agentdef:read"},
			Params: []catalog.Param{
				{Name: "definitionId", In: "path", Required: true},
			},
		},
		{
			Name:        "agentdef_update_enabled",
			Title:       "Enable or Disable Agent Definition",
			Description: "Toggle whether an agent definition may be used.",
			Method:      "PATCH",
			Path:        "/agentDefinitions/{definitionId}",
			Scopes:      []string{"agentdef:write"},
			Params: []catalog.Param{
				{Name: "definitionId", In: "path", Required: true},
				{Name: "enabled", In: "body", Type: "boolean", Required: true},
			},
		},
	}
}
