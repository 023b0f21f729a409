package gemini

import (
	"github.com/mark3labs/mcp-go/mcp"
	"google.golang.org/genai"
)

var typeMap = map[string]genai.Type{
	"string":  genai.TypeString,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// ConvertInputSchema converts an MCP tool input schema to the Gemini
// function parameters schema.
func ConvertInputSchema(in mcp.ToolInputSchema) *genai.Schema {
	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(in.Properties)),
		Required:   in.Required,
	}
	for name, prop := range in.Properties {
		pm, ok := prop.(map[string]any)
		if !ok {
			continue
		}
		s.Properties[name] = convertProperty(pm)
	}
	return s
}

// convertProperty converts a single JSON schema property.
// Unknown types degrade to STRING, matching what the model tolerates.
func convertProperty(prop map[string]any) *genai.Schema {
	s := &genai.Schema{
		Type: genai.TypeString,
	}
	if t, ok := prop["type"].(string); ok {
		if mapped, ok := typeMap[t]; ok {
			s.Type = mapped
		}
	}
	if d, ok := prop["description"].(string); ok {
		s.Description = d
	}
	if enum, ok := prop["enum"].([]any); ok {
		for _, e := range enum {
			if es, ok := e.(string); ok {
				s.Enum = append(s.Enum, es)
			}
		}
	}
	if items, ok := prop["items"].(map[string]any); ok {
		s.Items = convertProperty(items)
	}
	if props, ok := prop["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, p := range props {
			if pm, ok := p.(map[string]any); ok {
				s.Properties[name] = convertProperty(pm)
			}
		}
	}
	return s
}
