package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/logsleuth/logsleuth/pkg/agent/tools"
)

// FormatToolSchemas renders the full tool documentation block for the
// system prompt: one section per tool with its description, parameter
// schema, and a concrete XML usage example.
func FormatToolSchemas(toolsList []tools.Tool) string {
	// Sort by name so the prompt is stable across runs
	sorted := make([]tools.Tool, len(toolsList))
	copy(sorted, toolsList)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name() < sorted[j].Name()
	})

	var builder strings.Builder
	for _, tool := range sorted {
		builder.WriteString(formatToolSchema(tool))
		builder.WriteString("\n")
	}
	return builder.String()
}

// formatToolSchema renders a single tool's documentation section.
func formatToolSchema(tool tools.Tool) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("## %s\n", tool.Name()))
	builder.WriteString(fmt.Sprintf("%s\n\n", tool.Description()))

	schema := tool.Schema()

	if params := formatParameters(schema); params != "" {
		builder.WriteString("Parameters:\n")
		builder.WriteString(params)
		builder.WriteString("\n")
	}

	// Tools can provide a hand-written example; otherwise generate one
	// from the schema.
	example := ""
	if provider, ok := tool.(XMLExampleProvider); ok {
		example = provider.XMLExample()
	}
	if example == "" {
		example = GenerateXMLExample(schema, tool.Name())
	}

	builder.WriteString("Usage:\n")
	builder.WriteString(example)
	builder.WriteString("\n")

	return builder.String()
}

// enumValues extracts string enum values from a property schema,
// tolerating both []string and []interface{} representations.
func enumValues(propSchema map[string]interface{}) []string {
	switch enum := propSchema["enum"].(type) {
	case []string:
		return enum
	case []interface{}:
		values := make([]string, 0, len(enum))
		for _, v := range enum {
			if s, ok := v.(string); ok {
				values = append(values, s)
			}
		}
		return values
	}
	return nil
}

// formatParameters lists each parameter with its type, requiredness, and
// description.
func formatParameters(schema map[string]interface{}) string {
	properties, ok := schema["properties"].(map[string]interface{})
	if !ok || len(properties) == 0 {
		return ""
	}

	required := make(map[string]bool)
	switch req := schema["required"].(type) {
	case []string:
		for _, field := range req {
			required[field] = true
		}
	case []interface{}:
		for _, field := range req {
			if s, ok := field.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		propMap, ok := properties[name].(map[string]interface{})
		if !ok {
			continue
		}

		propType, _ := propMap["type"].(string)
		description, _ := propMap["description"].(string)
		requiredness := "optional"
		if required[name] {
			requiredness = "required"
		}

		builder.WriteString(fmt.Sprintf("- %s (%s, %s): %s\n", name, propType, requiredness, description))

		if values := enumValues(propMap); len(values) > 0 {
			rendered, err := json.Marshal(values)
			if err == nil {
				builder.WriteString(fmt.Sprintf("  Allowed values: %s\n", rendered))
			}
		}
	}

	return builder.String()
}
