package llm

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects T into an inline JSON schema with every object
// closed to additional properties.
func GenerateSchema[T any](name string) *ResponseSchema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	delete(m, "$schema")
	closeObjects(m)

	out, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return &ResponseSchema{Name: name, Schema: out}
}

func closeObjects(schema map[string]interface{}) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		if _, set := schema["additionalProperties"]; !set {
			schema["additionalProperties"] = false
		}
	}
	if properties, ok := schema["properties"].(map[string]interface{}); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]interface{}); ok {
				closeObjects(propMap)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		closeObjects(items)
	}
}
