package todo

// bundledSchemaName is the resource name the bundled schema is registered
// under when compiling.
const bundledSchemaName = "todos.schema.json"

// bundledSchema is the built-in JSON Schema for the todo file format, used
// when no schema file exists on disk.
const bundledSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "gotodo task list",
  "description": "Ordered list of tasks persisted as todos.json.",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "done"],
    "additionalProperties": false,
    "properties": {
      "text": {
        "type": "string",
        "minLength": 1,
        "description": "Task text with surrounding whitespace trimmed."
      },
      "done": {
        "type": "boolean",
        "description": "Completion state."
      }
    }
  }
}
`

// BundledSchema returns the built-in JSON Schema for the todo file format.
func BundledSchema() ([]byte, error) {
	return []byte(bundledSchema), nil
}
