package todo

// SchemaURL is the resource name the embedded schema is compiled under.
const SchemaURL = "https://todolist.dev/schemas/tasks.schema.json"

// Schema is the JSON Schema of the persisted task blob.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "todolist tasks",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed", "createdAt"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "description": {"type": "string"},
      "completed": {"type": "boolean"},
      "createdAt": {"type": ["string", "number"]}
    }
  }
}`
