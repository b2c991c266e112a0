// Package todo defines the task model and the persisted blob format.
//
// The blob stored under the TASKS key is a JSON array:
//
//	[
//	  {
//	    "id": "5f0c1c1e-8a57-4f4e-9d0c-2b7a1c7f4b10",
//	    "title": "Buy milk",
//	    "description": "2 litres",
//	    "completed": false,
//	    "createdAt": "2024-01-01T09:30:00.123Z"
//	  }
//	]
//
// # createdAt
//
// Tasks are written with createdAt as an RFC 3339 string with
// nanoseconds in UTC. On read the field also accepts ISO-8601 strings
// without a zone (treated as UTC), bare dates, and JSON numbers holding
// epoch milliseconds.
//
// # Validation
//
// DecodeTasks checks the blob against the embedded JSON Schema
// (draft 2020-12) before building Task values, so a malformed or
// wrongly shaped blob yields a *ParseError that names the offending path
// instead of a partially decoded list. Validate reports every problem
// at once and is what the doctor command prints.
//
// # Encoding
//
// EncodeTasks writes compact JSON with no trailing newline, so an empty
// collection is stored as exactly "[]".
package todo
