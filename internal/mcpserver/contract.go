package mcpserver

// PetSchemaContract describes the pet record LLM consumers read and write.
const PetSchemaContract = `# Petdesk Pet Schema

Every pet in the Petdesk store has exactly these fields.

| Field         | Type    | Rules                                   |
|---------------|---------|-----------------------------------------|
| id            | string  | unique; a UUID is assigned when omitted |
| name          | string  | required                                |
| type          | string  | required, e.g. Dog, Cat, Bird           |
| age           | number  | years, not negative                     |
| weight        | number  | kilograms, not negative                 |
| caregiverName | string  | required                                |
| isDocile      | boolean | true or false                           |

## Rules

1. **Updates replace the whole record.** Send every field except the id.
2. **Filters are exact and case-sensitive.** ` + "`" + `type=dog` + "`" + ` does not match ` + "`" + `Dog` + "`" + `.
3. **Search** (` + "`" + `search_pets` + "`" + `) matches words and prefixes in name, type and caregiverName.
4. **Order** follows the order of the underlying db.json file.

## Example

` + "```" + `json
{
  "id": "6f1c2e0a-3b7d-4c55-9a1e-2f6d8b0c4e11",
  "name": "Rex",
  "type": "Dog",
  "age": 3,
  "weight": 12.5,
  "caregiverName": "Ana",
  "isDocile": true
}
` + "```" + `
`
