package models

// CreatedAtField is the server-assigned creation timestamp key on every
// generic document.
const CreatedAtField = "createdAt"

// Document is a generic per-category record.
type Document map[string]interface{}
