package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Descriptor is the resolved write policy for a category: the physical
// collection that backs it and the field names callers may write.
type Descriptor struct {
	Collection string   `json:"collection"`
	Fields     []string `json:"fields"`
}

// Valid reports whether the descriptor can be used to access a collection.
func (d *Descriptor) Valid() bool {
	return d != nil && d.Collection != ""
}

// FieldDefinition describes one administrator-approved field. Only Name takes
// part in whitelisting; the rest is carried for clients that render forms.
// A definition that arrived as a bare name is written back as a bare name.
type FieldDefinition struct {
	Name     string `bson:"name" json:"name"`
	Type     string `bson:"type,omitempty" json:"type,omitempty"`
	Label    string `bson:"label,omitempty" json:"label,omitempty"`
	Required bool   `bson:"required,omitempty" json:"required,omitempty"`

	bare bool
}

// FieldName returns the definition for a field given only by name.
func FieldName(name string) FieldDefinition {
	return FieldDefinition{Name: name, bare: true}
}

// UnmarshalJSON accepts either a bare field name or a definition object.
func (f *FieldDefinition) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*f = FieldName(name)
		return nil
	}
	type plain FieldDefinition
	var def plain
	if err := json.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("field definition must be a string or an object: %w", err)
	}
	*f = FieldDefinition(def)
	return nil
}

// UnmarshalBSONValue accepts either a string or an embedded document, so
// records written with bare name lists decode the same way as full ones.
func (f *FieldDefinition) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		name, ok := bsoncore.Value{Type: t, Data: data}.StringValueOK()
		if !ok {
			return errors.New("malformed field name")
		}
		*f = FieldName(name)
		return nil
	case bsontype.EmbeddedDocument:
		type plain FieldDefinition
		var def plain
		if err := bson.Unmarshal(data, &def); err != nil {
			return err
		}
		*f = FieldDefinition(def)
		return nil
	default:
		return fmt.Errorf("unsupported field definition type %s", t)
	}
}

// MarshalJSON keeps the shape the definition arrived in.
func (f FieldDefinition) MarshalJSON() ([]byte, error) {
	if f.bare {
		return json.Marshal(f.Name)
	}
	type plain FieldDefinition
	return json.Marshal(plain(f))
}

// MarshalBSONValue stores bare names as strings and full definitions as
// embedded documents.
func (f FieldDefinition) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if f.bare {
		return bsontype.String, bsoncore.AppendString(nil, f.Name), nil
	}
	type plain FieldDefinition
	return bson.MarshalValue(plain(f))
}

// FieldNames returns the names of defs in order, skipping blanks and repeats.
func FieldNames(defs []FieldDefinition) []string {
	names := make([]string, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		if d.Name == "" {
			continue
		}
		if _, dup := seen[d.Name]; dup {
			continue
		}
		seen[d.Name] = struct{}{}
		names = append(names, d.Name)
	}
	return names
}

// ConfigRecord is the administrative configuration stored per category in
// the configs collection. Extra holds any other metadata the administrator
// sent (title, description, ...); it is stored and returned alongside the
// descriptor but never affects whitelisting.
type ConfigRecord struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"-"`
	Category   string                 `bson:"category" json:"category"`
	Collection string                 `bson:"collection" json:"collection"`
	Fields     []FieldDefinition      `bson:"fields" json:"fields"`
	CreatedAt  time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time              `bson:"updatedAt" json:"updatedAt"`
	Extra      map[string]interface{} `bson:",inline" json:"-"`
}

// MarshalJSON flattens Extra into the top level of the record. Keys owned by
// the record itself win over metadata of the same name.
func (r ConfigRecord) MarshalJSON() ([]byte, error) {
	type plain ConfigRecord
	base, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return base, err
	}

	var own map[string]json.RawMessage
	if err := json.Unmarshal(base, &own); err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(own)+len(r.Extra))
	for k, v := range r.Extra {
		out[k] = v
	}
	for k, v := range own {
		out[k] = v
	}
	return json.Marshal(out)
}

// Descriptor derives the whitelist policy from the record.
func (r *ConfigRecord) Descriptor() Descriptor {
	return Descriptor{Collection: r.Collection, Fields: FieldNames(r.Fields)}
}

// CategoryMeta is the resolver's lookup entry in the _categories collection.
type CategoryMeta struct {
	Category   string            `bson:"category" json:"category"`
	Collection string            `bson:"collection" json:"collection"`
	Fields     []FieldDefinition `bson:"fields" json:"fields"`
}

// Descriptor derives the whitelist policy from the lookup entry.
func (m *CategoryMeta) Descriptor() Descriptor {
	return Descriptor{Collection: m.Collection, Fields: FieldNames(m.Fields)}
}

// reservedConfigKeys are owned by the server or by the descriptor and are
// never taken from request metadata.
var reservedConfigKeys = map[string]struct{}{
	"_id":        {},
	"category":   {},
	"collection": {},
	"fields":     {},
	"createdAt":  {},
	"updatedAt":  {},
}

// IsReservedConfigKey reports whether key is owned by ConfigRecord itself.
func IsReservedConfigKey(key string) bool {
	_, ok := reservedConfigKeys[key]
	return ok
}

// UpsertConfigRequest is the administrative write payload. Top-level keys
// other than the descriptor's land in Extra.
type UpsertConfigRequest struct {
	Category   string                 `json:"category"`
	Collection string                 `json:"collection"`
	Fields     []FieldDefinition      `json:"fields"`
	Extra      map[string]interface{} `json:"-"`
}

// UnmarshalJSON decodes the descriptor keys and collects the rest into Extra.
func (r *UpsertConfigRequest) UnmarshalJSON(data []byte) error {
	type plain UpsertConfigRequest
	var req plain
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}

	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k := range all {
		if IsReservedConfigKey(k) {
			delete(all, k)
		}
	}
	if len(all) > 0 {
		req.Extra = all
	}
	*r = UpsertConfigRequest(req)
	return nil
}
