package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFieldDefinitionJSON(t *testing.T) {
	var defs []FieldDefinition
	err := json.Unmarshal([]byte(`["rating", {"name": "text", "type": "textarea", "required": true}]`), &defs)
	require.NoError(t, err)
	assert.Equal(t, []FieldDefinition{
		FieldName("rating"),
		{Name: "text", Type: "textarea", Required: true},
	}, defs)

	out, err := json.Marshal(defs)
	require.NoError(t, err)
	assert.JSONEq(t, `["rating", {"name": "text", "type": "textarea", "required": true}]`, string(out))

	err = json.Unmarshal([]byte(`[5]`), &defs)
	assert.Error(t, err)
}

func TestFieldDefinitionBSON(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"category":   "reviews",
		"collection": "reviews",
		"fields":     bson.A{"rating", bson.M{"name": "text", "label": "Review"}},
	})
	require.NoError(t, err)

	var meta CategoryMeta
	require.NoError(t, bson.Unmarshal(raw, &meta))
	assert.Equal(t, []FieldDefinition{FieldName("rating"), {Name: "text", Label: "Review"}}, meta.Fields)
	assert.Equal(t, Descriptor{Collection: "reviews", Fields: []string{"rating", "text"}}, meta.Descriptor())

	bad, err := bson.Marshal(bson.M{"fields": bson.A{int32(3)}})
	require.NoError(t, err)
	assert.Error(t, bson.Unmarshal(bad, &meta))
}

func TestFieldNames(t *testing.T) {
	got := FieldNames([]FieldDefinition{{Name: "a"}, {Name: ""}, {Name: "b"}, {Name: "a"}})
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Empty(t, FieldNames(nil))
}

func TestDescriptorValid(t *testing.T) {
	var nilDesc *Descriptor
	assert.False(t, nilDesc.Valid())
	assert.False(t, (&Descriptor{}).Valid())
	assert.True(t, (&Descriptor{Collection: "c"}).Valid())
}

func TestFieldDefinitionBSONKeepsShape(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"fields": []FieldDefinition{FieldName("q"), {Name: "a", Type: "text"}}})
	require.NoError(t, err)

	doc := bson.Raw(raw)
	assert.Equal(t, "q", doc.Lookup("fields", "0").StringValue())
	assert.Equal(t, "a", doc.Lookup("fields", "1", "name").StringValue())
	assert.Equal(t, "text", doc.Lookup("fields", "1", "type").StringValue())
	_, err = doc.LookupErr("fields", "1", "label")
	assert.Error(t, err)

	var back struct {
		Fields []FieldDefinition `bson:"fields"`
	}
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, []FieldDefinition{FieldName("q"), {Name: "a", Type: "text"}}, back.Fields)
}

func TestUpsertConfigRequestCollectsMetadata(t *testing.T) {
	var req UpsertConfigRequest
	err := json.Unmarshal([]byte(`{
		"category": "faq",
		"collection": "faq",
		"fields": ["q"],
		"title": "FAQ",
		"public": true,
		"createdAt": "2020-01-01T00:00:00Z",
		"_id": "abc"
	}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "faq", req.Category)
	assert.Equal(t, []FieldDefinition{FieldName("q")}, req.Fields)
	assert.Equal(t, map[string]interface{}{"title": "FAQ", "public": true}, req.Extra)

	var plain UpsertConfigRequest
	require.NoError(t, json.Unmarshal([]byte(`{"category":"a","collection":"b","fields":[]}`), &plain))
	assert.Nil(t, plain.Extra)

	assert.Error(t, json.Unmarshal([]byte(`{"category":7}`), &plain))
}

func TestConfigRecordJSONFlattensMetadata(t *testing.T) {
	rec := ConfigRecord{
		Category:   "faq",
		Collection: "faq",
		Fields:     []FieldDefinition{FieldName("q")},
		Extra:      map[string]interface{}{"title": "FAQ", "collection": "ignored"},
	}
	out, err := json.Marshal(&rec)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "FAQ", got["title"])
	assert.Equal(t, "faq", got["collection"])
	assert.Equal(t, []interface{}{"q"}, got["fields"])
	assert.NotContains(t, got, "_id")
}

func TestConfigRecordBSONInlinesMetadata(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"category":   "faq",
		"collection": "faq",
		"fields":     bson.A{"q"},
		"title":      "FAQ",
	})
	require.NoError(t, err)

	var rec ConfigRecord
	require.NoError(t, bson.Unmarshal(raw, &rec))
	assert.Equal(t, "faq", rec.Category)
	assert.Equal(t, map[string]interface{}{"title": "FAQ"}, rec.Extra)
}
