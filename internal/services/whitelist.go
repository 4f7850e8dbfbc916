package services

import (
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
)

// FilterFields copies the allowed keys present in raw into a new document
// and stamps it with now under createdAt. Unlisted keys are dropped and
// missing ones are left out; a caller-supplied createdAt never survives.
func FilterFields(raw map[string]interface{}, allowed []string, now time.Time) models.Document {
	doc := make(models.Document, len(allowed)+1)
	for _, field := range allowed {
		if v, ok := raw[field]; ok {
			doc[field] = v
		}
	}
	doc[models.CreatedAtField] = now
	return doc
}
