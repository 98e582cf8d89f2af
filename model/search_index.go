package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/*

SearchIndexEntry is a denormalized search document, upserted by the external
indexing job whenever content changes. Search may read it as an accelerated
path but must also work directly against Users and Posts when the table is
empty.

ContentType + ContentID: composite unique key, e.g. ("post", post id)
SearchableText: lower-cased text blob to match against
Tags: lower-cased hashtag list extracted from the content
Metadata: opaque extra fields the indexing job wants to carry along

*/
type SearchIndexEntry struct {
	Id             string `gorm:"primaryKey"`
	ContentType    string `gorm:"uniqueIndex:idx_content"`
	ContentID      string `gorm:"uniqueIndex:idx_content"`
	SearchableText string
	Tags           pq.StringArray `gorm:"type:text[]"`
	Metadata       datatypes.JSON
	UpdatedAt      time.Time
}
