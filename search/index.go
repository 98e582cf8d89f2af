package search

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/google/uuid"
	"github.com/linkup-social/linkup/apperr"
	"github.com/linkup-social/linkup/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Content types accepted by the index.
const (
	ContentTypeUser = "user"
	ContentTypePost = "post"
)

const indexQueryLimit = 500

// IndexRequest is the body of an index upsert, issued by the external
// indexing job whenever content changes.
type IndexRequest struct {
	ContentType    string                 `json:"contentType"`
	ContentID      string                 `json:"contentId"`
	SearchableText string                 `json:"searchableText"`
	Tags           []string               `json:"tags"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// indexDoc is the shape stored in the bleve index.
type indexDoc struct {
	ContentType string `json:"contentType"`
	ContentID   string `json:"contentId"`
	Text        string `json:"text"`
	Tags        string `json:"tags"`
}

// Indexer maintains the denormalized search documents: the
// search_index_entries table is the source of truth, the bleve index is an
// optional full-text mirror the engine can query instead of scanning
// captions.
type Indexer struct {
	DB    *gorm.DB
	Index bleve.Index
}

func NewIndexer(db *gorm.DB, index bleve.Index) *Indexer {
	return &Indexer{DB: db, Index: index}
}

// Ready reports whether the full-text mirror is mounted.
func (ix *Indexer) Ready() bool {
	return ix != nil && ix.Index != nil
}

// Upsert writes the search document keyed by (contentType, contentId).
// Text and tags are lower-cased on the way in; calling it twice with the
// same key overwrites rather than duplicates.
func (ix *Indexer) Upsert(req IndexRequest) (*model.SearchIndexEntry, error) {
	contentType := strings.TrimSpace(req.ContentType)
	contentID := strings.TrimSpace(req.ContentID)
	if contentType == "" || contentID == "" {
		return nil, apperr.InvalidArgument("contentType and contentId are required")
	}

	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		tags = append(tags, NormalizeTag(tag))
	}

	entry := model.SearchIndexEntry{
		Id:             uuid.New().String(),
		ContentType:    contentType,
		ContentID:      contentID,
		SearchableText: strings.ToLower(req.SearchableText),
		Tags:           tags,
		UpdatedAt:      time.Now(),
	}
	if req.Metadata != nil {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, apperr.InvalidArgument("metadata is not serializable")
		}
		entry.Metadata = datatypes.JSON(raw)
	}

	result := ix.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_type"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"searchable_text", "tags", "metadata", "updated_at",
		}),
	}).Create(&entry)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "fail to upsert search index entry")
	}

	if ix.Ready() {
		doc := indexDoc{
			ContentType: contentType,
			ContentID:   contentID,
			Text:        entry.SearchableText,
			Tags:        strings.Join(tags, " "),
		}
		if err := ix.Index.Index(contentType+":"+contentID, doc); err != nil {
			return nil, apperr.Internal(err, "fail to update full-text index")
		}
	}
	return &entry, nil
}

// QueryContentIDs runs a full-text match against the mirror and returns the
// content ids of the hits for the given content type, best match first.
func (ix *Indexer) QueryContentIDs(contentType, query string) ([]string, error) {
	if !ix.Ready() {
		return nil, nil
	}

	match := bleve.NewMatchQuery(strings.ToLower(query))
	match.SetField("text")
	typeFilter := bleve.NewTermQuery(contentType)
	typeFilter.SetField("contentType")

	request := bleve.NewSearchRequest(bleve.NewConjunctionQuery(match, typeFilter))
	request.Size = indexQueryLimit
	request.Fields = []string{"contentId"}

	result, err := ix.Index.Search(request)
	if err != nil {
		return nil, apperr.Internal(err, "full-text query failed")
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		if id, ok := hit.Fields["contentId"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// NewMemIndex builds an in-memory bleve index with the document mapping the
// Indexer expects. Used by tests and by deployments that do not persist the
// mirror.
func NewMemIndex() (bleve.Index, error) {
	return bleve.NewMemOnly(bleve.NewIndexMapping())
}
