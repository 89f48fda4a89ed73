package service

import (
	"log"

	"dufaa.com/communitybackend/internal/model"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const (
	indexPosts     = "posts"
	indexPeople    = "people"
	indexMaterials = "materials"
)

// SearchService keeps the Meilisearch indexes in step with the store.
// Index writes are best-effort: a failure is logged and never fails the
// primary write.
type SearchService interface {
	IndexPost(post *model.Post)
	DeletePost(id uuid.UUID)
	IndexPerson(user *model.User)
	DeletePerson(id uuid.UUID)
	IndexMaterial(material *model.Material)
	DeleteMaterial(id uuid.UUID)
	Search(scope, query string, limit int64) ([]map[string]interface{}, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	sortable := []string{"created_at"}
	if _, err := s.client.Index(indexPosts).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to configure search index %q: %v", indexPosts, err)
	}
}

func (s *searchService) IndexPost(post *model.Post) {
	doc := map[string]interface{}{
		"id":         post.ID.String(),
		"body":       s.sanitizer.Sanitize(post.Body),
		"author":     post.User.DisplayName,
		"created_at": post.CreatedAt.Unix(),
	}
	s.addDocument(indexPosts, doc)
}

func (s *searchService) DeletePost(id uuid.UUID) {
	s.deleteDocument(indexPosts, id)
}

func (s *searchService) IndexPerson(user *model.User) {
	doc := map[string]interface{}{
		"id":           user.ID.String(),
		"display_name": user.DisplayName,
		"college_id":   user.CollegeID,
	}
	if user.Profile != nil && user.Profile.Bio != nil {
		doc["bio"] = s.sanitizer.Sanitize(*user.Profile.Bio)
	}
	s.addDocument(indexPeople, doc)
}

func (s *searchService) DeletePerson(id uuid.UUID) {
	s.deleteDocument(indexPeople, id)
}

func (s *searchService) IndexMaterial(material *model.Material) {
	doc := map[string]interface{}{
		"id":    material.ID.String(),
		"title": material.Title,
		"type":  material.Type,
	}
	s.addDocument(indexMaterials, doc)
}

func (s *searchService) DeleteMaterial(id uuid.UUID) {
	s.deleteDocument(indexMaterials, id)
}

func (s *searchService) Search(scope, query string, limit int64) ([]map[string]interface{}, error) {
	index := indexPosts
	switch scope {
	case "people":
		index = indexPeople
	case "materials":
		index = indexMaterials
	}

	resp, err := s.client.Index(index).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	hits := make([]map[string]interface{}, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		var doc map[string]interface{}
		if err := hit.Decode(&doc); err == nil {
			hits = append(hits, doc)
		}
	}
	return hits, nil
}

func (s *searchService) addDocument(index string, doc map[string]interface{}) {
	primaryKey := "id"
	if _, err := s.client.Index(index).AddDocuments([]map[string]interface{}{doc}, &primaryKey); err != nil {
		log.Printf("failed to index document in %q: %v", index, err)
	}
}

func (s *searchService) deleteDocument(index string, id uuid.UUID) {
	if _, err := s.client.Index(index).DeleteDocument(id.String()); err != nil {
		log.Printf("failed to delete document %s from %q: %v", id, index, err)
	}
}
