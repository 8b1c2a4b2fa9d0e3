package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// MemoryStore implements CandidateStore, ProjectStore, and DocumentStore with
// versioned in-memory maps. Writes assign ids when absent, bump the entity's
// version, and stamp UpdatedAt; reads return the stored value, which callers
// treat as read-only.
type MemoryStore struct {
	mu         sync.RWMutex
	candidates map[string]model.CandidateProfile
	projects   map[string]model.ProjectRequirement
	documents  map[string]model.SourceDocument
	now        func() time.Time
}

// NewMemoryStore creates an empty store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		candidates: make(map[string]model.CandidateProfile),
		projects:   make(map[string]model.ProjectRequirement),
		documents:  make(map[string]model.SourceDocument),
		now:        time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PutCandidate stores a profile, assigning an id when empty and the next
// version for that candidate.
func (s *MemoryStore) PutCandidate(_ context.Context, profile model.CandidateProfile) (model.CandidateProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(profile.ID) == "" {
		profile.ID = uuid.NewString()
	}
	profile.Version = s.candidates[profile.ID].Version + 1
	profile.UpdatedAt = s.now().UTC()
	s.candidates[profile.ID] = profile
	return profile, nil
}

// GetCandidate returns the profile for id.
func (s *MemoryStore) GetCandidate(_ context.Context, id string) (model.CandidateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.candidates[id]
	if !ok {
		return model.CandidateProfile{}, ErrCandidateNotFound
	}
	return profile, nil
}

// ListCandidates returns every profile ordered by id.
func (s *MemoryStore) ListCandidates(_ context.Context) ([]model.CandidateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CandidateProfile, 0, len(s.candidates))
	for _, p := range s.candidates {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CountCandidates returns the number of stored profiles.
func (s *MemoryStore) CountCandidates(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates)
}

// PutProject stores a project, assigning an id when empty and the next
// version for that project.
func (s *MemoryStore) PutProject(_ context.Context, project model.ProjectRequirement) (model.ProjectRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(project.ID) == "" {
		project.ID = uuid.NewString()
	}
	project.Version = s.projects[project.ID].Version + 1
	project.UpdatedAt = s.now().UTC()
	s.projects[project.ID] = project
	return project, nil
}

// GetProject returns the project for id.
func (s *MemoryStore) GetProject(_ context.Context, id string) (model.ProjectRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return model.ProjectRequirement{}, ErrProjectNotFound
	}
	return project, nil
}

// ListProjects returns every project ordered by id.
func (s *MemoryStore) ListProjects(_ context.Context) ([]model.ProjectRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ProjectRequirement, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CountProjects returns the number of stored projects.
func (s *MemoryStore) CountProjects(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// PutDocument stores a document, assigning an id when empty and the next
// version for that document.
func (s *MemoryStore) PutDocument(_ context.Context, doc model.SourceDocument) (model.SourceDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(doc.ID) == "" {
		doc.ID = uuid.NewString()
	}
	doc.Version = s.documents[doc.ID].Version + 1
	doc.UpdatedAt = s.now().UTC()
	s.documents[doc.ID] = doc
	return doc, nil
}

// GetDocument returns the document for id.
func (s *MemoryStore) GetDocument(_ context.Context, id string) (model.SourceDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return model.SourceDocument{}, ErrDocumentNotFound
	}
	return doc, nil
}

// CountDocuments returns the number of stored documents.
func (s *MemoryStore) CountDocuments(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
