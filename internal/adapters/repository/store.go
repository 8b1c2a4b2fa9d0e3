// Package repository defines the profile, project, and document stores and
// their errors.
package repository

import (
	"context"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// CandidateStore provides read/write access to candidate profiles.
// Every Put assigns the next monotonic version for that candidate; the
// returned copy carries the assigned version and timestamp.
type CandidateStore interface {
	PutCandidate(ctx context.Context, profile model.CandidateProfile) (model.CandidateProfile, error)
	// GetCandidate returns ErrCandidateNotFound for unknown ids.
	GetCandidate(ctx context.Context, id string) (model.CandidateProfile, error)
	// ListCandidates returns all profiles ordered by id.
	ListCandidates(ctx context.Context) ([]model.CandidateProfile, error)
	CountCandidates(ctx context.Context) int
}

// ProjectStore provides read/write access to project requirements.
type ProjectStore interface {
	PutProject(ctx context.Context, project model.ProjectRequirement) (model.ProjectRequirement, error)
	// GetProject returns ErrProjectNotFound for unknown ids.
	GetProject(ctx context.Context, id string) (model.ProjectRequirement, error)
	// ListProjects returns all projects ordered by id.
	ListProjects(ctx context.Context) ([]model.ProjectRequirement, error)
	CountProjects(ctx context.Context) int
}

// DocumentStore provides read/write access to parsed source documents.
type DocumentStore interface {
	PutDocument(ctx context.Context, doc model.SourceDocument) (model.SourceDocument, error)
	// GetDocument returns ErrDocumentNotFound for unknown ids.
	GetDocument(ctx context.Context, id string) (model.SourceDocument, error)
	CountDocuments(ctx context.Context) int
}
