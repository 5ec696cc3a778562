package storage

import (
	"context"
)

// Argument is one bound annotation argument, rendered as source text.
type Argument struct {
	Name     string
	Rendered string
}

// AnnotationRecord is one annotation of one declaration in the index.
type AnnotationRecord struct {
	Declaration string
	// Position is the index of the annotation on its declaration.
	Position int
	// ClassId is empty when the annotation class could not be determined.
	ClassId       string
	UseSiteTarget string
	// Arguments are sorted by name.
	Arguments []Argument
}

// IndexStore persists annotation index snapshots.
type IndexStore interface {
	// SaveIndex replaces the stored snapshot with records.
	SaveIndex(ctx context.Context, records []AnnotationRecord) error

	// LoadIndex returns the stored snapshot ordered by declaration and
	// position.
	LoadIndex(ctx context.Context) ([]AnnotationRecord, error)

	// FindByClassId returns the annotations instantiating classId.
	FindByClassId(ctx context.Context, classId string) ([]AnnotationRecord, error)

	Close() error
}
