package course

import (
	"context"
	"errors"
	"fmt"

	"github.com/aisystant/coursesync/content"
)

// ErrCourseNotFound is returned when the catalog has no such product code.
var ErrCourseNotFound = errors.New("course not found")

// ErrNoPassing is returned when the user has no attempt for the course version.
var ErrNoPassing = errors.New("no passing for course version")

// Catalog is the part of the content service an import needs.
type Catalog interface {
	TextSource
	FindCourse(ctx context.Context, productCode string) (*content.Course, error)
	StartCourse(ctx context.Context, versionID string) error
	PassingID(ctx context.Context, versionID string) (string, bool, error)
	CourseVersion(ctx context.Context, versionID string) (*content.CourseVersion, error)
}

// Version resolves a product code to its active version and the user's
// passing, enrolling the user first.
func Version(ctx context.Context, cat Catalog, productCode string) (*content.CourseVersion, string, error) {
	c, err := cat.FindCourse(ctx, productCode)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrCourseNotFound, productCode)
	}

	if err := cat.StartCourse(ctx, c.ActiveVersionID); err != nil {
		return nil, "", fmt.Errorf("starting course: %w", err)
	}

	passingID, ok, err := cat.PassingID(ctx, c.ActiveVersionID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", fmt.Errorf("%w %s", ErrNoPassing, c.ActiveVersionID)
	}

	v, err := cat.CourseVersion(ctx, c.ActiveVersionID)
	if err != nil {
		return nil, "", err
	}
	return v, passingID, nil
}

// Import resolves productCode and builds its document tree.
func Import(ctx context.Context, cat Catalog, b *Builder, productCode string) (*Result, error) {
	v, passingID, err := Version(ctx, cat, productCode)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, v.Sections, passingID)
}
