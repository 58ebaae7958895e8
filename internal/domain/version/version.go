package version

import "time"

// Version is an immutable content snapshot of a document. Versions for a
// given document form a gap-free increasing sequence starting at 1.
type Version struct {
	docID     string
	content   string
	number    int
	createdAt time.Time
	metadata  map[string]string
}

// New creates a version snapshot.
func New(docID, content string, number int, createdAt time.Time, metadata map[string]string) Version {
	return Version{
		docID: docID, content: content, number: number,
		createdAt: createdAt, metadata: metadata,
	}
}

// DocID returns the owning document id (a weak back-reference).
func (v Version) DocID() string { return v.docID }

// Content returns the content snapshot.
func (v Version) Content() string { return v.content }

// Number returns the 1-based version number.
func (v Version) Number() int { return v.number }

// CreatedAt returns the snapshot timestamp.
func (v Version) CreatedAt() time.Time { return v.createdAt }

// Metadata returns version-local annotations, if any.
func (v Version) Metadata() map[string]string { return v.metadata }
