package batch

// Failure is the outcome of a batch item that could not be processed.
// Errors are collected per item, never raised across the batch.
type Failure struct {
	id  string
	err error
}

// NewFailure creates a failed batch item record. The id may be empty when
// the item never received one (e.g. a missing id on update).
func NewFailure(id string, err error) Failure { return Failure{id: id, err: err} }

// ID returns the item identifier, if it had one.
func (f Failure) ID() string { return f.id }

// Err returns the per-item error.
func (f Failure) Err() error { return f.err }

// IndexReport summarizes a batch index operation.
type IndexReport struct {
	Success []string
	Failed  []Failure
	Total   int
}

// UpdateReport summarizes a batch update operation.
type UpdateReport struct {
	Updated []string
	Failed  []Failure
	Total   int
}

// DeleteReport summarizes a batch delete operation. Missing ids are a
// defined partition, not failures.
type DeleteReport struct {
	Deleted  []string
	NotFound []string
	Total    int
}
