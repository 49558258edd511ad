package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyDataset     = errors.New("category dataset is empty")
)
