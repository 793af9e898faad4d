package options

import "errors"

// Sentinel configuration errors. All are fatal to the run.
var (
	ErrInvalidNumThreads        = errors.New("options: num_threads must be > 0")
	ErrInvalidMaxConnLength     = errors.New("options: max_connection_length must be >= 1")
	ErrLengthProbsNotNormalized = errors.New("options: length_probabilities must sum to 1")
	ErrMissingRRGraphFile       = errors.New("options: rr_graph_file is required")
)
