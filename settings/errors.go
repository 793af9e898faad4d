package settings

import "errors"

var (
	// ErrLengthProbsNotNormalized indicates the user's length-probability
	// list did not sum to 1 within tolerance before realizable-length
	// filtering. Fatal to the run.
	ErrLengthProbsNotNormalized = errors.New("settings: length probabilities do not sum to 1")

	// ErrNoRealizableLength indicates every supplied length is larger than
	// the test area can realize, leaving nothing to normalize.
	ErrNoRealizableLength = errors.New("settings: no realizable connection length in test area")
)
