package wotan

import "fmt"

// ErrNoJobs is returned by Run when Analysis Settings produced zero test
// tiles or no realizable connection length yielded any source/sink pin
// pair — there is nothing to analyze.
var ErrNoJobs = fmt.Errorf("wotan: no connection jobs derived from settings")

// ErrUnknownRRGraphMode is returned for an options.RRGraphMode value
// neither rrio loader recognizes.
var ErrUnknownRRGraphMode = fmt.Errorf("wotan: unknown rr_graph_mode")
