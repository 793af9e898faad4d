package rrgraph

// Lock acquires the per-node mutex guarding id's radius-mode History (see
// package probanalysis). Two workers analyzing
// overlapping (source,sink) jobs serialize here; contention is rare in
// practice since different jobs' legal sets mostly diverge.
func (s *Store) Lock(id int) { s.locks[id].Lock() }

// Unlock releases the per-node mutex acquired by Lock.
func (s *Store) Unlock(id int) { s.locks[id].Unlock() }
