// File: validate.go
// Role: post-load consistency checks — edge symmetry, lookup coherence,
// bounding boxes, weight/demand ranges. Each check stops at its first
// violation; Validate joins the failures of all four checks with
// errors.Join, so one report names at most one violation per check.
package rrgraph

import (
	"errors"
	"fmt"
)

// Validate checks every structural invariant of a freshly built Store. It
// is called once by newStore; nothing after load should be able to violate
// these, since the core never mutates nodes/switches/grid.
func (s *Store) Validate() error {
	var errs []error
	if err := s.validateBoundingBoxes(); err != nil {
		errs = append(errs, err)
	}
	if err := s.validateEdgeSymmetry(); err != nil {
		errs = append(errs, err)
	}
	if err := s.validateLookupCoherence(); err != nil {
		errs = append(errs, err)
	}
	if err := s.validateWeightsAndDemands(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// validateBoundingBoxes checks invariant 1: xlow<=xhigh && ylow<=yhigh.
func (s *Store) validateBoundingBoxes() error {
	for _, nd := range s.nodes {
		if nd.Xlow > nd.Xhigh || nd.Ylow > nd.Yhigh {
			return fmt.Errorf("%w: node %d", ErrBadBoundingBox, nd.ID)
		}
	}
	return nil
}

// validateEdgeSymmetry checks that v in out(u) with switch s implies u in
// in(v) with the same switch s.
func (s *Store) validateEdgeSymmetry() error {
	for from, nd := range s.nodes {
		for _, e := range nd.OutEdges {
			if !hasInEdge(&s.nodes[e.To], from, e.Switch) {
				return fmt.Errorf("%w: %d->%d via switch %d", ErrEdgeAsymmetry, from, e.To, e.Switch)
			}
		}
	}
	return nil
}

func hasInEdge(nd *Node, from, sw int) bool {
	for _, e := range nd.InEdges {
		if e.To == from && e.Switch == sw {
			return true
		}
	}
	return false
}

// validateLookupCoherence checks that every non-OPEN lookup entry points to
// a node of the right type whose bounding box contains the indexed
// coordinate (with the CHANX axis swap), and whose side/ptc match for pins.
func (s *Store) validateLookupCoherence() error {
	for k, id := range s.index {
		nd := &s.nodes[id]
		if nd.Type != k.Type {
			return fmt.Errorf("%w: slot %+v resolves to type %s", ErrLookupMismatch, k, nd.Type)
		}
		x, y := k.X, k.Y
		if k.Type == CHANX {
			x, y = k.Y, k.X
		}
		if x < nd.Xlow || x > nd.Xhigh || y < nd.Ylow || y > nd.Yhigh {
			return fmt.Errorf("%w: slot %+v outside node %d bounds", ErrLookupMismatch, k, id)
		}
		if nd.Ptc != k.Ptc {
			return fmt.Errorf("%w: slot %+v ptc mismatch on node %d", ErrLookupMismatch, k, id)
		}
		if (k.Type == IPIN || k.Type == OPIN) && nd.Side != k.Side {
			return fmt.Errorf("%w: slot %+v side mismatch on node %d", ErrLookupMismatch, k, id)
		}
	}
	return nil
}

// validateWeightsAndDemands checks that weight and demand are never
// negative. Weight may legitimately be 0 for pass-type nodes.
func (s *Store) validateWeightsAndDemands() error {
	for _, nd := range s.nodes {
		if nd.Weight < 0 {
			return fmt.Errorf("%w: node %d", ErrNegativeWeight, nd.ID)
		}
		if nd.Demand < 0 {
			return fmt.Errorf("%w: node %d", ErrNegativeDemand, nd.ID)
		}
	}
	return nil
}
