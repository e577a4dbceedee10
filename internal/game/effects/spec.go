package effects

import (
	"errors"
	"fmt"
)

// Op tags the variant of an effect spec.
type Op string

const (
	// OpDelta adds Amount to Resource.
	OpDelta Op = "delta"
	// OpSet sets Resource to Value.
	OpSet Op = "set"
	// OpScale multiplies Resource by Num/Den and applies the difference as a
	// delta. Covers the original percentage and divide-money card effects.
	OpScale Op = "scale"
	// OpConditional evaluates If against the acting player and applies Then
	// or Else.
	OpConditional Op = "conditional"
	// OpSequence applies Steps in order.
	OpSequence Op = "sequence"
	// OpChallenge resolves a dice challenge on Stat against Difficulty and
	// applies OnSuccess or OnFailure.
	OpChallenge Op = "challenge"
)

// ErrMalformedEffect marks an effect whose shape is not one of the grammar
// variants. Like ErrUnknownResource it is fatal to the card, not the run.
var ErrMalformedEffect = errors.New("malformed effect")

// Spec is the data-driven description of what a card does. One tagged struct
// rather than per-card subtypes keeps the grammar serializable and lets a
// single applier interpret every card.
type Spec struct {
	Op Op `json:"op"`

	// delta / set / scale
	Resource Resource `json:"resource,omitempty"`
	Amount   int      `json:"amount,omitempty"`
	Value    int      `json:"value,omitempty"`
	Num      int      `json:"num,omitempty"`
	Den      int      `json:"den,omitempty"`

	// conditional
	If   *Predicate `json:"if,omitempty"`
	Then *Spec      `json:"then,omitempty"`
	Else *Spec      `json:"else,omitempty"`

	// sequence
	Steps []*Spec `json:"steps,omitempty"`

	// challenge
	Stat       Resource `json:"stat,omitempty"`
	Difficulty int      `json:"difficulty,omitempty"`
	OnSuccess  *Spec    `json:"on_success,omitempty"`
	OnFailure  *Spec    `json:"on_failure,omitempty"`
}

// Predicate compares an already-resolved player attribute against a constant.
type Predicate struct {
	Resource Resource `json:"resource"`
	Cmp      string   `json:"cmp"` // lt, le, eq, ne, ge, gt
	Value    int      `json:"value"`
}

// Eval resolves the predicate against the target's current state.
func (p *Predicate) Eval(target Target) (bool, error) {
	current, err := target.Resource(p.Resource)
	if err != nil {
		return false, err
	}
	switch p.Cmp {
	case "lt":
		return current < p.Value, nil
	case "le":
		return current <= p.Value, nil
	case "eq":
		return current == p.Value, nil
	case "ne":
		return current != p.Value, nil
	case "ge":
		return current >= p.Value, nil
	case "gt":
		return current > p.Value, nil
	default:
		return false, fmt.Errorf("%w: predicate comparator %q", ErrMalformedEffect, p.Cmp)
	}
}

// Validate checks the spec is one of the grammar variants and that every
// resource it names is part of the player model. It recurses into nested
// specs so a bad branch is caught before any mutation happens.
func (s *Spec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil spec", ErrMalformedEffect)
	}
	switch s.Op {
	case OpDelta:
		if err := knownResource("delta", s.Resource); err != nil {
			return err
		}
	case OpSet:
		if err := knownResource("set", s.Resource); err != nil {
			return err
		}
	case OpScale:
		if err := knownResource("scale", s.Resource); err != nil {
			return err
		}
		if s.Den == 0 {
			return fmt.Errorf("%w: scale with zero denominator", ErrMalformedEffect)
		}
	case OpConditional:
		if s.If == nil {
			return fmt.Errorf("%w: conditional without predicate", ErrMalformedEffect)
		}
		if err := knownResource("predicate", s.If.Resource); err != nil {
			return err
		}
		if s.Then == nil && s.Else == nil {
			return fmt.Errorf("%w: conditional without branches", ErrMalformedEffect)
		}
		if s.Then != nil {
			if err := s.Then.Validate(); err != nil {
				return err
			}
		}
		if s.Else != nil {
			if err := s.Else.Validate(); err != nil {
				return err
			}
		}
	case OpSequence:
		if len(s.Steps) == 0 {
			return fmt.Errorf("%w: empty sequence", ErrMalformedEffect)
		}
		for _, step := range s.Steps {
			if err := step.Validate(); err != nil {
				return err
			}
		}
	case OpChallenge:
		if err := knownResource("challenge stat", s.Stat); err != nil {
			return err
		}
		if s.OnSuccess != nil {
			if err := s.OnSuccess.Validate(); err != nil {
				return err
			}
		}
		if s.OnFailure != nil {
			if err := s.OnFailure.Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: op %q", ErrMalformedEffect, s.Op)
	}
	return nil
}

func knownResource(where string, r Resource) error {
	if r == "" {
		return fmt.Errorf("%w: %s without resource", ErrMalformedEffect, where)
	}
	if !r.IsKnown() {
		return fmt.Errorf("%w: %s references %q", ErrUnknownResource, where, r)
	}
	return nil
}

// Delta builds a delta spec. Convenience for tests and built-in effects.
func Delta(resource Resource, amount int) *Spec {
	return &Spec{Op: OpDelta, Resource: resource, Amount: amount}
}

// SetTo builds a set spec.
func SetTo(resource Resource, value int) *Spec {
	return &Spec{Op: OpSet, Resource: resource, Value: value}
}

// Sequence builds a sequence spec.
func Sequence(steps ...*Spec) *Spec {
	return &Spec{Op: OpSequence, Steps: steps}
}
