package effects

import (
	"fmt"

	"go.uber.org/zap"
)

// ChallengeFunc resolves a dice challenge for a target. Wired to the game's
// challenge resolver so the applier does not own dice itself.
type ChallengeFunc func(target Target, stat Resource, difficulty int) (success bool, margin int, err error)

// Entry records one resource mutation, including silent clamping.
type Entry struct {
	TargetID  string
	Resource  Resource
	Before    int
	Requested int
	Applied   int
	Clamped   bool
}

// ChallengeEntry records one resolved challenge inside an effect.
type ChallengeEntry struct {
	TargetID   string
	Stat       Resource
	Difficulty int
	Success    bool
	Margin     int
}

// Log is the observable trace of one Apply call.
type Log struct {
	Entries    []Entry
	Challenges []ChallengeEntry
}

// Applier interprets effect specs against players. It is the only component
// that mutates resources from card data.
type Applier struct {
	challenge ChallengeFunc
	logger    *zap.Logger
}

// NewApplier creates an applier. challenge may be nil if the card set carries
// no challenge effects; applying one then fails as a malformed effect.
func NewApplier(challenge ChallengeFunc, logger *zap.Logger) *Applier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{challenge: challenge, logger: logger}
}

// Apply interprets spec against actor. others carries the remaining active
// players so conditional grammar extensions can see them; the current grammar
// only mutates the actor. The spec is validated up front: a malformed spec
// mutates nothing.
func (a *Applier) Apply(spec *Spec, actor Target, others []Target) (*Log, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	log := &Log{}
	if err := a.apply(spec, actor, others, log); err != nil {
		return log, err
	}
	return log, nil
}

func (a *Applier) apply(spec *Spec, actor Target, others []Target, log *Log) error {
	switch spec.Op {
	case OpDelta:
		current, err := actor.Resource(spec.Resource)
		if err != nil {
			return err
		}
		return a.mutate(actor, spec.Resource, current, current+spec.Amount, log)
	case OpSet:
		current, err := actor.Resource(spec.Resource)
		if err != nil {
			return err
		}
		return a.mutate(actor, spec.Resource, current, spec.Value, log)
	case OpScale:
		current, err := actor.Resource(spec.Resource)
		if err != nil {
			return err
		}
		scaled := current * spec.Num / spec.Den
		return a.mutate(actor, spec.Resource, current, scaled, log)
	case OpConditional:
		hit, err := spec.If.Eval(actor)
		if err != nil {
			return err
		}
		branch := spec.Else
		if hit {
			branch = spec.Then
		}
		if branch == nil {
			return nil
		}
		return a.apply(branch, actor, others, log)
	case OpSequence:
		for _, step := range spec.Steps {
			if err := a.apply(step, actor, others, log); err != nil {
				return err
			}
		}
		return nil
	case OpChallenge:
		if a.challenge == nil {
			return fmt.Errorf("%w: challenge effect without a resolver", ErrMalformedEffect)
		}
		success, margin, err := a.challenge(actor, spec.Stat, spec.Difficulty)
		if err != nil {
			return err
		}
		log.Challenges = append(log.Challenges, ChallengeEntry{
			TargetID:   actor.ID(),
			Stat:       spec.Stat,
			Difficulty: spec.Difficulty,
			Success:    success,
			Margin:     margin,
		})
		branch := spec.OnFailure
		if success {
			branch = spec.OnSuccess
		}
		if branch == nil {
			return nil
		}
		return a.apply(branch, actor, others, log)
	default:
		return fmt.Errorf("%w: op %q", ErrMalformedEffect, spec.Op)
	}
}

// mutate applies a requested value with clamping and records the entry.
// Clamping is silent by contract, but it lands in the log and the debug log
// for observability.
func (a *Applier) mutate(target Target, resource Resource, before, requested int, log *Log) error {
	applied := target.Clamp(resource, requested)
	if err := target.SetResource(resource, applied); err != nil {
		return err
	}
	clamped := applied != requested
	log.Entries = append(log.Entries, Entry{
		TargetID:  target.ID(),
		Resource:  resource,
		Before:    before,
		Requested: requested,
		Applied:   applied,
		Clamped:   clamped,
	})
	if clamped {
		a.logger.Debug("resource change clamped",
			zap.String("target", target.ID()),
			zap.String("resource", string(resource)),
			zap.Int("requested", requested),
			zap.Int("applied", applied),
		)
	}
	return nil
}
