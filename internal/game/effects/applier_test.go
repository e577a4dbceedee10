package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTarget is a minimal Target with money floored at 0 and nerves in [0,10].
type fakeTarget struct {
	id        string
	resources map[Resource]int
}

func newFakeTarget(id string) *fakeTarget {
	return &fakeTarget{
		id: id,
		resources: map[Resource]int{
			ResourceMoney:         5,
			ResourceNerves:        5,
			ResourceDocumentLevel: 0,
			ResourceLanguageLevel: 2,
			ResourceDocumentCards: 1,
			ResourceItems:         0,
		},
	}
}

func (t *fakeTarget) ID() string { return t.id }

func (t *fakeTarget) Resource(name Resource) (int, error) {
	value, ok := t.resources[name]
	if !ok {
		return 0, ErrUnknownResource
	}
	return value, nil
}

func (t *fakeTarget) Clamp(name Resource, value int) int {
	switch name {
	case ResourceMoney, ResourceDocumentCards, ResourceItems, ResourceDocumentLevel:
		if value < 0 {
			return 0
		}
	case ResourceNerves:
		if value < 0 {
			return 0
		}
		if value > 10 {
			return 10
		}
	}
	return value
}

func (t *fakeTarget) SetResource(name Resource, value int) error {
	if _, ok := t.resources[name]; !ok {
		return ErrUnknownResource
	}
	t.resources[name] = value
	return nil
}

func TestApplyDeltaClampsToFloor(t *testing.T) {
	// Board-size-20, single-card scenario: money 5, floor 0, delta -10.
	target := newFakeTarget("p1")
	applier := NewApplier(nil, zap.NewNop())

	log, err := applier.Apply(Delta(ResourceMoney, -10), target, nil)
	require.NoError(t, err)

	money, err := target.Resource(ResourceMoney)
	require.NoError(t, err)
	assert.Equal(t, 0, money)

	require.Len(t, log.Entries, 1)
	entry := log.Entries[0]
	assert.Equal(t, -5, entry.Requested)
	assert.Equal(t, 0, entry.Applied)
	assert.True(t, entry.Clamped)
}

func TestApplySetTo(t *testing.T) {
	target := newFakeTarget("p1")
	applier := NewApplier(nil, zap.NewNop())

	log, err := applier.Apply(SetTo(ResourceNerves, 8), target, nil)
	require.NoError(t, err)

	nerves, _ := target.Resource(ResourceNerves)
	assert.Equal(t, 8, nerves)
	require.Len(t, log.Entries, 1)
	assert.False(t, log.Entries[0].Clamped)
}

func TestApplyScaleHalvesMoney(t *testing.T) {
	target := newFakeTarget("p1")
	target.resources[ResourceMoney] = 9
	applier := NewApplier(nil, zap.NewNop())

	// Lose half, the original "money_divide: 2" card.
	_, err := applier.Apply(&Spec{Op: OpScale, Resource: ResourceMoney, Num: 1, Den: 2}, target, nil)
	require.NoError(t, err)

	money, _ := target.Resource(ResourceMoney)
	assert.Equal(t, 4, money)
}

func TestApplyConditionalBranches(t *testing.T) {
	spec := &Spec{
		Op:   OpConditional,
		If:   &Predicate{Resource: ResourceNerves, Cmp: "le", Value: 3},
		Then: Delta(ResourceNerves, 2),
		Else: Delta(ResourceMoney, 1),
	}
	applier := NewApplier(nil, zap.NewNop())

	low := newFakeTarget("low")
	low.resources[ResourceNerves] = 2
	_, err := applier.Apply(spec, low, nil)
	require.NoError(t, err)
	nerves, _ := low.Resource(ResourceNerves)
	assert.Equal(t, 4, nerves)

	high := newFakeTarget("high")
	_, err = applier.Apply(spec, high, nil)
	require.NoError(t, err)
	money, _ := high.Resource(ResourceMoney)
	assert.Equal(t, 6, money)
}

func TestApplySequenceRunsInOrder(t *testing.T) {
	target := newFakeTarget("p1")
	applier := NewApplier(nil, zap.NewNop())

	spec := Sequence(
		Delta(ResourceMoney, 3),
		SetTo(ResourceNerves, 1),
		Delta(ResourceDocumentCards, 2),
	)
	log, err := applier.Apply(spec, target, nil)
	require.NoError(t, err)
	assert.Len(t, log.Entries, 3)

	money, _ := target.Resource(ResourceMoney)
	nerves, _ := target.Resource(ResourceNerves)
	docs, _ := target.Resource(ResourceDocumentCards)
	assert.Equal(t, 8, money)
	assert.Equal(t, 1, nerves)
	assert.Equal(t, 3, docs)
}

func TestApplyChallengeBranches(t *testing.T) {
	target := newFakeTarget("p1")
	succeed := func(Target, Resource, int) (bool, int, error) { return true, 2, nil }
	applier := NewApplier(succeed, zap.NewNop())

	spec := &Spec{
		Op:         OpChallenge,
		Stat:       ResourceLanguageLevel,
		Difficulty: 4,
		OnSuccess:  Delta(ResourceMoney, 5),
		OnFailure:  Delta(ResourceNerves, -2),
	}
	log, err := applier.Apply(spec, target, nil)
	require.NoError(t, err)

	money, _ := target.Resource(ResourceMoney)
	assert.Equal(t, 10, money)
	require.Len(t, log.Challenges, 1)
	assert.True(t, log.Challenges[0].Success)
	assert.Equal(t, 2, log.Challenges[0].Margin)
}

func TestApplyUnknownResource(t *testing.T) {
	target := newFakeTarget("p1")
	applier := NewApplier(nil, zap.NewNop())

	_, err := applier.Apply(Delta(Resource("reputation"), 1), target, nil)
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestApplyMalformedSpecMutatesNothing(t *testing.T) {
	target := newFakeTarget("p1")
	applier := NewApplier(nil, zap.NewNop())

	// Second step is malformed; validation must reject the whole spec before
	// the first step runs.
	spec := Sequence(
		Delta(ResourceMoney, 3),
		&Spec{Op: Op("explode")},
	)
	_, err := applier.Apply(spec, target, nil)
	assert.ErrorIs(t, err, ErrMalformedEffect)

	money, _ := target.Resource(ResourceMoney)
	assert.Equal(t, 5, money)
}

func TestApplySequenceWithUnknownResourceMutatesNothing(t *testing.T) {
	target := newFakeTarget("p1")
	applier := NewApplier(nil, zap.NewNop())

	// The bad resource is in the second step; the first step must not have
	// run by the time the spec is rejected.
	spec := Sequence(
		Delta(ResourceMoney, -3),
		Delta(Resource("reputation"), 1),
	)
	_, err := applier.Apply(spec, target, nil)
	assert.ErrorIs(t, err, ErrUnknownResource)

	money, _ := target.Resource(ResourceMoney)
	assert.Equal(t, 5, money)
}

func TestValidateRejectsUnknownResources(t *testing.T) {
	cases := []*Spec{
		Delta(Resource("reputation"), 1),
		SetTo(Resource("charisma"), 3),
		{Op: OpScale, Resource: Resource("karma"), Num: 1, Den: 2},
		{
			Op:   OpConditional,
			If:   &Predicate{Resource: Resource("luck"), Cmp: "ge", Value: 1},
			Then: Delta(ResourceMoney, 1),
		},
		{Op: OpChallenge, Stat: Resource("strength"), Difficulty: 4},
	}
	for i, spec := range cases {
		assert.ErrorIs(t, spec.Validate(), ErrUnknownResource, "case %d", i)
	}
}

func TestValidateRejectsBadShapes(t *testing.T) {
	cases := []*Spec{
		nil,
		{Op: OpDelta},
		{Op: OpScale, Resource: ResourceMoney, Num: 1, Den: 0},
		{Op: OpConditional, If: &Predicate{Resource: ResourceMoney, Cmp: "ge", Value: 1}},
		{Op: OpSequence},
		{Op: OpChallenge},
	}
	for i, spec := range cases {
		assert.ErrorIs(t, spec.Validate(), ErrMalformedEffect, "case %d", i)
	}
}
