// Package action implements action resolution: validation of requirements,
// tier scoring, resource consumption and outcome application. Resolution is
// deterministic for a given state and seed, and either completes atomically
// or leaves state untouched.
package action

import (
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// Executor resolves action calls against game state. It holds only immutable
// content and a logger, so one executor serves any number of states.
type Executor struct {
	actions map[string]*content.ActionSpec
	items   map[string]*content.ItemMeta
	logger  *zap.Logger
}

// New builds an executor over loaded content. The content is assumed to have
// passed its integrity check at load time.
func New(actions map[string]*content.ActionSpec, items map[string]*content.ItemMeta, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{actions: actions, items: items, logger: logger}
}

// Action returns the spec for an action id.
func (e *Executor) Action(id string) (*content.ActionSpec, bool) {
	spec, ok := e.actions[id]
	return spec, ok
}

// ActionIDs returns all known action ids in sorted order.
func (e *Executor) ActionIDs() []string {
	ids := make([]string, 0, len(e.actions))
	for id := range e.actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ItemMeta returns the metadata for an item type id.
func (e *Executor) ItemMeta(id string) (*content.ItemMeta, bool) {
	m, ok := e.items[id]
	return m, ok
}

// Result reports a completed resolution.
type Result struct {
	ActionID    string  `json:"action_id"`
	Tier        int     `json:"tier"`
	Score       float64 `json:"score"`
	TimeMinutes int     `json:"time_minutes"`
}

// Validate checks whether a call could run right now, without mutating
// anything. The result is advisory: Execute re-validates, because state may
// change between the two calls.
func (e *Executor) Validate(st *state.State, call Call) (Validation, error) {
	spec, ok := e.actions[call.ActionID]
	if !ok {
		return Validation{}, fmt.Errorf("unknown action: %s", call.ActionID)
	}
	return validateSpec(st, spec, e.items, call), nil
}

// Execute resolves a call against state, scoring for the player. See
// ExecuteAs for scoring on behalf of another character.
func (e *Executor) Execute(st *state.State, call Call, seed int64) (*Result, error) {
	return e.ExecuteAs(st, st.Player, call, seed)
}

// ExecuteAs resolves a call, scoring with the given actor's stats while all
// effects still land on the state's player and world. The pipeline is
// validate, score, consume, apply. A validation or hard consume failure
// returns a typed error with state unchanged; after consumption commits the
// action always completes.
func (e *Executor) ExecuteAs(st *state.State, actor state.Stats, call Call, seed int64) (*Result, error) {
	spec, ok := e.actions[call.ActionID]
	if !ok {
		return nil, fmt.Errorf("unknown action: %s", call.ActionID)
	}

	// A prior Validate result is never trusted; state may have drifted
	// since. When both re-validation and consume planning fail over the
	// same vanished resource, the consume error wins: at execution time a
	// missing hard-required consumable is a consume failure, not a
	// pre-flight miss.
	v := validateSpec(st, spec, e.items, call)
	if !v.OK {
		if _, planErr := planConsumes(st, spec, e.items, call, zap.NewNop()); planErr != nil {
			return nil, planErr
		}
		return nil, &ValidationError{ActionID: spec.ID, Reason: v.Reason, Missing: v.Missing}
	}

	rng := rand.New(rand.NewSource(subSeed(seed, st.World.Day, st.SliceIndex(), st.World.Location, spec.ID)))
	breakdown := computeTier(st, actor, spec, e.items, rng)

	if _, defined := spec.Outcomes[breakdown.Tier]; !defined {
		return nil, &IntegrityError{
			ActionID: spec.ID,
			Detail:   fmt.Sprintf("no outcome defined for tier %d", breakdown.Tier),
		}
	}

	plan, err := planConsumes(st, spec, e.items, call, e.logger)
	if err != nil {
		return nil, err
	}
	plan.commit(st)

	if err := applyOutcome(st, spec, breakdown.Tier, e.items, call, rng); err != nil {
		return nil, err
	}

	st.Log("action.performed", map[string]any{
		"action_id": spec.ID,
		"tier":      breakdown.Tier,
	})
	e.logger.Debug("action resolved",
		zap.String("action_id", spec.ID),
		zap.Int("tier", breakdown.Tier),
		zap.Float64("score", breakdown.Raw))

	return &Result{
		ActionID:    spec.ID,
		Tier:        breakdown.Tier,
		Score:       breakdown.Raw,
		TimeMinutes: spec.TimeMinutes,
	}, nil
}
