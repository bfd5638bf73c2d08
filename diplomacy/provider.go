package diplomacy

import "github.com/greenm01/ec4x/ids"

// Provider is the narrow read interface other packages (combat, orders,
// fog) depend on instead of importing State directly, mirroring the
// teacher's Provider split between diplomacy bookkeeping and its
// consumers (diplomacy/provider.go).
type Provider interface {
	Relation(a, b ids.HouseId) Relation
}

// AsProvider adapts a *State to Provider.
func AsProvider(s *State) Provider { return stateProvider{s} }

type stateProvider struct{ s *State }

func (p stateProvider) Relation(a, b ids.HouseId) Relation { return p.s.Get(a, b) }

// MemoryProvider is a Provider backed by an in-memory State, used by tests
// and single-process game servers (spec.md's Non-goals exclude a
// distributed diplomacy service, so one in-process implementation is the
// only one this engine ships).
type MemoryProvider struct {
	state *State
}

// NewMemoryProvider wraps state (created via NewState) as a Provider.
func NewMemoryProvider(state *State) *MemoryProvider {
	return &MemoryProvider{state: state}
}

func (p *MemoryProvider) Relation(a, b ids.HouseId) Relation {
	return p.state.Get(a, b)
}

// FormNonAggression, BreakToEnemy, and Reconcile are the State mutations a
// diplomacy order can apply, exposed here so the order validator and
// turn pipeline never touch State.Relations directly.
func FormNonAggression(s *State, a, b ids.HouseId) { s.Set(a, b, RelationNonAggression) }
func BreakToEnemy(s *State, a, b ids.HouseId)      { s.Set(a, b, RelationEnemy) }
func Reconcile(s *State, a, b ids.HouseId)         { s.Set(a, b, RelationNeutral) }
