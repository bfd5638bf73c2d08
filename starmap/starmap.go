// Package starmap models the hex-coordinate system graph, lane typing, and
// fleet-aware pathfinding (spec.md §4.3).
package starmap

import (
	"container/heap"

	"github.com/greenm01/ec4x/ids"
)

// LaneType classifies a jump connection between two systems.
type LaneType int

const (
	LaneMajor      LaneType = iota // weight 1
	LaneMinor                      // weight 2
	LaneRestricted                 // weight 3
)

// Weight returns the lane's A*/ETA edge cost (spec.md §4.3).
func (lt LaneType) Weight() int {
	switch lt {
	case LaneMajor:
		return 1
	case LaneMinor:
		return 2
	case LaneRestricted:
		return 3
	default:
		return 3
	}
}

// HexCoord is an axial hex coordinate.
type HexCoord struct {
	Q, R int
}

// Lane is one directed-agnostic entry in a system's adjacency set.
type Lane struct {
	Neighbor ids.SystemId
	Type     LaneType
}

// System is a node in the starmap graph.
type System struct {
	ID     ids.SystemId
	Coords HexCoord
	Lanes  []Lane
}

// Map is the full starmap graph, keyed by SystemId.
type Map struct {
	systems map[ids.SystemId]*System
}

// NewMap constructs an empty starmap.
func NewMap() *Map {
	return &Map{systems: make(map[ids.SystemId]*System)}
}

// AddSystem inserts a system into the map. Lanes are added separately via
// Connect so that both directions of a lane are always kept in sync.
func (m *Map) AddSystem(s *System) {
	m.systems[s.ID] = s
}

// System returns the system by id, or nil.
func (m *Map) System(id ids.SystemId) *System {
	return m.systems[id]
}

// Connect adds a bidirectional lane of the given type between a and b.
func (m *Map) Connect(a, b ids.SystemId, lt LaneType) {
	sa, sb := m.systems[a], m.systems[b]
	if sa == nil || sb == nil {
		return
	}
	sa.Lanes = append(sa.Lanes, Lane{Neighbor: b, Type: lt})
	sb.Lanes = append(sb.Lanes, Lane{Neighbor: a, Type: lt})
}

// Neighbors returns the (neighborId, LaneType) pairs adjacent to systemId.
func (m *Map) Neighbors(systemId ids.SystemId) []Lane {
	s := m.systems[systemId]
	if s == nil {
		return nil
	}
	return s.Lanes
}

// FleetCapability describes the properties of a fleet relevant to lane
// traversal, kept as a narrow interface (rather than importing the ships
// package directly) so starmap stays a leaf dependency — the same pattern
// the teacher uses for diplomacy.Provider.
type FleetCapability interface {
	HasCrippledShip() bool
	HasSpaceliftShip() bool
}

// restrictedImpassable reports whether lt is impassable to fleet per
// spec.md §4.3: "a lane is impassable to the fleet when LaneType=Restricted
// and the fleet contains any crippled ship or spacelift ship."
func restrictedImpassable(lt LaneType, fleet FleetCapability) bool {
	if lt != LaneRestricted {
		return false
	}
	return fleet.HasCrippledShip() || fleet.HasSpaceliftShip()
}

// Path is an ordered list of systems from origin (inclusive) to destination.
type Path struct {
	Systems []ids.SystemId
	Cost    int
}

type pqItem struct {
	id       ids.SystemId
	priority int
	index    int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index, pq[j].index = i, j
}
func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

func hexDistance(a, b HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := (-a.Q - a.R) - (-b.Q - b.R)
	abs := func(x int) int {
		if x < 0 {
			return -x
		}
		return x
	}
	d := abs(dq)
	if abs(dr) > d {
		d = abs(dr)
	}
	if abs(ds) > d {
		d = abs(ds)
	}
	return d
}

// FindPath runs A* from->to, using lane weight as edge cost and the
// hex-distance heuristic (admissible since every lane costs >= 1, the
// minimum hex step cost). Restricted lanes are pruned per fleet capability.
// Returns (nil, false) when no path exists.
func (m *Map) FindPath(from, to ids.SystemId, fleet FleetCapability) (*Path, bool) {
	if from == to {
		return &Path{Systems: []ids.SystemId{from}, Cost: 0}, true
	}
	start, goal := m.systems[from], m.systems[to]
	if start == nil || goal == nil {
		return nil, false
	}

	gScore := map[ids.SystemId]int{from: 0}
	cameFrom := map[ids.SystemId]ids.SystemId{}
	visited := map[ids.SystemId]bool{}

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{id: from, priority: hexDistance(start.Coords, goal.Coords)})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*pqItem)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		if cur.id == to {
			return reconstructPath(cameFrom, from, to, gScore[to]), true
		}
		node := m.systems[cur.id]
		for _, lane := range node.Lanes {
			if restrictedImpassable(lane.Type, fleet) {
				continue
			}
			tentative := gScore[cur.id] + lane.Type.Weight()
			if existing, ok := gScore[lane.Neighbor]; !ok || tentative < existing {
				gScore[lane.Neighbor] = tentative
				cameFrom[lane.Neighbor] = cur.id
				neighborCoords := m.systems[lane.Neighbor].Coords
				priority := tentative + hexDistance(neighborCoords, goal.Coords)
				heap.Push(pq, &pqItem{id: lane.Neighbor, priority: priority})
			}
		}
	}
	return nil, false
}

func reconstructPath(cameFrom map[ids.SystemId]ids.SystemId, from, to ids.SystemId, cost int) *Path {
	var rev []ids.SystemId
	cur := to
	for cur != from {
		rev = append(rev, cur)
		cur = cameFrom[cur]
	}
	rev = append(rev, from)
	out := make([]ids.SystemId, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return &Path{Systems: out, Cost: cost}
}

// FogView is the minimal per-house knowledge needed to decide whether a
// system is friendly for movement-speed purposes (spec.md §4.3: "Friendly/
// hostile determination is performed against the caller-supplied fog view").
type FogView interface {
	IsFriendly(ids.SystemId) bool
}

// CalculateETA computes the number of turns to traverse path under the
// movement rules of spec.md §4.3: 2 jumps/turn on Major lanes in friendly
// systems, 1 jump/turn otherwise (Minor/Restricted lanes, or any lane
// through a hostile/unexplored system).
func CalculateETA(path *Path, m *Map, fog FogView, majorJumpsPerTurn, defaultJumpsPerTurn int) (int, bool) {
	if path == nil || len(path.Systems) < 2 {
		return 0, path != nil
	}
	turns := 0
	capacityLeft := 0
	activeRate := 0
	for i := 1; i < len(path.Systems); i++ {
		from, to := path.Systems[i-1], path.Systems[i]
		lt, ok := laneType(m, from, to)
		if !ok {
			return 0, false
		}
		friendly := fog.IsFriendly(from) && fog.IsFriendly(to)
		rate := defaultJumpsPerTurn
		if lt == LaneMajor && friendly {
			rate = majorJumpsPerTurn
		}
		if capacityLeft > 0 && rate == activeRate {
			// This leg can share the already-open turn at the same jump rate.
			capacityLeft--
			continue
		}
		turns++
		activeRate = rate
		capacityLeft = rate - 1
	}
	return turns, true
}

func laneType(m *Map, from, to ids.SystemId) (LaneType, bool) {
	for _, l := range m.Neighbors(from) {
		if l.Neighbor == to {
			return l.Type, true
		}
	}
	return 0, false
}
