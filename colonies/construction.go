package colonies

// ProjectKind is what a construction project produces.
type ProjectKind string

const (
	ProjectShip      ProjectKind = "Ship"
	ProjectFacility  ProjectKind = "Facility"
	ProjectGroundUnit ProjectKind = "GroundUnit"
)

// ConstructionProject is a single queued build, funded incrementally each
// Maintenance Phase until paid >= cost (spec.md §4.5: "projects consume
// paid PP per turn until paid >= cost; only one active project per docking
// slot").
type ConstructionProject struct {
	Kind     ProjectKind
	Target   string // ship class name / facility kind / ground unit class
	DockSlot FacilityKind // which facility type's slot this occupies
	Cost     int
	Paid     int
}

// Advance applies pp of production toward this project's cost and reports
// whether it completed this call.
func (p *ConstructionProject) Advance(pp int) (completed bool) {
	p.Paid += pp
	if p.Paid >= p.Cost {
		p.Paid = p.Cost
		return true
	}
	return false
}

// Queue is a colony's ordered construction queue. At most DockSlots(kind)
// entries of a given dock-slot kind may be "active" (occupying the front of
// the queue for that kind) at once; the rest wait.
type Queue struct {
	Projects []ConstructionProject
}

// activeIndices returns the indices of projects of kind occupying a dock slot
// (the first N entries of that kind in queue order, N = available slots).
func (q *Queue) activeIndices(kind FacilityKind, slots int) []int {
	var idx []int
	for i, p := range q.Projects {
		if p.DockSlot == kind {
			idx = append(idx, i)
			if len(idx) == slots {
				break
			}
		}
	}
	return idx
}

// AdvanceAll funds every currently-active project (one per free dock slot)
// with ppPerProject production points, removing any that complete. Returns
// the ids.ColonyId-free list of completed projects this call.
func (q *Queue) AdvanceAll(slotsByKind map[FacilityKind]int, ppPerProject int) []ConstructionProject {
	var completed []ConstructionProject
	completedSet := make(map[int]bool)
	for kind, slots := range slotsByKind {
		for _, i := range q.activeIndices(kind, slots) {
			if q.Projects[i].Advance(ppPerProject) {
				completedSet[i] = true
			}
		}
	}
	if len(completedSet) == 0 {
		return nil
	}
	remaining := q.Projects[:0]
	for i, p := range q.Projects {
		if completedSet[i] {
			completed = append(completed, p)
			continue
		}
		remaining = append(remaining, p)
	}
	q.Projects = remaining
	return completed
}

// CancelAll empties the queue (spec.md §4.5 shortfall cascade step 1: "zero
// treasury, cancel active construction and active research").
func (q *Queue) CancelAll() {
	q.Projects = nil
}
