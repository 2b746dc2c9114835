package waterrun

// MilestoneKind tells distance announcements from delivery announcements.
type MilestoneKind int

const (
	MilestoneDistance MilestoneKind = iota
	MilestoneDeliveries
)

func (k MilestoneKind) String() string {
	if k == MilestoneDeliveries {
		return "deliveries"
	}
	return "distance"
}

// MilestoneTracker remembers how far into each threshold list a run has got.
// Both cursors only move forward, so each threshold fires once per run.
type MilestoneTracker struct {
	distance   []int
	deliveries []int

	nextDistance   int
	nextDeliveries int
}

// NewMilestoneTracker creates a tracker over ascending threshold lists.
func NewMilestoneTracker(distance, deliveries []int) MilestoneTracker {
	return MilestoneTracker{distance: distance, deliveries: deliveries}
}

// LastDistance returns the last announced distance threshold, or 0.
func (m *MilestoneTracker) LastDistance() int {
	if m.nextDistance == 0 {
		return 0
	}
	return m.distance[m.nextDistance-1]
}

// LastDeliveries returns the last announced delivery threshold, or 0.
func (m *MilestoneTracker) LastDeliveries() int {
	if m.nextDeliveries == 0 {
		return 0
	}
	return m.deliveries[m.nextDeliveries-1]
}

// Observe returns one event per threshold newly reached, ascending.
func (m *MilestoneTracker) Observe(distance, deliveries int) []Event {
	var out []Event
	for m.nextDistance < len(m.distance) && distance >= m.distance[m.nextDistance] {
		out = append(out, MilestoneReached{Kind: MilestoneDistance, Value: m.distance[m.nextDistance]})
		m.nextDistance++
	}
	for m.nextDeliveries < len(m.deliveries) && deliveries >= m.deliveries[m.nextDeliveries] {
		out = append(out, MilestoneReached{Kind: MilestoneDeliveries, Value: m.deliveries[m.nextDeliveries]})
		m.nextDeliveries++
	}
	return out
}
