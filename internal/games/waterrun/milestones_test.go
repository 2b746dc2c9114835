package waterrun

import (
	"reflect"
	"testing"
)

func TestMilestoneTrackerSkipsAscending(t *testing.T) {
	m := NewMilestoneTracker([]int{250, 500, 1000}, []int{1, 5})

	got := m.Observe(600, 0)
	want := []Event{
		MilestoneReached{Kind: MilestoneDistance, Value: 250},
		MilestoneReached{Kind: MilestoneDistance, Value: 500},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Observe(600, 0) = %v, expected %v", got, want)
	}

	// Staying above a threshold does not repeat it
	for d := 600; d < 1000; d++ {
		if events := m.Observe(d, 0); len(events) != 0 {
			t.Fatalf("Observe(%d, 0) = %v, expected nothing", d, events)
		}
	}

	got = m.Observe(1000, 5)
	want = []Event{
		MilestoneReached{Kind: MilestoneDistance, Value: 1000},
		MilestoneReached{Kind: MilestoneDeliveries, Value: 1},
		MilestoneReached{Kind: MilestoneDeliveries, Value: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Observe(1000, 5) = %v, expected %v", got, want)
	}
	if m.LastDistance() != 1000 || m.LastDeliveries() != 5 {
		t.Errorf("last = %d/%d, expected 1000/5", m.LastDistance(), m.LastDeliveries())
	}
	if events := m.Observe(50000, 500); len(events) != 0 {
		t.Errorf("exhausted tracker returned %v", events)
	}
}
