package engine

// EventType classifies a state transition produced by the engine
type EventType string

const (
	EventStreakBroken       EventType = "streak_broken"
	EventShieldConsumed     EventType = "shield_consumed"
	EventShieldEarned       EventType = "shield_earned"
	EventComebackStarted    EventType = "comeback_started"
	EventComebackProgressed EventType = "comeback_progressed"
	EventComebackResolved   EventType = "comeback_resolved"
	EventComebackFailed     EventType = "comeback_failed"
	EventMissionCompleted   EventType = "mission_completed"
	EventIdentityLeveledUp  EventType = "identity_leveled_up"
)

// Event is a single transition emitted by a rollover or completion pass.
// Value carries the type-specific number: shields left after a consume,
// the original streak for a comeback start, days remaining for comeback
// progress, the restored streak for a resolve, the new level for level-ups.
type Event struct {
	Type    EventType
	HabitID string
	Value   int
}
