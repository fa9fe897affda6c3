package domain

// ThreadStatus represents the resolution state of a review thread.
// The marker strings rendered into digests are single-sourced here so
// formatting call sites and tests agree on the exact text.
type ThreadStatus int

const (
	// StatusUnresolved indicates the thread still needs attention.
	StatusUnresolved ThreadStatus = iota

	// StatusResolved indicates the thread was marked resolved.
	StatusResolved
)

// ThreadStatusOf maps the GraphQL isResolved flag to a ThreadStatus.
func ThreadStatusOf(isResolved bool) ThreadStatus {
	if isResolved {
		return StatusResolved
	}
	return StatusUnresolved
}

// Tag returns the status marker rendered next to each thread anchor.
func (s ThreadStatus) Tag() string {
	if s == StatusResolved {
		return "RESOLVED"
	}
	return "UNRESOLVED"
}

// Heading returns the group heading for threads with this status.
func (s ThreadStatus) Heading() string {
	if s == StatusResolved {
		return "Resolved Code Review Discussions"
	}
	return "Unresolved Code Review Discussions"
}
