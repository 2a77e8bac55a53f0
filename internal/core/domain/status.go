package domain

// FetchState is the lifecycle state of the authoritative fetch.
type FetchState int

const (
	// StateIdle means the last authoritative fetch completed.
	StateIdle FetchState = iota
	// StateLoading means a fetch for the current key has started.
	StateLoading
	// StateError means the last authoritative fetch failed.
	StateError
)

// String returns the string representation of the state.
func (s FetchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// FetchStatus is the published status of the browser.
// Message is only set for StateError.
type FetchStatus struct {
	State   FetchState
	Message string
}

// StatusIdle returns the Idle status.
func StatusIdle() FetchStatus {
	return FetchStatus{State: StateIdle}
}

// StatusLoading returns the Loading status.
func StatusLoading() FetchStatus {
	return FetchStatus{State: StateLoading}
}

// StatusError returns an Error status carrying the provider's message verbatim.
func StatusError(message string) FetchStatus {
	return FetchStatus{State: StateError, Message: message}
}

// IsLoading reports whether the status is Loading.
func (s FetchStatus) IsLoading() bool {
	return s.State == StateLoading
}

// IsError reports whether the status is Error.
func (s FetchStatus) IsError() bool {
	return s.State == StateError
}

// String returns "idle", "loading" or "error: <message>".
func (s FetchStatus) String() string {
	if s.State == StateError {
		return "error: " + s.Message
	}
	return s.State.String()
}
