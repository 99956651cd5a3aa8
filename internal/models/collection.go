package models

// LoadStatus is the display state of an exercise collection.
type LoadStatus int

const (
	StatusLoading LoadStatus = iota
	StatusLoaded
	StatusFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExerciseCollection is a collection of exercises together with how far its
// retrieval got. Items is only meaningful when Status is StatusLoaded and
// Reason only when it is StatusFailed.
type ExerciseCollection struct {
	Status LoadStatus
	Items  []Exercise
	Reason string
	// Source is where a loading collection can be fetched from once ready.
	// Empty when the caller has no way to complete it later.
	Source string
}

// Loading returns a collection that has not arrived yet.
func Loading(source string) ExerciseCollection {
	return ExerciseCollection{Status: StatusLoading, Source: source}
}

// Loaded returns a collection that arrived. items may be empty.
func Loaded(items []Exercise) ExerciseCollection {
	return ExerciseCollection{Status: StatusLoaded, Items: items}
}

// Failed returns a collection whose retrieval failed.
func Failed(reason string) ExerciseCollection {
	return ExerciseCollection{Status: StatusFailed, Reason: reason}
}

// CollectionFromItems infers the state from the data alone: an empty or nil
// slice has not arrived yet, anything else is loaded.
func CollectionFromItems(items []Exercise) ExerciseCollection {
	if len(items) == 0 {
		return Loading("")
	}
	return Loaded(items)
}
