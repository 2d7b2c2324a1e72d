package domain

import "fmt"

type NodeKind string

const (
	NodeQuest       NodeKind = "quest"
	NodeAchievement NodeKind = "achievement"
)

// RelationKind is the state of the edge's source that gates its target.
type RelationKind string

const (
	RelFinished       RelationKind = "FINISHED"
	RelNotFinished    RelationKind = "NOT_FINISHED"
	RelInProgress     RelationKind = "IN_PROGRESS"
	RelFinishedNTimes RelationKind = "FINISHED_N_TIMES"
	RelAvailable      RelationKind = "AVAILABLE"
)

func (k RelationKind) Valid() bool {
	switch k {
	case RelFinished, RelNotFinished, RelInProgress, RelFinishedNTimes, RelAvailable:
		return true
	}
	return false
}

func (k *RelationKind) UnmarshalText(b []byte) error {
	v := RelationKind(b)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRelationKind, string(b))
	}
	*k = v
	return nil
}
