// Package metrics emits structured careers page publish events.
package metrics

import "time"

// Publish stages reported by PublishFailed.
const (
	StageLoad     = "load"
	StageProfile  = "profile"
	StagePrepare  = "prepare"
	StagePersist  = "persist"
	StageLock     = "lock"
	StageValidate = "validate"
)

// Stores named by SnapshotDrift.
const (
	StoreAggregate = "aggregate"
	StoreSnapshot  = "snapshot"
)

// Recorder receives publish pipeline events.
type Recorder interface {
	PublishAttempted()
	PublishSucceeded(d time.Duration)
	PublishFailed(stage string)
	PayloadStripped(bytes int)
	SEOSkipped()
	// SnapshotDrift records that a store missed a write the other one received.
	SnapshotDrift(store string)
	SnapshotRepaired()
}

// Nop discards every event.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) PublishAttempted()              {}
func (Nop) PublishSucceeded(time.Duration) {}
func (Nop) PublishFailed(string)           {}
func (Nop) PayloadStripped(int)            {}
func (Nop) SEOSkipped()                    {}
func (Nop) SnapshotDrift(string)           {}
func (Nop) SnapshotRepaired()              {}
