package model

import "time"

// OrphanedFile is a stored upload that no Document refers to. It is queued
// for deletion when orphan cleanup is enabled.
type OrphanedFile struct {
	Location    string    `json:"location"`
	StorageName string    `json:"storage_name"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}
