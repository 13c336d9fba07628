package service

import "fmt"

// SyncPhase identifies where in the image-lifecycle sequence a failure
// happened. The sequence for a replace is delete-old, upload-new, persist;
// knowing the phase tells an operator what state the store was left in.
type SyncPhase string

const (
	PhaseDeletingOld SyncPhase = "deleting_old"
	PhaseUploading   SyncPhase = "uploading"
	PhasePersisting  SyncPhase = "persisting"
)

// SyncError is an image-lifecycle failure tagged with the phase it occurred
// in. Uploads that completed before the failure are NOT rolled back; their
// assets remain in the store until reconciliation or manual cleanup.
type SyncError struct {
	Phase SyncPhase
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("image sync failed while %s: %v", e.Phase, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
