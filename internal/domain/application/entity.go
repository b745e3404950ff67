package application

import (
	"time"

	"github.com/google/uuid"
)

// Application links one job seeker to one job posting and carries the
// lifecycle status. Created in StatusPending at apply time.
type Application struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	UserID    uuid.UUID
	Status    Status
	AppliedAt time.Time
	UpdatedAt time.Time
}

// HistoryEntry is the append-only audit record for one transition. OldStatus
// is nil only for the entry written when the application is created. A nil
// ActorID means the system acted on its own.
type HistoryEntry struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	OldStatus     *Status
	NewStatus     Status
	ActorID       *uuid.UUID
	Notes         string
	CreatedAt     time.Time
}
