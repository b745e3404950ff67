package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	Title       string
	CompanyName string
	Location    string
	RemoteOK    bool
	Active      bool
	PostedAt    time.Time
}
