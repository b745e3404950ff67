package skill

import (
	"time"

	"github.com/google/uuid"
)

// Skill is immutable catalog reference data; creation and removal belong to
// catalog management, not this service.
type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}
