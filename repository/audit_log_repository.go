package repository

import (
	"github.com/amirphl/marketing-manager/models"
	"gorm.io/gorm"
)

// AuditLogRepositoryImpl implements AuditLogRepository interface. Audit rows
// are append-only, so only the base Save is exposed.
type AuditLogRepositoryImpl struct {
	*BaseRepository[models.AuditLog, struct{}]
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &AuditLogRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AuditLog, struct{}](db),
	}
}
