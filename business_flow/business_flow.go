package businessflow

import (
	"context"
	"encoding/json"
	"log"

	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/repository"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientMetadata holds client information recorded with audit entries
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// TxRunner runs fn inside a unit of work; the context handed to fn carries the transaction
type TxRunner func(ctx context.Context, fn func(context.Context) error) error

// NewGormTxRunner binds repository.WithTransaction to db
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return func(ctx context.Context, fn func(context.Context) error) error {
		return repository.WithTransaction(ctx, db, fn)
	}
}

// createAuditLog appends a best-effort audit entry. Failures are logged and
// returned so callers may ignore them.
func createAuditLog(
	ctx context.Context,
	auditRepo repository.AuditLogRepository,
	userID *uuid.UUID,
	action, description string,
	success bool,
	errMsg *string,
	metadata *ClientMetadata,
) error {
	if auditRepo == nil {
		return nil
	}

	audit := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		ErrorMessage: errMsg,
	}

	if metadata != nil {
		audit.IPAddress = utils.ToPtr(metadata.IPAddress)
		audit.UserAgent = utils.ToPtr(metadata.UserAgent)
		if len(metadata.Additional) > 0 {
			if raw, err := json.Marshal(metadata.Additional); err == nil {
				audit.Metadata = datatypes.JSON(raw)
			}
		}
	}

	if requestID, ok := ctx.Value(utils.RequestIDKey).(string); ok && requestID != "" {
		audit.RequestID = &requestID
	} else if metadata != nil && metadata.RequestID != "" {
		audit.RequestID = utils.ToPtr(metadata.RequestID)
	}

	if err := auditRepo.Save(ctx, audit); err != nil {
		log.Printf("audit log %s failed: %v", action, err)
		return err
	}
	return nil
}
