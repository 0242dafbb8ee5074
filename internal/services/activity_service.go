package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/logger"
	"ledgerly/internal/models"
	"ledgerly/internal/pagination"
)

// activityService records mutations for the activity feed.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db}
}

// Log records an activity entry. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *activityService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal activity changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.ActivityEntry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create activity entry",
			"error", err,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// ListActivity returns a page of activity entries, newest first.
func (s *activityService) ListActivity(page pagination.PageRequest) (*pagination.PageResponse[models.ActivityEntry], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.ActivityEntry{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.ActivityEntry
	if err := s.db.Order("created_at DESC").Order("id DESC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
