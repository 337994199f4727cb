package service

import (
	"context"
	"fmt"

	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

const defaultActivityLimit = 50

type activityService struct {
	activityRepo directory.ActivityRepository
}

func NewActivityService(activityRepo directory.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) ListRecent(ctx context.Context, actor *domain.Principal, limit int) ([]domain.ActivityEntry, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: the activity log is admin-only", domain.ErrUnauthorized)
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.activityRepo.ListRecent(ctx, limit)
}
