package contact

import (
	"context"
	"log/slog"

	"github.com/igorivnaolga/contactbook/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, ownerID string, filter Filter, limit, offset int) ([]*Contact, int, error) {
	return service.repo.List(context, ownerID, filter, limit, offset)
}

func (service *Service) Get(context context.Context, ownerID, id string) (*Contact, error) {
	return service.repo.Get(context, ownerID, id)
}

func (service *Service) Create(context context.Context, entry *Contact) error {
	entry.ID = uuid.New()

	if err := service.repo.Create(context, entry); err != nil {
		return err
	}

	service.logger.Info("contact_created",
		slog.String("contact_id", entry.ID),
		slog.String("owner_id", entry.OwnerID),
	)
	return nil
}

// Update loads the current entity, applies the sparse patch via [Merge], and
// persists the merged result. Unset patch fields never touch stored values.
func (service *Service) Update(context context.Context, ownerID, id string, patch Patch) (*Contact, error) {
	current, err := service.repo.Get(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	merged := Merge(current, patch)
	if err := service.repo.Update(context, merged); err != nil {
		return nil, err
	}

	service.logger.Info("contact_updated",
		slog.String("contact_id", id),
		slog.String("owner_id", ownerID),
	)
	return merged, nil
}

func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if err := service.repo.Delete(context, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("contact_deleted",
		slog.String("contact_id", id),
		slog.String("owner_id", ownerID),
	)
	return nil
}

func (service *Service) UpcomingBirthdays(context context.Context, ownerID string) ([]*Contact, error) {
	return service.repo.UpcomingBirthdays(context, ownerID)
}
