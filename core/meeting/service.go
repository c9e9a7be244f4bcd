package meeting

import "context"

type (
	Repository interface {
		CreateMeeting(ctx context.Context, nm NewMeeting) (Meeting, error)
		// QueryAllMeetings returns all meetings, most recent date first, with
		// action items and their department refs eagerly loaded.
		QueryAllMeetings(ctx context.Context) ([]Meeting, error)
		GetMeetingByID(ctx context.Context, id string) (Meeting, error)
		// UpdateMeeting reconciles the submitted action items against the
		// stored ones in a single transaction: items keeping their ID are
		// updated in place, missing ones deleted, new ones inserted.
		UpdateMeeting(ctx context.Context, id string, nm NewMeeting) (Meeting, error)
		// DeleteMeeting cascades action items and their department links.
		DeleteMeeting(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nm NewMeeting) (Meeting, error) {
	return svc.repo.CreateMeeting(ctx, nm)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Meeting, error) {
	return svc.repo.QueryAllMeetings(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Meeting, error) {
	return svc.repo.GetMeetingByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, nm NewMeeting) (Meeting, error) {
	return svc.repo.UpdateMeeting(ctx, id, nm)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteMeeting(ctx, id)
}
