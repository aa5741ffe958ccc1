package commands

import (
	"context"
	"log/slog"

	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/shared"

	"github.com/google/uuid"
)

// ImportResult is the outcome of one bulk-import row. Exactly one of Listing
// and Err is set.
type ImportResult struct {
	Row     int
	Listing *listing.Listing
	Err     error
}

type ListingCommands interface {
	Create(ctx context.Context, hospitalID uuid.UUID, p listing.Params) (*listing.Listing, error)
	Update(ctx context.Context, actorID, listingID uuid.UUID, p listing.Params) (*listing.Listing, error)
	Delete(ctx context.Context, actorID, listingID uuid.UUID) error
	Import(ctx context.Context, hospitalID uuid.UUID, rows []listing.Params) []ImportResult
}

type listingUseCaseImpl struct {
	inventory shared.InventoryIndex
	clock     clock.Clock
	logger    *slog.Logger
}

func NewListingUseCase(inventory shared.InventoryIndex, clk clock.Clock, logger *slog.Logger) ListingCommands {
	return &listingUseCaseImpl{inventory: inventory, clock: clk, logger: logger}
}

func (uc *listingUseCaseImpl) Create(_ context.Context, hospitalID uuid.UUID, p listing.Params) (*listing.Listing, error) {
	p.HospitalID = hospitalID
	l, err := listing.NewListing(p, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}
	if err := uc.inventory.Upsert(l); err != nil {
		return nil, err
	}

	uc.logger.Info("listing created",
		slog.String("listing_id", l.ID().String()),
		slog.String("hospital_id", hospitalID.String()),
		slog.String("drug", l.Name().Canonical()))
	return l, nil
}

func (uc *listingUseCaseImpl) Update(_ context.Context, actorID, listingID uuid.UUID, p listing.Params) (*listing.Listing, error) {
	current, err := uc.owned(actorID, listingID)
	if err != nil {
		return nil, err
	}
	revised, err := current.Revise(p, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}
	if err := uc.inventory.Upsert(revised); err != nil {
		return nil, err
	}
	return revised, nil
}

func (uc *listingUseCaseImpl) Delete(_ context.Context, actorID, listingID uuid.UUID) error {
	if _, err := uc.owned(actorID, listingID); err != nil {
		return err
	}
	return uc.inventory.Remove(listingID)
}

// Import creates one listing per row and keeps going past bad rows.
func (uc *listingUseCaseImpl) Import(ctx context.Context, hospitalID uuid.UUID, rows []listing.Params) []ImportResult {
	results := make([]ImportResult, 0, len(rows))
	failed := 0
	for i, row := range rows {
		l, err := uc.Create(ctx, hospitalID, row)
		if err != nil {
			failed++
		}
		results = append(results, ImportResult{Row: i + 1, Listing: l, Err: err})
	}

	uc.logger.Info("listing import finished",
		slog.String("hospital_id", hospitalID.String()),
		slog.Int("rows", len(rows)),
		slog.Int("failed", failed))
	return results
}

func (uc *listingUseCaseImpl) owned(actorID, listingID uuid.UUID) (*listing.Listing, error) {
	snap, err := uc.inventory.Get(listingID)
	if err != nil {
		return nil, err
	}
	if snap.Listing.HospitalID() != actorID {
		return nil, errs.Wrapf(errs.ErrForbiddenActor, "listing %s belongs to another hospital", listingID)
	}
	return snap.Listing, nil
}
