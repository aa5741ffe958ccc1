//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/infra/inventory"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/commands"
	"rx-exchange/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListingCommands(t *testing.T) (commands.ListingCommands, *inventory.Index) {
	t.Helper()
	clk := clock.NewFakeClock(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ix := inventory.NewIndex(clk, logger)
	return commands.NewListingUseCase(ix, clk, logger), ix
}

func TestListingCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("create normalizes and indexes", func(t *testing.T) {
		uc, ix := newListingCommands(t)
		hospital := uuid.New()

		l, err := uc.Create(ctx, hospital, builder.NewListingBuilder().WithDrugName("Amoxil 500mg").WithDosage("").Params())
		require.NoError(t, err)
		assert.Equal(t, hospital, l.HospitalID())
		assert.Equal(t, "amoxicillin", l.Name().Canonical())
		assert.Equal(t, "500mg", l.Dosage().String())

		snap, err := ix.Get(l.ID())
		require.NoError(t, err)
		assert.Equal(t, l.ID(), snap.Listing.ID())
	})

	t.Run("create rejects invalid params", func(t *testing.T) {
		uc, _ := newListingCommands(t)
		_, err := uc.Create(ctx, uuid.New(), builder.NewListingBuilder().WithDrugName("  ").Params())
		assert.True(t, errs.Is(err, errs.ErrInvalidRequest))
	})

	t.Run("update by owner only", func(t *testing.T) {
		uc, _ := newListingCommands(t)
		owner := uuid.New()
		l, err := uc.Create(ctx, owner, builder.NewListingBuilder().Params())
		require.NoError(t, err)

		p := l.Params()
		p.Quantity = 40
		p.Notes = "refrigerated"

		_, err = uc.Update(ctx, uuid.New(), l.ID(), p)
		assert.True(t, errs.Is(err, errs.ErrForbiddenActor))

		revised, err := uc.Update(ctx, owner, l.ID(), p)
		require.NoError(t, err)
		assert.Equal(t, l.ID(), revised.ID())
		assert.Equal(t, 40, revised.Quantity())
		assert.Equal(t, "refrigerated", revised.Notes())
	})

	t.Run("update cannot drop below reserved", func(t *testing.T) {
		uc, ix := newListingCommands(t)
		owner := uuid.New()
		l, err := uc.Create(ctx, owner, builder.NewListingBuilder().WithQuantity(50).Params())
		require.NoError(t, err)
		_, err = ix.Reserve(l.ID(), 30)
		require.NoError(t, err)

		p := l.Params()
		p.Quantity = 20
		_, err = uc.Update(ctx, owner, l.ID(), p)
		assert.True(t, errs.Is(err, errs.ErrInsufficientQuantity))
	})

	t.Run("delete", func(t *testing.T) {
		uc, ix := newListingCommands(t)
		owner := uuid.New()
		l, err := uc.Create(ctx, owner, builder.NewListingBuilder().Params())
		require.NoError(t, err)

		token, err := ix.Reserve(l.ID(), 1)
		require.NoError(t, err)
		assert.True(t, errs.Is(uc.Delete(ctx, owner, l.ID()), errs.ErrListingInUse))

		ix.Release(token)
		assert.True(t, errs.Is(uc.Delete(ctx, uuid.New(), l.ID()), errs.ErrForbiddenActor))
		require.NoError(t, uc.Delete(ctx, owner, l.ID()))
		assert.True(t, errs.Is(uc.Delete(ctx, owner, l.ID()), errs.ErrListingNotFound))
	})

	t.Run("import reports per row", func(t *testing.T) {
		uc, _ := newListingCommands(t)
		hospital := uuid.New()
		rows := []builder.ListingBuilder{
			*builder.NewListingBuilder().WithDrugName("Heparin").WithDosage("5000 units"),
			*builder.NewListingBuilder().WithDrugName(""),
			*builder.NewListingBuilder().WithDrugName("Tylenol").WithDIN("1234"),
			*builder.NewListingBuilder().WithDrugName("Ceftriaxone 1g").WithDosage(""),
		}
		params := make([]listing.Params, 0, len(rows))
		for _, r := range rows {
			params = append(params, r.Params())
		}

		results := uc.Import(ctx, hospital, params)
		require.Len(t, results, 4)
		for i, res := range results {
			assert.Equal(t, i+1, res.Row)
		}
		assert.NoError(t, results[0].Err)
		assert.True(t, errs.Is(results[1].Err, errs.ErrInvalidRequest))
		assert.Nil(t, results[1].Listing)
		assert.True(t, errs.Is(results[2].Err, errs.ErrInvalidRequest))
		require.NoError(t, results[3].Err)
		assert.Equal(t, "1000mg", results[3].Listing.Dosage().String())
		assert.Equal(t, hospital, results[3].Listing.HospitalID())
	})
}
