//go:build unit

package search_test

import (
	"testing"
	"time"

	"rx-exchange/internal/domain/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() search.Params {
	return search.Params{
		SeekerID:       uuid.New(),
		Name:           "Amoxicillin",
		Dosage:         "500mg",
		QuantityNeeded: 50,
		Priority:       search.PriorityHigh,
		MaxDistanceKm:  30,
	}
}

func TestNewRequest(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run("basic success case", func(t *testing.T) {
		r, err := search.NewRequest(validParams(), now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, "amoxicillin", r.Name().Canonical())
		assert.Equal(t, "500mg", r.Dosage().String())
		assert.Equal(t, 50, r.QuantityNeeded())
		assert.True(t, r.HasDistanceLimit())
		assert.Equal(t, now, r.CreatedAt())
	})

	t.Run("defaults", func(t *testing.T) {
		p := validParams()
		p.Priority = ""
		p.MaxDistanceKm = 0

		r, err := search.NewRequest(p, now)
		require.NoError(t, err)
		assert.Equal(t, search.PriorityMedium, r.Priority())
		assert.False(t, r.HasDistanceLimit())
	})

	tests := []struct {
		name   string
		mutate func(*search.Params)
		errIs  error
	}{
		{name: "empty name", mutate: func(p *search.Params) { p.Name = "  " }, errIs: search.ErrEmptyName},
		{name: "zero quantity", mutate: func(p *search.Params) { p.QuantityNeeded = 0 }, errIs: search.ErrInvalidQuantity},
		{name: "negative distance", mutate: func(p *search.Params) { p.MaxDistanceKm = -1 }, errIs: search.ErrInvalidDistance},
		{name: "unknown priority", mutate: func(p *search.Params) { p.Priority = "urgent" }, errIs: search.ErrInvalidPriority},
		{name: "missing seeker", mutate: func(p *search.Params) { p.SeekerID = uuid.Nil }, errIs: search.ErrMissingRequester},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			r, err := search.NewRequest(p, now)
			assert.ErrorIs(t, err, tt.errIs)
			assert.Nil(t, r)
		})
	}
}

func TestPriority(t *testing.T) {
	p, err := search.ParsePriority(" Critical ")
	require.NoError(t, err)
	assert.Equal(t, search.PriorityCritical, p)
	assert.True(t, p.IsUrgent())
	assert.False(t, search.PriorityLow.IsUrgent())

	p, err = search.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, search.PriorityMedium, p)

	_, err = search.ParsePriority("asap")
	assert.ErrorIs(t, err, search.ErrInvalidPriority)
}
