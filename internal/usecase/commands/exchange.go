package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/infra/idempotency"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/config"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/shared"

	"github.com/google/uuid"
)

const proposeEndpoint = "POST /api/exchanges"

type ProposeParams struct {
	IdempotencyKey uuid.UUID
	SeekerID       uuid.UUID
	ListingID      uuid.UUID
	// RequestID links the exchange to the match request it came from; optional.
	RequestID uuid.UUID
	Quantity  int
	Message   string
}

type ProposeResult struct {
	Exchange   *exchange.Exchange
	IsReplayed bool
}

type ExchangeCommands interface {
	Propose(ctx context.Context, p ProposeParams) (*ProposeResult, error)
	Respond(ctx context.Context, exchangeID, actorID uuid.UUID, d exchange.Decision) (*exchange.Exchange, error)
	Complete(ctx context.Context, exchangeID, actorID uuid.UUID) (*exchange.Exchange, error)
	Cancel(ctx context.Context, exchangeID, actorID uuid.UUID) (*exchange.Exchange, error)
	SweepExpired(ctx context.Context) (int, error)
}

type exchangeUseCaseImpl struct {
	exchanges   shared.ExchangeStore
	inventory   shared.InventoryIndex
	threads     shared.ThreadStore
	journal     shared.EventJournal
	idempotency shared.IdempotencyStore
	expirer     *shared.Expirer
	notifier    *shared.Notifier
	cfg         config.ExchangeConfig
	clock       clock.Clock
	logger      *slog.Logger
}

func NewExchangeUseCase(
	exchanges shared.ExchangeStore,
	inventory shared.InventoryIndex,
	threads shared.ThreadStore,
	journal shared.EventJournal,
	idem shared.IdempotencyStore,
	expirer *shared.Expirer,
	notifier *shared.Notifier,
	cfg config.ExchangeConfig,
	clk clock.Clock,
	logger *slog.Logger,
) ExchangeCommands {
	return &exchangeUseCaseImpl{
		exchanges:   exchanges,
		inventory:   inventory,
		threads:     threads,
		journal:     journal,
		idempotency: idem,
		expirer:     expirer,
		notifier:    notifier,
		cfg:         cfg,
		clock:       clk,
		logger:      logger,
	}
}

func (uc *exchangeUseCaseImpl) Propose(ctx context.Context, p ProposeParams) (*ProposeResult, error) {
	if p.IdempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	requestHash := uc.calculateRequestHash(p)

	replayed, err := uc.handleIdempotency(ctx, p, requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &ProposeResult{Exchange: replayed, IsReplayed: true}, nil
	}

	ex, err := uc.proposeNew(ctx, p)
	if err != nil {
		uc.idempotency.Abandon(ctx, p.IdempotencyKey, p.SeekerID)
		return nil, err
	}
	if err := uc.idempotency.Complete(ctx, p.IdempotencyKey, p.SeekerID, ex.ID()); err != nil {
		uc.logger.Warn("failed to complete idempotency key",
			slog.String("exchange_id", ex.ID().String()),
			slog.String("error", err.Error()))
	}
	return &ProposeResult{Exchange: ex}, nil
}

// handleIdempotency returns the stored exchange for a replay, nil for a fresh key.
func (uc *exchangeUseCaseImpl) handleIdempotency(ctx context.Context, p ProposeParams, requestHash string) (*exchange.Exchange, error) {
	expiresAt := uc.clock.Now().Add(uc.cfg.IdempotencyTTL)
	won, err := uc.idempotency.TryInsert(ctx, p.IdempotencyKey, p.SeekerID, proposeEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if won {
		return nil, nil
	}

	existing, err := uc.idempotency.Get(ctx, p.IdempotencyKey, p.SeekerID)
	if err != nil {
		return nil, err
	}
	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyConflict
	}

	switch existing.Status {
	case idempotency.StatusCompleted:
		if existing.ResultID == nil {
			return nil, errs.New("completed request missing result exchange ID")
		}
		return uc.exchanges.Get(*existing.ResultID)
	case idempotency.StatusProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (uc *exchangeUseCaseImpl) proposeNew(ctx context.Context, p ProposeParams) (*exchange.Exchange, error) {
	snap, err := uc.inventory.Get(p.ListingID)
	if err != nil {
		return nil, err
	}
	l := snap.Listing
	now := uc.clock.Now()
	if !l.Shareable() || l.IsExpired(now) {
		return nil, errs.Wrapf(errs.ErrInvalidRequest, "listing %s is not available for exchange", l.ID())
	}

	params := exchange.Params{
		RequestID:         p.RequestID,
		ListingID:         l.ID(),
		SeekerID:          p.SeekerID,
		ProviderID:        l.HospitalID(),
		DrugName:          l.RawName(),
		QuantityRequested: p.Quantity,
	}
	if err := params.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}

	// stock is re-checked here; the candidate the seeker picked may be stale
	token, err := uc.inventory.Reserve(l.ID(), p.Quantity)
	if err != nil {
		return nil, err
	}

	ex, err := exchange.NewExchange(params, token, now)
	if err != nil {
		uc.inventory.Release(token)
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}
	if err := uc.record(ctx, ex, l, token, now); err != nil {
		uc.inventory.Release(token)
		return nil, err
	}

	uc.logger.Info("exchange proposed",
		slog.String("exchange_id", ex.ID().String()),
		slog.String("listing_id", l.ID().String()),
		slog.Int("quantity", p.Quantity))

	uc.notifier.Post(ctx, ex.ID(), fmt.Sprintf("Exchange proposed: %d units of %s.", p.Quantity, l.RawName()))
	if p.Message != "" {
		if _, err := uc.threads.Append(ctx, ex.ID(), p.SeekerID, p.Message); err != nil {
			uc.logger.Warn("failed to post opening message",
				slog.String("exchange_id", ex.ID().String()),
				slog.String("error", err.Error()))
		}
	}
	return ex, nil
}

// record journals the new exchange, opens its thread and makes it visible.
// Nothing is visible until every step has succeeded.
func (uc *exchangeUseCaseImpl) record(ctx context.Context, ex *exchange.Exchange, l *listing.Listing, token listing.ReservationToken, now time.Time) error {
	if err := uc.journal.AppendExchangeEvent(ctx, exchange.NewEvent(ex, "", ex.SeekerID(), now)); err != nil {
		return errs.Mark(err, errs.ErrJournalFailure)
	}

	conv, err := conversation.NewConversation(ex.ID(), ex.SeekerID(), ex.ProviderID(), l.RawName(), now)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidRequest)
	}
	if err := uc.threads.Open(ctx, conv); err != nil {
		uc.compensate(ctx, ex, token, now)
		return err
	}

	if err := uc.exchanges.Insert(ex); err != nil {
		uc.compensate(ctx, ex, token, now)
		return err
	}
	return nil
}

// compensate journals a system cancellation for an exchange that was logged
// as proposed but never became visible.
func (uc *exchangeUseCaseImpl) compensate(ctx context.Context, ex *exchange.Exchange, token listing.ReservationToken, now time.Time) {
	draft := ex.Clone()
	if t := draft.Cancel(now); t.Applied() {
		if err := uc.journal.AppendExchangeEvent(ctx, exchange.NewEvent(draft, t.From, conversation.SystemSenderID, now)); err != nil {
			uc.logger.Error("failed to journal propose compensation",
				slog.String("exchange_id", ex.ID().String()),
				slog.String("error", err.Error()))
		}
	}
	uc.inventory.Release(token)
}

func (uc *exchangeUseCaseImpl) Respond(ctx context.Context, exchangeID, actorID uuid.UUID, d exchange.Decision) (*exchange.Exchange, error) {
	onlyProvider := func(e *exchange.Exchange) bool { return e.ProviderID() == actorID }
	return uc.transition(ctx, exchangeID, actorID, onlyProvider, func(e *exchange.Exchange, now time.Time) (exchange.Transition, error) {
		return e.Respond(d, now, uc.cfg.CompletionWindow)
	})
}

func (uc *exchangeUseCaseImpl) Complete(ctx context.Context, exchangeID, actorID uuid.UUID) (*exchange.Exchange, error) {
	return uc.transition(ctx, exchangeID, actorID, anyParty(actorID), func(e *exchange.Exchange, now time.Time) (exchange.Transition, error) {
		return e.Complete(now), nil
	})
}

func (uc *exchangeUseCaseImpl) Cancel(ctx context.Context, exchangeID, actorID uuid.UUID) (*exchange.Exchange, error) {
	return uc.transition(ctx, exchangeID, actorID, anyParty(actorID), func(e *exchange.Exchange, now time.Time) (exchange.Transition, error) {
		return e.Cancel(now), nil
	})
}

func anyParty(actorID uuid.UUID) func(e *exchange.Exchange) bool {
	return func(e *exchange.Exchange) bool { return e.IsParty(actorID) }
}

type stepFunc func(e *exchange.Exchange, now time.Time) (exchange.Transition, error)

// transition applies step under the exchange lock. The journal write and the
// inventory side effect happen before the new state is committed, so a failed
// journal write leaves the exchange exactly as it was.
func (uc *exchangeUseCaseImpl) transition(
	ctx context.Context,
	exchangeID, actorID uuid.UUID,
	authorized func(e *exchange.Exchange) bool,
	step stepFunc,
) (*exchange.Exchange, error) {
	current, err := uc.exchanges.Get(exchangeID)
	if err != nil {
		return nil, err
	}
	if !authorized(current) {
		return nil, errs.Wrapf(errs.ErrForbiddenActor, "hospital %s on exchange %s", actorID, exchangeID)
	}
	if _, _, err := uc.expirer.ExpireIfOverdue(ctx, exchangeID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	var applied exchange.Transition
	ex, err := uc.exchanges.Update(exchangeID, func(e *exchange.Exchange) error {
		t, err := step(e, now)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidRequest)
		}
		if !t.Applied() {
			return errs.Mark(t.Err(), errs.ErrInvalidStateTransition)
		}
		if err := uc.journal.AppendExchangeEvent(ctx, exchange.NewEvent(e, t.From, actorID, now)); err != nil {
			return errs.Mark(err, errs.ErrJournalFailure)
		}
		uc.settleReservation(e)
		applied = t
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrInvalidStateTransition) {
			uc.logger.Debug("exchange transition rejected",
				slog.String("exchange_id", exchangeID.String()),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	uc.logger.Info("exchange transition",
		slog.String("exchange_id", exchangeID.String()),
		slog.String("from", applied.From.String()),
		slog.String("to", applied.To.String()),
		slog.String("actor_id", actorID.String()))
	uc.notifier.Post(ctx, exchangeID, systemMessage(ex))
	return ex, nil
}

// settleReservation gives the held stock back or consumes it, per the new state.
func (uc *exchangeUseCaseImpl) settleReservation(e *exchange.Exchange) {
	token := e.Reservation()
	switch e.State() {
	case exchange.StateCompleted:
		if _, err := uc.inventory.Consume(token); err != nil {
			uc.logger.Error("failed to consume reservation",
				slog.String("exchange_id", e.ID().String()),
				slog.String("listing_id", token.ListingID.String()),
				slog.String("error", err.Error()))
		}
	case exchange.StateDeclined, exchange.StateCancelled, exchange.StateExpired:
		uc.inventory.Release(token)
	}
}

// SweepExpired expires every overdue exchange and reports how many it moved.
func (uc *exchangeUseCaseImpl) SweepExpired(ctx context.Context) (int, error) {
	var (
		swept int
		all   []error
	)
	for _, id := range uc.exchanges.Overdue(uc.clock.Now()) {
		if err := ctx.Err(); err != nil {
			return swept, err
		}
		_, expired, err := uc.expirer.ExpireIfOverdue(ctx, id)
		if err != nil {
			all = append(all, err)
			continue
		}
		if expired {
			swept++
		}
	}
	return swept, errors.Join(all...)
}

func (uc *exchangeUseCaseImpl) calculateRequestHash(p ProposeParams) string {
	data, _ := json.Marshal(struct {
		ListingID uuid.UUID `json:"listing_id"`
		RequestID uuid.UUID `json:"request_id"`
		Quantity  int       `json:"quantity"`
		Message   string    `json:"message"`
	}{p.ListingID, p.RequestID, p.Quantity, p.Message})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func systemMessage(e *exchange.Exchange) string {
	switch e.State() {
	case exchange.StateAccepted:
		return fmt.Sprintf("Exchange accepted. Please complete the transfer by %s.", e.CompletionDeadline().Format("2006-01-02"))
	case exchange.StateDeclined:
		return "Exchange declined."
	case exchange.StateCompleted:
		return fmt.Sprintf("Exchange completed: %d units of %s transferred.", e.QuantityRequested(), e.DrugName())
	case exchange.StateCancelled:
		return "Exchange cancelled."
	default:
		return fmt.Sprintf("Exchange is now %s.", e.State())
	}
}
