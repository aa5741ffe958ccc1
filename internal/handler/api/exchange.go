package api

import (
	"context"
	"net/http"

	"rx-exchange/internal/domain/exchange"
	reqdto "rx-exchange/internal/handler/dto/request"
	resdto "rx-exchange/internal/handler/dto/response"
	"rx-exchange/internal/handler/httperr"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/commands"
	"rx-exchange/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

type ExchangeHandler struct {
	cmds commands.ExchangeCommands
	q    queries.ExchangeQueries
}

func NewExchangeHandler(cmds commands.ExchangeCommands, q queries.ExchangeQueries) *ExchangeHandler {
	return &ExchangeHandler{cmds: cmds, q: q}
}

// @Summary Propose exchange
// @Description Reserve stock on a listing and open the exchange thread
// @Tags exchanges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key (uuid)"
// @Param request body reqdto.ProposeExchangeRequest true "Proposal"
// @Success 201 {object} resdto.ExchangeResponse
// @Success 200 {object} resdto.ExchangeResponse "Replay of an earlier request with the same key"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /exchanges [post]
func (h *ExchangeHandler) Propose(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	key, err := idempotencyKey(c)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	var req reqdto.ProposeExchangeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.cmds.Propose(c.Request.Context(), req.ToParams(hospitalID, key))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	if result.IsReplayed {
		c.Header(replayedHeader, "true")
		c.JSON(http.StatusOK, resdto.FromExchange(result.Exchange))
		return
	}
	c.JSON(http.StatusCreated, resdto.FromExchange(result.Exchange))
}

// @Summary Get exchange
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /exchanges/{id} [get]
func (h *ExchangeHandler) Get(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ex, err := h.q.GetByID(c.Request.Context(), hospitalID, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchange(ex))
}

// @Summary List exchanges
// @Description Exchanges where the calling hospital is seeker or provider, newest first
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ExchangeResponse
// @Router /exchanges [get]
func (h *ExchangeHandler) List(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	items, err := h.q.ListByHospital(c.Request.Context(), hospitalID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchanges(items))
}

// @Summary Exchange history
// @Description Journaled state transitions in order
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Success 200 {array} resdto.ExchangeEventResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /exchanges/{id}/history [get]
func (h *ExchangeHandler) History(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	events, err := h.q.History(c.Request.Context(), hospitalID, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEvents(events))
}

// @Summary Respond to exchange
// @Description Provider accepts or declines a proposed exchange
// @Tags exchanges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Param request body reqdto.RespondExchangeRequest true "Decision"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /exchanges/{id}/respond [post]
func (h *ExchangeHandler) Respond(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RespondExchangeRequest
	if !bindJSON(c, &req) {
		return
	}
	decision, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithDomainError(c, errs.Mark(err, errs.ErrInvalidRequest))
		return
	}
	ex, err := h.cmds.Respond(c.Request.Context(), id, hospitalID, decision)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchange(ex))
}

// @Summary Complete exchange
// @Description Either party confirms the hand-over of an accepted exchange
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /exchanges/{id}/complete [post]
func (h *ExchangeHandler) Complete(c *gin.Context) {
	h.transition(c, h.cmds.Complete)
}

// @Summary Cancel exchange
// @Description Either party withdraws a proposed or accepted exchange
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /exchanges/{id}/cancel [post]
func (h *ExchangeHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cmds.Cancel)
}

func (h *ExchangeHandler) transition(c *gin.Context, step func(ctx context.Context, exchangeID, actorID uuid.UUID) (*exchange.Exchange, error)) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ex, err := step(c.Request.Context(), id, hospitalID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchange(ex))
}

func idempotencyKey(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader(idempotencyKeyHeader)
	if raw == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Wrapf(errs.ErrInvalidRequest, "idempotency key %q is not a uuid", raw)
	}
	return key, nil
}
