package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rx-exchange/internal/domain/listing"
	reqdto "rx-exchange/internal/handler/dto/request"
	resdto "rx-exchange/internal/handler/dto/response"
	"rx-exchange/internal/handler/httperr"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/commands"
	"rx-exchange/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

const maxImportRows = 500

type ListingHandler struct {
	cmds commands.ListingCommands
	q    queries.ListingQueries
}

func NewListingHandler(cmds commands.ListingCommands, q queries.ListingQueries) *ListingHandler {
	return &ListingHandler{cmds: cmds, q: q}
}

// @Summary Create listing
// @Description Publish surplus stock for the calling hospital
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ListingRequest true "Listing"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	var req reqdto.ListingRequest
	if !bindJSON(c, &req) {
		return
	}
	params, err := req.ToParams(hospitalID)
	if err != nil {
		httperr.AbortWithDomainError(c, errs.Mark(err, errs.ErrInvalidRequest))
		return
	}
	l, err := h.cmds.Create(c.Request.Context(), hospitalID, params)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromListing(l, 0))
}

// @Summary Get listing
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 404 {object} httperr.Response
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	snap, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(snap))
}

// @Summary List own listings
// @Description Keyset-paginated listings of the calling hospital, oldest first
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ListingListResponse
// @Failure 400 {object} httperr.Response
// @Router /listings [get]
func (h *ListingHandler) List(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			httperr.AbortWithDomainError(c, errs.Wrapf(errs.ErrInvalidRequest, "limit %q", s))
			return
		}
		limit = n
	}
	var cursor *queries.Cursor
	if after := c.Query("cursor"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.ListOwn(c.Request.Context(), hospitalID, cursor, limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshots(items, next))
}

// @Summary Update listing
// @Description Replace the listing fields; only the owning hospital may edit
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.ListingRequest true "Listing"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ListingRequest
	if !bindJSON(c, &req) {
		return
	}
	params, err := req.ToParams(hospitalID)
	if err != nil {
		httperr.AbortWithDomainError(c, errs.Mark(err, errs.ErrInvalidRequest))
		return
	}
	if _, err = h.cmds.Update(c.Request.Context(), hospitalID, id, params); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	snap, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(snap))
}

// @Summary Delete listing
// @Tags listings
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), hospitalID, id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Import listings
// @Description Create one listing per row; each row succeeds or fails on its own
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []reqdto.ListingRequest true "Parsed rows"
// @Success 200 {object} resdto.ImportResponse
// @Failure 400 {object} httperr.Response
// @Router /listings/import [post]
func (h *ListingHandler) Import(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	var raw []json.RawMessage
	if !bindJSON(c, &raw) {
		return
	}
	if len(raw) == 0 || len(raw) > maxImportRows {
		httperr.AbortWithDomainError(c, errs.Wrapf(errs.ErrInvalidRequest, "import needs 1 to %d rows, got %d", maxImportRows, len(raw)))
		return
	}

	results := make([]commands.ImportResult, len(raw))
	params := make([]listing.Params, 0, len(raw))
	positions := make([]int, 0, len(raw))
	for i, row := range raw {
		results[i].Row = i + 1
		p, err := decodeImportRow(row, hospitalID)
		if err != nil {
			results[i].Err = err
			continue
		}
		params = append(params, p)
		positions = append(positions, i)
	}

	for _, r := range h.cmds.Import(c.Request.Context(), hospitalID, params) {
		i := positions[r.Row-1]
		results[i].Listing = r.Listing
		results[i].Err = r.Err
	}
	c.JSON(http.StatusOK, resdto.FromImportResults(results))
}

func decodeImportRow(row json.RawMessage, hospitalID uuid.UUID) (listing.Params, error) {
	var req reqdto.ListingRequest
	if err := json.Unmarshal(row, &req); err != nil {
		return listing.Params{}, errs.Mark(errs.Wrap(err, "decode row"), errs.ErrInvalidRequest)
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return listing.Params{}, errs.Mark(errs.Wrap(err, "validate row"), errs.ErrInvalidRequest)
	}
	p, err := req.ToParams(hospitalID)
	if err != nil {
		return listing.Params{}, errs.Mark(err, errs.ErrInvalidRequest)
	}
	return p, nil
}
