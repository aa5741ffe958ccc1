package api

import (
	"net/http"
	"slices"

	reqdto "rx-exchange/internal/handler/dto/request"
	resdto "rx-exchange/internal/handler/dto/response"
	"rx-exchange/internal/handler/httperr"
	"rx-exchange/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	q queries.MatchQueries
}

func NewMatchHandler(q queries.MatchQueries) *MatchHandler {
	return &MatchHandler{q: q}
}

// @Summary Match a drug request
// @Description Rank shareable stock at other hospitals against the request
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.MatchRequest true "Drug request"
// @Success 200 {object} resdto.MatchResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /matches [post]
func (h *MatchHandler) Match(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	var req reqdto.MatchRequest
	if !bindJSON(c, &req) {
		return
	}

	params, opts := req.ToParams(hospitalID)
	result, err := h.q.Match(c.Request.Context(), params, opts)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	res, err := resdto.FromMatch(result.Request, slices.Collect(result.Candidates))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
