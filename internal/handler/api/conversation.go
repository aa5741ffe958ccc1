package api

import (
	"net/http"

	reqdto "rx-exchange/internal/handler/dto/request"
	resdto "rx-exchange/internal/handler/dto/response"
	"rx-exchange/internal/handler/httperr"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/commands"
	"rx-exchange/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	cmds commands.MessageCommands
	q    queries.ConversationQueries
}

func NewConversationHandler(cmds commands.MessageCommands, q queries.ConversationQueries) *ConversationHandler {
	return &ConversationHandler{cmds: cmds, q: q}
}

// @Summary List conversations
// @Description Threads of the calling hospital with last message and unread count
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ConversationSummaryResponse
// @Router /conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	items := h.q.ListByHospital(c.Request.Context(), hospitalID)
	c.JSON(http.StatusOK, resdto.FromSummaries(items, hospitalID))
}

// @Summary Get messages
// @Description Full thread in send order; incoming messages become delivered
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} resdto.ThreadResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /conversations/{id}/messages [get]
func (h *ConversationHandler) Messages(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	thread, err := h.q.Thread(c.Request.Context(), hospitalID, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromThread(thread, hospitalID))
}

// @Summary Send message
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param request body reqdto.SendMessageRequest true "Message"
// @Success 201 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /conversations/{id}/messages [post]
func (h *ConversationHandler) Send(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.cmds.Send(c.Request.Context(), hospitalID, id, req.Content)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromMessage(msg))
}

// @Summary Mark read
// @Description Marks incoming messages up to and including the given id as read
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param request body reqdto.MarkReadRequest true "Read marker"
// @Success 200 {object} resdto.MarkReadResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /conversations/{id}/read [post]
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	hospitalID, ok := requireHospital(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.MarkReadRequest
	if !bindJSON(c, &req) {
		return
	}
	upTo, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithDomainError(c, errs.Mark(err, errs.ErrInvalidRequest))
		return
	}
	n, err := h.cmds.MarkRead(c.Request.Context(), hospitalID, id, upTo)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MarkReadResponse{Updated: n})
}
