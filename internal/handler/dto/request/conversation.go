package request

import (
	"github.com/oklog/ulid/v2"
)

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type MarkReadRequest struct {
	UpToMessageID string `json:"up_to_message_id" binding:"required,len=26"`
}

func (r MarkReadRequest) ToDomain() (ulid.ULID, error) {
	return ulid.ParseStrict(r.UpToMessageID)
}
