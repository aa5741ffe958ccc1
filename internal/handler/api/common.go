package api

import (
	"errors"
	"net/http"

	reqdto "rx-exchange/internal/handler/dto/request"
	"rx-exchange/internal/handler/httperr"
	"rx-exchange/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingHospital = errors.New("hospital id missing from request context")

func requireHospital(c *gin.Context) (uuid.UUID, bool) {
	hospitalID, ok := middleware.GetHospitalID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingHospital, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return hospitalID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", reqdto.ValidationDetail(err))
		return false
	}
	return true
}
