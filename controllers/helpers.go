package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"stayhub-backend/services"
	"stayhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service sentinels onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrImmutableState):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(v), true
}

func requiredUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		utils.JSONError(c, http.StatusBadRequest, name+" query parameter is required")
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(v), true
}

// dateRangeQuery parses two required YYYY-MM-DD query parameters.
func dateRangeQuery(c *gin.Context, fromKey, toKey string) (from, to time.Time, ok bool) {
	rawFrom, rawTo := c.Query(fromKey), c.Query(toKey)
	if rawFrom == "" || rawTo == "" {
		utils.JSONError(c, http.StatusBadRequest, fromKey+" and "+toKey+" query parameters are required")
		return
	}
	var err error
	if from, err = utils.ParseDate(rawFrom); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if to, err = utils.ParseDate(rawTo); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	return from, to, true
}

func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return nil, false
	}
	u := uint(v)
	return &u, true
}
