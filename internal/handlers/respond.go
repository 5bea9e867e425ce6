package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"transportcoin-service/pkg/common"
)

// respond writes a service result to the wire. Service methods return an
// envelope value for expected outcomes and a non-nil error only for
// unexpected failures (DB down, broken invariants).
func respond(c *gin.Context, res interface{}, err error) {
	if err != nil {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(
			"Something went wrong. Please try again.",
			common.CodeServerError, http.StatusInternalServerError))
		return
	}

	switch r := res.(type) {
	case common.SuccessResponse:
		c.JSON(r.Status, r)
	case common.ErrorResponse:
		c.JSON(r.Status, r)
	case common.PaginationResult:
		c.JSON(http.StatusOK, r)
	default:
		c.JSON(http.StatusOK, res)
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, common.NewErrorResponse(
		message, common.CodeValidation, http.StatusBadRequest))
}
