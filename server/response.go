package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/apperr"
	. "github.com/linkup-social/linkup/utils/log"
)

// Envelope is the uniform response wrapper. Every status code ships with a
// body, including errors.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
	})
}

// respondError maps an error kind to its stable HTTP status. Unknown kinds
// are treated as internal failures so nothing leaks with a 200.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		Log.Error("request failed: ", err)
	}
	respond(c, status, nil, err.Error())
}
