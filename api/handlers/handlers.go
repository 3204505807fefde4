// ABOUTME: Shared handler state and helpers for the HTTP API
// ABOUTME: Holds the service, dispatcher and optional request log used by all endpoints

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"yt-data-api/core/dispatch"
	"yt-data-api/core/interfaces"
	"yt-data-api/core/youtube"
	sqlitelog "yt-data-api/infrastructure/requestlog/sqlite"
)

// Handler carries the dependencies shared by all endpoint methods.
type Handler struct {
	service    *youtube.Service
	dispatcher *dispatch.Dispatcher
	requestLog *sqlitelog.RequestLog
	logger     interfaces.Logger
	started    time.Time
}

// NewHandler creates the handler set. requestLog may be nil when the
// request log is disabled.
func NewHandler(service *youtube.Service, dispatcher *dispatch.Dispatcher, requestLog *sqlitelog.RequestLog, logger interfaces.Logger) *Handler {
	return &Handler{
		service:    service,
		dispatcher: dispatcher,
		requestLog: requestLog,
		logger:     logger,
		started:    time.Now(),
	}
}

// dispatchOptions reads per-request cache controls from the query string.
func dispatchOptions(c *gin.Context) dispatch.Options {
	return dispatch.Options{
		ForceRefresh: c.Query("refresh") == "true",
	}
}
