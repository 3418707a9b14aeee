// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/secretary/middleware"
	"github.com/danielhkuo/secretary/models"
	"github.com/danielhkuo/secretary/state"
)

// recentUpdateCount bounds the status endpoint's update history.
const recentUpdateCount = 5

type StatusHandler struct {
	store *state.Store
}

func NewStatusHandler(store *state.Store) *StatusHandler {
	return &StatusHandler{store: store}
}

// Status handles GET /status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		SubscriberCount: h.store.SubscriberCount(),
		Updates:         h.store.RecentUpdates(recentUpdateCount),
	})
}
