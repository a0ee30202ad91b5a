package http

import (
	"net/http"

	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
)

const msgNotificationNotFound = "Notification not found or access denied"

var (
	createNotificationErrors = opErrors{Internal: "Error creating notification"}
	listNotificationsErrors  = opErrors{Internal: "Error fetching notifications"}
	markReadErrors           = opErrors{NotFound: msgNotificationNotFound, Internal: "Error marking notification as read"}
	deleteNotificationErrors = opErrors{NotFound: msgNotificationNotFound, Internal: "Error deleting notification"}
)

type NotificationsHandler struct {
	NotificationService *service.NotificationService
}

// HandleCreate adds a notification for the caller and pushes it to their
// open /ws connections.
//
//	@Summary	Create notification
//	@Tags		Notifications
//	@Accept		json
//	@Produce	json
//	@Param		request	body		adminsdk.CreateNotificationRequest	true	"Notification"
//	@Success	201		{object}	adminsdk.NotificationResponse
//	@Failure	400		{object}	adminsdk.APIError	"Message is required"
//	@Failure	401		{object}	adminsdk.APIError
//	@Security	BearerAuth
//	@Router		/notifications [post].
func (h *NotificationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req adminsdk.CreateNotificationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	n, err := h.NotificationService.Create(r.Context(), service.CreateNotificationInput{
		UserID:  userID,
		Message: req.Message,
		IsRead:  req.IsRead,
	})
	if err != nil {
		writeServiceError(w, r, err, createNotificationErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminsdk.NotificationResponse{
		Message:      "Notification created",
		Notification: toNotification(n),
	})
}

// HandleList returns the caller's notifications, newest first.
//
//	@Summary	List notifications
//	@Tags		Notifications
//	@Produce	json
//	@Success	200	{array}		adminsdk.Notification
//	@Failure	401	{object}	adminsdk.APIError
//	@Security	BearerAuth
//	@Router		/notifications [get].
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	list, err := h.NotificationService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, listNotificationsErrors)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toNotification))
}

// HandleMarkRead flags one of the caller's notifications as read.
//
//	@Summary	Mark notification read
//	@Tags		Notifications
//	@Produce	json
//	@Param		id	path		string	true	"Notification ID"
//	@Success	200	{object}	adminsdk.NotificationResponse
//	@Failure	404	{object}	adminsdk.APIError	"Notification not found or access denied"
//	@Security	BearerAuth
//	@Router		/notifications/{id}/read [put].
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	n, err := h.NotificationService.MarkRead(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, err, markReadErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.NotificationResponse{
		Message:      "Notification marked as read",
		Notification: toNotification(n),
	})
}

// HandleDelete removes one of the caller's notifications.
//
//	@Summary	Delete notification
//	@Tags		Notifications
//	@Produce	json
//	@Param		id	path		string	true	"Notification ID"
//	@Success	200	{object}	adminsdk.NotificationResponse
//	@Failure	404	{object}	adminsdk.APIError	"Notification not found or access denied"
//	@Security	BearerAuth
//	@Router		/notifications/{id} [delete].
func (h *NotificationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	n, err := h.NotificationService.Delete(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, err, deleteNotificationErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.NotificationResponse{
		Message:      "Notification deleted",
		Notification: toNotification(n),
	})
}
