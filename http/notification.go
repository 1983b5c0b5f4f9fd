package http

import (
	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

func (s *Server) handleListNotifications(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	offset, limit := pagination(c)
	filter := raqeeb.NotificationFilter{
		UnreadOnly: c.QueryParam("unread") == "true",
		Offset:     offset,
		Limit:      limit,
	}

	notifications, total, err := s.notificationService.FindNotifications(ctx, userID, filter)
	if err != nil {
		return err
	}

	return RespondList(c, notifications, total, offset, limit)
}

func (s *Server) handleMarkNotificationRead(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	notificationID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.notificationService.MarkRead(ctx, notificationID); err != nil {
		return err
	}

	return RespondSuccess(c, "Notification marked read")
}

func (s *Server) handleMarkAllNotificationsRead(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := s.notificationService.MarkAllRead(ctx, userID); err != nil {
		return err
	}

	return RespondSuccess(c, "All notifications marked read")
}
