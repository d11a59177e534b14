package handler

import (
	"itapp/internal/delivery/http/dto"
	"itapp/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc NotificationUsecase
}

func NewNotificationHandler(uc NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) All(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	q, err := paginationQuery(c)
	if err != nil {
		return err
	}
	page, err := h.uc.List(c.Context(), p.ID, q)
	if err != nil {
		return mapNotificationError(err)
	}
	return response.List(c, response.MessageOK, dto.FromNotifications(page.Notifications), page.Total)
}

func (h *NotificationHandler) Count(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	n, err := h.uc.Count(c.Context(), p.ID)
	if err != nil {
		return mapNotificationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"count": n})
}

func (h *NotificationHandler) Get(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parseUUID(c.Params("id"), "id")
	if err != nil {
		return err
	}
	n, err := h.uc.Get(c.Context(), p.ID, id)
	if err != nil {
		return mapNotificationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromNotification(n))
}
