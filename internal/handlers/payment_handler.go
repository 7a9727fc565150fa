package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/middleware"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

type paymentWorkflow interface {
	Submit(ctx context.Context, payer *models.User, input services.SubmitPaymentInput) (*models.Payment, error)
	Approve(ctx context.Context, paymentID int64) (*models.Payment, error)
	Reject(ctx context.Context, paymentID int64) (*models.Payment, error)
	ListPending(ctx context.Context, page, limit int) ([]models.Payment, int, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Payment, error)
}

type PaymentHandler struct {
	service paymentWorkflow
}

func NewPaymentHandler(service paymentWorkflow) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type submitPaymentRequest struct {
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id"`
}

func (h *PaymentHandler) Submit(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	var req submitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	payment, err := h.service.Submit(c.Context(), user, services.SubmitPaymentInput{
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "Transaction ID and Amount are required"})
		case errors.Is(err, services.ErrNoTrainerAssigned):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "No trainer assigned yet"})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to submit payment"})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

func (h *PaymentHandler) MyPayments(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token failed"})
	}

	payments, err := h.service.ListForUser(c.Context(), actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to list payments"})
	}
	return c.JSON(fiber.Map{"payments": payments})
}

func (h *PaymentHandler) Pending(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	payments, total, err := h.service.ListPending(c.Context(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to list pending payments"})
	}

	return c.JSON(fiber.Map{
		"payments":   payments,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *PaymentHandler) Approve(c *fiber.Ctx) error {
	paymentID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payment id"})
	}

	if _, err := h.service.Approve(c.Context(), paymentID); err != nil {
		return paymentDecisionError(c, err, "Failed to approve payment")
	}

	return c.JSON(fiber.Map{"message": "Payment approved"})
}

func (h *PaymentHandler) Reject(c *fiber.Ctx) error {
	paymentID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payment id"})
	}

	if _, err := h.service.Reject(c.Context(), paymentID); err != nil {
		return paymentDecisionError(c, err, "Failed to reject payment")
	}

	return c.JSON(fiber.Map{"message": "Payment rejected"})
}

func paymentDecisionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Payment not found"})
	case errors.Is(err, services.ErrAlreadyApproved):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Payment already approved"})
	case errors.Is(err, services.ErrAlreadyRejected):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Payment already rejected"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": fallback})
}
