package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/middleware"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubPaymentService struct {
	submitResult  *models.Payment
	submitErr     error
	approveErr    error
	rejectErr     error
	pendingResult []models.Payment
	pendingTotal  int
	pendingErr    error
	listResult    []models.Payment
	listErr       error

	lastSubmitInput services.SubmitPaymentInput
	lastPayerID     int64
	approveCalls    []int64
	rejectCalls     []int64
}

func (s *stubPaymentService) Submit(_ context.Context, payer *models.User, input services.SubmitPaymentInput) (*models.Payment, error) {
	s.lastPayerID = payer.ID
	s.lastSubmitInput = input
	return s.submitResult, s.submitErr
}

func (s *stubPaymentService) Approve(_ context.Context, paymentID int64) (*models.Payment, error) {
	s.approveCalls = append(s.approveCalls, paymentID)
	if s.approveErr != nil {
		return nil, s.approveErr
	}
	return &models.Payment{ID: paymentID, Status: models.PaymentApproved}, nil
}

func (s *stubPaymentService) Reject(_ context.Context, paymentID int64) (*models.Payment, error) {
	s.rejectCalls = append(s.rejectCalls, paymentID)
	if s.rejectErr != nil {
		return nil, s.rejectErr
	}
	return &models.Payment{ID: paymentID, Status: models.PaymentRejected}, nil
}

func (s *stubPaymentService) ListPending(_ context.Context, page, limit int) ([]models.Payment, int, error) {
	return s.pendingResult, s.pendingTotal, s.pendingErr
}

func (s *stubPaymentService) ListForUser(_ context.Context, userID int64) ([]models.Payment, error) {
	return s.listResult, s.listErr
}

func newPaymentApp(service *stubPaymentService, user *models.User) *fiber.App {
	handler := NewPaymentHandler(service)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.ActorKey, models.Actor{ID: user.ID, Role: user.Role})
		c.Locals(middleware.UserKey, user)
		return c.Next()
	})
	app.Post("/api/v1/payments", handler.Submit)
	app.Get("/api/v1/payments/pending", handler.Pending)
	app.Put("/api/v1/payments/:id/approve", handler.Approve)
	app.Put("/api/v1/payments/:id/reject", handler.Reject)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func clientUser() *models.User {
	return &models.User{ID: 42, Role: models.RoleClient}
}

func TestSubmitPaymentCreatesPendingPayment(t *testing.T) {
	service := &stubPaymentService{
		submitResult: &models.Payment{
			ID:            1,
			UserID:        42,
			Amount:        6000,
			TransactionID: "TXN1",
			Status:        models.PaymentPending,
			PaymentType:   models.PaymentClientActivation,
		},
	}
	app := newPaymentApp(service, clientUser())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments",
		`{"amount": 6000, "transaction_id": "TXN1"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastPayerID != 42 {
		t.Fatalf("expected payer 42, got %d", service.lastPayerID)
	}
	if service.lastSubmitInput.Amount != 6000 || service.lastSubmitInput.TransactionID != "TXN1" {
		t.Fatalf("unexpected submit input: %+v", service.lastSubmitInput)
	}
}

func TestSubmitPaymentRejectsMissingFields(t *testing.T) {
	service := &stubPaymentService{submitErr: services.ErrInvalidInput}
	app := newPaymentApp(service, clientUser())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/payments",
		`{"amount": 0, "transaction_id": ""}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeBody(t, resp)["message"]; got != "Transaction ID and Amount are required" {
		t.Fatalf("expected validation message, got %v", got)
	}
}

func TestApprovePayment(t *testing.T) {
	service := &stubPaymentService{}
	app := newPaymentApp(service, &models.User{ID: 1, Role: models.RoleAdmin})

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/payments/9/approve", ""))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := decodeBody(t, resp)["message"]; got != "Payment approved" {
		t.Fatalf("expected approval message, got %v", got)
	}
	if len(service.approveCalls) != 1 || service.approveCalls[0] != 9 {
		t.Fatalf("expected one approve call for payment 9, got %+v", service.approveCalls)
	}
}

func TestApprovePaymentTwiceReturnsAlreadyApproved(t *testing.T) {
	service := &stubPaymentService{approveErr: services.ErrAlreadyApproved}
	app := newPaymentApp(service, &models.User{ID: 1, Role: models.RoleAdmin})

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/payments/9/approve", ""))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeBody(t, resp)["message"]; got != "Payment already approved" {
		t.Fatalf("expected already-approved message, got %v", got)
	}
}

func TestApproveMissingPaymentReturnsNotFound(t *testing.T) {
	service := &stubPaymentService{approveErr: services.ErrNotFound}
	app := newPaymentApp(service, &models.User{ID: 1, Role: models.RoleAdmin})

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/payments/404/approve", ""))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRejectPayment(t *testing.T) {
	service := &stubPaymentService{}
	app := newPaymentApp(service, &models.User{ID: 1, Role: models.RoleAdmin})

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/payments/3/reject", ""))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(service.rejectCalls) != 1 || service.rejectCalls[0] != 3 {
		t.Fatalf("expected one reject call for payment 3, got %+v", service.rejectCalls)
	}
}

func TestPendingPaymentsIncludesPagination(t *testing.T) {
	service := &stubPaymentService{
		pendingResult: []models.Payment{{ID: 1}, {ID: 2}},
		pendingTotal:  12,
	}
	app := newPaymentApp(service, &models.User{ID: 1, Role: models.RoleAdmin})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/payments/pending?page=1&limit=2", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	pagination, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination meta, got %v", body)
	}
	if pagination["total"] != float64(12) || pagination["total_pages"] != float64(6) {
		t.Fatalf("unexpected pagination: %v", pagination)
	}
}
