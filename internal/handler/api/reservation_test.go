//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pousada-pms/internal/domain/reservation"
	"pousada-pms/internal/handler/api"
	"pousada-pms/internal/usecase/commands"
	"pousada-pms/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubReservationCommands struct {
	createFn   func(ctx context.Context, actor commands.Actor, in commands.CreateReservationInput) (uuid.UUID, error)
	cancelFn   func(ctx context.Context, actor commands.Actor, id uuid.UUID, reason *string) (*commands.CancelResult, error)
	confirmFn  func(ctx context.Context, actor commands.Actor, id uuid.UUID, guaranteeType *string) error
	checkOutFn func(ctx context.Context, actor commands.Actor, id uuid.UUID, in commands.CheckOutInput) error
}

func (s *stubReservationCommands) Create(ctx context.Context, actor commands.Actor, in commands.CreateReservationInput) (uuid.UUID, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubReservationCommands) Rebook(context.Context, commands.Actor, uuid.UUID, commands.RebookReservationInput) error {
	return nil
}

func (s *stubReservationCommands) Confirm(ctx context.Context, actor commands.Actor, id uuid.UUID, guaranteeType *string) error {
	if s.confirmFn != nil {
		return s.confirmFn(ctx, actor, id, guaranteeType)
	}
	return nil
}

func (s *stubReservationCommands) CheckIn(context.Context, commands.Actor, uuid.UUID) error {
	return nil
}

func (s *stubReservationCommands) CheckOut(ctx context.Context, actor commands.Actor, id uuid.UUID, in commands.CheckOutInput) error {
	if s.checkOutFn != nil {
		return s.checkOutFn(ctx, actor, id, in)
	}
	return nil
}

func (s *stubReservationCommands) Cancel(ctx context.Context, actor commands.Actor, id uuid.UUID, reason *string) (*commands.CancelResult, error) {
	return s.cancelFn(ctx, actor, id, reason)
}

func (s *stubReservationCommands) MarkNoShow(context.Context, commands.Actor, uuid.UUID) error {
	return nil
}

func (s *stubReservationCommands) OverridePrice(context.Context, commands.Actor, uuid.UUID, float64) error {
	return nil
}

type stubMinibarCommands struct{}

func (s *stubMinibarCommands) RegisterConsumption(context.Context, commands.Actor, commands.RegisterConsumptionInput) (uuid.UUID, error) {
	return uuid.New(), nil
}

type stubReservationQueries struct {
	getFn func(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

func (s *stubReservationQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return s.getFn(ctx, id)
}

func (s *stubReservationQueries) ListByProperty(context.Context, uuid.UUID, queries.ReservationFilter, int) ([]*queries.ReservationListItem, error) {
	return nil, nil
}

func (s *stubReservationQueries) ListConsumptions(context.Context, uuid.UUID) ([]*queries.ConsumptionView, error) {
	return nil, nil
}

type stubCancellationQueries struct {
	previewFn func(ctx context.Context, id uuid.UUID) (*queries.RefundPreviewView, error)
}

func (s *stubCancellationQueries) PreviewRefund(ctx context.Context, id uuid.UUID) (*queries.RefundPreviewView, error) {
	return s.previewFn(ctx, id)
}

func (s *stubCancellationQueries) GetActivePolicy(context.Context, uuid.UUID) (*queries.PolicyView, error) {
	return nil, queries.ErrPolicyNotFound
}

func (s *stubCancellationQueries) ListPolicies(context.Context, uuid.UUID) ([]queries.PolicyView, error) {
	return nil, nil
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	reservations *stubReservationCommands
	resQueries   *stubReservationQueries
	cancQueries  *stubCancellationQueries
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.reservations = &stubReservationCommands{}
	s.resQueries = &stubReservationQueries{}
	s.cancQueries = &stubCancellationQueries{}

	handler := api.NewReservationHandler(s.reservations, &stubMinibarCommands{}, s.resQueries, s.cancQueries)

	// Simulate RequireAuth by seeding the identity keys directly.
	authed := s.router.Group("", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("property_id", uuid.New())
	})
	authed.POST("/reservations", handler.Create)
	authed.GET("/reservations/:id", handler.Get)
	authed.POST("/reservations/:id/check-out", handler.CheckOut)
	authed.POST("/reservations/:id/cancel-with-policy", handler.Cancel)
	authed.GET("/reservations/:id/preview-cancellation", handler.PreviewCancellation)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func validCreateBody() map[string]any {
	return map[string]any{
		"room_id":    uuid.New().String(),
		"guest_name": "Maria Souza",
		"adults":     2,
		"check_in":   "2026-03-10",
		"check_out":  "2026-03-13",
	}
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	s.Run("success: returns 201 with the new reservation ID", func() {
		id := uuid.New()
		s.reservations.createFn = func(_ context.Context, actor commands.Actor, in commands.CreateReservationInput) (uuid.UUID, error) {
			s.Equal("Maria Souza", in.GuestName)
			s.Equal(2, in.Adults)
			s.NotEqual(uuid.Nil, actor.PropertyID)
			return id, nil
		}

		rec := s.perform(http.MethodPost, url, validCreateBody())
		s.Equal(http.StatusCreated, rec.Code)

		var resp map[string]string
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(id.String(), resp["id"])
	})

	s.Run("error: 422 with room_id detail on overlap conflict", func() {
		s.reservations.createFn = func(context.Context, commands.Actor, commands.CreateReservationInput) (uuid.UUID, error) {
			return uuid.Nil, commands.ErrRoomUnavailable
		}

		rec := s.perform(http.MethodPost, url, validCreateBody())
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Detail map[string]string `json:"detail"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Contains(resp.Detail, "room_id")
	})

	s.Run("error: 404 when the room does not exist", func() {
		s.reservations.createFn = func(context.Context, commands.Actor, commands.CreateReservationInput) (uuid.UUID, error) {
			return uuid.Nil, commands.ErrRoomNotFound
		}

		rec := s.perform(http.MethodPost, url, validCreateBody())
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 422 on missing required fields", func() {
		body := validCreateBody()
		delete(body, "guest_name")

		rec := s.perform(http.MethodPost, url, body)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("error: 422 on malformed dates", func() {
		body := validCreateBody()
		body["check_in"] = "10/03/2026"

		rec := s.perform(http.MethodPost, url, body)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("error: 500 on unexpected failures", func() {
		s.reservations.createFn = func(context.Context, commands.Actor, commands.CreateReservationInput) (uuid.UUID, error) {
			return uuid.Nil, errors.New("connection reset")
		}

		rec := s.perform(http.MethodPost, url, validCreateBody())
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestCheckOut() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/check-out"

	s.Run("success: passes the paid amount through", func() {
		s.reservations.checkOutFn = func(_ context.Context, _ commands.Actor, gotID uuid.UUID, in commands.CheckOutInput) error {
			s.Equal(id, gotID)
			s.Equal(13.0, in.PaidAmount)
			return nil
		}

		rec := s.perform(http.MethodPost, url, map[string]any{"paid_amount": 13.0})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 422 with the pending-charges message when balance is outstanding", func() {
		s.reservations.checkOutFn = func(context.Context, commands.Actor, uuid.UUID, commands.CheckOutInput) error {
			return reservation.ErrOutstandingBalance
		}

		rec := s.perform(http.MethodPost, url, nil)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("Checkout bloqueado: existem valores pendentes", resp.Error.Message)
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel-with-policy"

	s.Run("success: returns the refund breakdown with cancelled status", func() {
		policyID := uuid.New()
		s.reservations.cancelFn = func(_ context.Context, _ commands.Actor, gotID uuid.UUID, reason *string) (*commands.CancelResult, error) {
			s.Equal(id, gotID)
			s.Require().NotNil(reason)
			s.Equal("guest request", *reason)
			return &commands.CancelResult{
				RefundPercent:  50,
				RefundAmount:   100.0,
				RetainedAmount: 100.0,
				Reason:         "moderate window",
				PolicyID:       &policyID,
			}, nil
		}

		rec := s.perform(http.MethodPost, url, map[string]any{"reason": "guest request"})
		s.Equal(http.StatusOK, rec.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("cancelled", resp["status"])
		s.Equal(float64(50), resp["refund_percent"])
		s.Equal(100.0, resp["refund_amount"])
	})

	s.Run("error: 404 for an unknown reservation", func() {
		s.reservations.cancelFn = func(context.Context, commands.Actor, uuid.UUID, *string) (*commands.CancelResult, error) {
			return nil, commands.ErrReservationNotFound
		}

		rec := s.perform(http.MethodPost, url, nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestPreviewCancellation() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/preview-cancellation"

	s.Run("success: returns the preview without touching the reservation", func() {
		s.cancQueries.previewFn = func(_ context.Context, gotID uuid.UUID) (*queries.RefundPreviewView, error) {
			s.Equal(id, gotID)
			return &queries.RefundPreviewView{
				ReservationID:  id,
				TotalValue:     200.0,
				RefundPercent:  100,
				RefundAmount:   200.0,
				RetainedAmount: 0,
				Reason:         "flexible window",
			}, nil
		}

		rec := s.perform(http.MethodGet, url, nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(200.0, resp["refund_amount"])
	})

	s.Run("error: 404 for an unknown reservation", func() {
		s.cancQueries.previewFn = func(context.Context, uuid.UUID) (*queries.RefundPreviewView, error) {
			return nil, queries.ErrReservationNotFound
		}

		rec := s.perform(http.MethodGet, url, nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 400 on a malformed reservation ID", func() {
		rec := s.perform(http.MethodGet, "/reservations/not-a-uuid/preview-cancellation", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	id := uuid.New()

	s.Run("success: returns the reservation view", func() {
		s.resQueries.getFn = func(context.Context, uuid.UUID) (*queries.ReservationView, error) {
			return &queries.ReservationView{ID: id, GuestName: "Maria Souza", Status: "reservado"}, nil
		}

		rec := s.perform(http.MethodGet, "/reservations/"+id.String(), nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("Maria Souza", resp["guest_name"])
	})

	s.Run("error: 404 when missing", func() {
		s.resQueries.getFn = func(context.Context, uuid.UUID) (*queries.ReservationView, error) {
			return nil, queries.ErrReservationNotFound
		}

		rec := s.perform(http.MethodGet, "/reservations/"+id.String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
