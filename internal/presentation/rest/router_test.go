package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/application/usecase"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
	"github.com/hearthloan/prequal/internal/domain/valueobject"
	"github.com/hearthloan/prequal/pkg/auth"
)

type testServer struct {
	handler http.Handler
	jwt     *auth.JWTService
	userID  uuid.UUID
}

type serverOption func(*RouterConfig)

func withChecks(checks map[string]Check) serverOption {
	return func(c *RouterConfig) {
		c.Health = NewHealthHandler("prequald", checks, c.Logger)
	}
}

func withRateLimit(rps float64, burst int) serverOption {
	return func(c *RouterConfig) {
		c.RateLimitRPS = rps
		c.RateLimitBurst = burst
	}
}

func newTestServer(t *testing.T, uc usecase.Set, opts ...serverOption) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "rest-test-secret",
		Issuer:     "prequal-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	cfg := RouterConfig{
		API:            NewHandler(uc, logger),
		Health:         NewHealthHandler("prequald", nil, logger),
		Metrics:        http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics\n")) }),
		JWT:            jwtService,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		Logger:         logger,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &testServer{handler: NewRouter(cfg), jwt: jwtService, userID: uuid.New()}
}

func (s *testServer) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if authed {
		token, err := s.jwt.GenerateToken(s.userID, "", []string{auth.RoleApplicant})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const validPrequalBody = `{
	"loan_amount": 300000,
	"down_payment": 60000,
	"annual_income": 120000,
	"monthly_debts": 500,
	"credit_score": 720,
	"employment_status": "employed"
}`

func TestProbesArePublic(t *testing.T) {
	srv := newTestServer(t, usecase.Set{})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, path, "", false)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestReadinessReportsFailingCheck(t *testing.T) {
	srv := newTestServer(t, usecase.Set{}, withChecks(map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}))

	rec := srv.do(t, http.MethodGet, "/readyz", "", false)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeJSON[map[string]any](t, rec)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "ok", checks["postgres"])
	assert.Equal(t, "unavailable", checks["redis"])
}

func TestAPIRequiresToken(t *testing.T) {
	srv := newTestServer(t, usecase.Set{})

	rec := srv.do(t, http.MethodPost, "/v1/prequal/calculate", validPrequalBody, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPrequalify(t *testing.T) {
	var got dto.PrequalifyRequest
	srv := newTestServer(t, usecase.Set{
		Prequalify: usecase.Func[dto.PrequalifyRequest, dto.PreQualificationResponse](
			func(_ context.Context, req dto.PrequalifyRequest) (dto.PreQualificationResponse, error) {
				got = req
				return dto.PreQualificationResponse{Status: "approved", Conditions: []string{}}, nil
			}),
	})

	t.Run("happy path", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/prequal/calculate", validPrequalBody, true)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decodeJSON[dto.PreQualificationResponse](t, rec)
		assert.Equal(t, "approved", resp.Status)
		assert.Equal(t, srv.userID, got.UserID)
		assert.True(t, got.LoanAmount.Equal(decimal.NewFromInt(300000)))
		require.NotNil(t, got.CreditScore)
		assert.Equal(t, 720, *got.CreditScore)
	})

	t.Run("missing field fails schema", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/prequal/calculate", `{"loan_amount": 1}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "employment_status")
	})

	t.Run("unknown field fails schema", func(t *testing.T) {
		body := strings.Replace(validPrequalBody, `"credit_score": 720,`, `"credit_score": 720, "user_id": "x",`, 1)
		rec := srv.do(t, http.MethodPost, "/v1/prequal/calculate", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/prequal/calculate", `{`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/v1/prequal/calculate", "", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: down_payment must not be negative", model.ErrValidation), http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("find application: %w", port.ErrNotFound), http.StatusNotFound},
		{"transition", fmt.Errorf("submit: %w", valueobject.ErrInvalidStatusTransition), http.StatusConflict},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, usecase.Set{
				SubmitApplication: usecase.Func[dto.SubmitApplicationRequest, dto.ApplicationResponse](
					func(context.Context, dto.SubmitApplicationRequest) (dto.ApplicationResponse, error) {
						return dto.ApplicationResponse{}, tt.err
					}),
			})

			rec := srv.do(t, http.MethodPut, "/v1/applications/"+uuid.NewString()+"/submit", "", true)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection reset")
			}
		})
	}
}

func TestApplications(t *testing.T) {
	appID := uuid.New()
	var gotGet dto.GetApplicationRequest
	srv := newTestServer(t, usecase.Set{
		CreateApplication: usecase.Func[dto.CreateApplicationRequest, dto.ApplicationResponse](
			func(_ context.Context, req dto.CreateApplicationRequest) (dto.ApplicationResponse, error) {
				return dto.ApplicationResponse{ID: appID, UserID: req.UserID, LoanType: req.LoanType, Status: "draft"}, nil
			}),
		ListApplications: usecase.Func[dto.ListApplicationsRequest, dto.ApplicationListResponse](
			func(_ context.Context, req dto.ListApplicationsRequest) (dto.ApplicationListResponse, error) {
				return dto.ApplicationListResponse{Applications: []dto.ApplicationResponse{{ID: appID, UserID: req.UserID}}}, nil
			}),
		GetApplication: usecase.Func[dto.GetApplicationRequest, dto.ApplicationResponse](
			func(_ context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error) {
				gotGet = req
				return dto.ApplicationResponse{ID: req.ApplicationID}, nil
			}),
	})

	t.Run("create", func(t *testing.T) {
		body := `{
			"loan_amount": 320000,
			"loan_type": "conventional",
			"property_address": {"street": "1 Main St", "city": "Austin"},
			"property_value": 400000,
			"down_payment": 80000
		}`
		rec := srv.do(t, http.MethodPost, "/v1/applications", body, true)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		resp := decodeJSON[dto.ApplicationResponse](t, rec)
		assert.Equal(t, srv.userID, resp.UserID)
		assert.Equal(t, "conventional", resp.LoanType)
	})

	t.Run("list", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/v1/applications", "", true)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeJSON[dto.ApplicationListResponse](t, rec)
		require.Len(t, resp.Applications, 1)
		assert.Equal(t, srv.userID, resp.Applications[0].UserID)
	})

	t.Run("get", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/v1/applications/"+appID.String(), "", true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, appID, gotGet.ApplicationID)
		assert.Equal(t, srv.userID, gotGet.UserID)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/v1/applications/not-a-uuid", "", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListProductsQuery(t *testing.T) {
	var got dto.ListProductsRequest
	srv := newTestServer(t, usecase.Set{
		ListProducts: usecase.Func[dto.ListProductsRequest, dto.ProductListResponse](
			func(_ context.Context, req dto.ListProductsRequest) (dto.ProductListResponse, error) {
				got = req
				return dto.ProductListResponse{Products: []dto.ProductResponse{}}, nil
			}),
	})

	t.Run("all filters", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/v1/products?credit_score=720&loan_amount=300000&down_payment=60000.50", "", true)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.CreditScore)
		require.NotNil(t, got.LoanAmount)
		require.NotNil(t, got.DownPayment)
		assert.Equal(t, 720, *got.CreditScore)
		assert.Equal(t, "60000.5", got.DownPayment.String())
	})

	t.Run("no filters", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/v1/products", "", true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, got.CreditScore)
		assert.Nil(t, got.LoanAmount)
	})

	t.Run("bad score", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/v1/products?credit_score=high", "", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestScheduleProfileAndIntentRoutes(t *testing.T) {
	srv := newTestServer(t, usecase.Set{
		Schedule: usecase.Func[dto.ScheduleRequest, dto.ScheduleResponse](
			func(_ context.Context, req dto.ScheduleRequest) (dto.ScheduleResponse, error) {
				return dto.ScheduleResponse{TermMonths: req.TermMonths, Entries: []dto.ScheduleEntry{}}, nil
			}),
		GetProfile: usecase.Func[dto.GetProfileRequest, dto.ProfileResponse](
			func(_ context.Context, req dto.GetProfileRequest) (dto.ProfileResponse, error) {
				return dto.ProfileResponse{UserID: req.UserID, KYCStatus: "incomplete"}, nil
			}),
		UpdateProfile: usecase.Func[dto.UpdateProfileRequest, dto.ProfileResponse](
			func(_ context.Context, req dto.UpdateProfileRequest) (dto.ProfileResponse, error) {
				return dto.ProfileResponse{UserID: req.UserID, FirstName: *req.FirstName}, nil
			}),
		ClassifyIntent: usecase.Func[dto.ClassifyIntentRequest, dto.IntentResponse](
			func(_ context.Context, req dto.ClassifyIntentRequest) (dto.IntentResponse, error) {
				intent := "getQuote"
				return dto.IntentResponse{Intent: &intent, Suggestions: []string{}}, nil
			}),
	})

	rec := srv.do(t, http.MethodPost, "/v1/prequal/schedule", `{"loan_amount": 100000, "rate": 6, "term_months": 12}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 12, decodeJSON[dto.ScheduleResponse](t, rec).TermMonths)

	rec = srv.do(t, http.MethodGet, "/v1/profile", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, srv.userID, decodeJSON[dto.ProfileResponse](t, rec).UserID)

	rec = srv.do(t, http.MethodPut, "/v1/profile", `{"first_name": "Ada"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Ada", decodeJSON[dto.ProfileResponse](t, rec).FirstName)

	rec = srv.do(t, http.MethodPost, "/v1/assistant/intent", `{"message": "what rate can I get"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[dto.IntentResponse](t, rec)
	require.NotNil(t, resp.Intent)
	assert.Equal(t, "getQuote", *resp.Intent)
}

func TestRateLimitPerClient(t *testing.T) {
	srv := newTestServer(t, usecase.Set{
		PrequalHistory: usecase.Func[dto.PrequalHistoryRequest, dto.PrequalHistoryResponse](
			func(context.Context, dto.PrequalHistoryRequest) (dto.PrequalHistoryResponse, error) {
				return dto.PrequalHistoryResponse{Results: []dto.PreQualificationResponse{}}, nil
			}),
	}, withRateLimit(0.001, 2))

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/v1/prequal/history", "", true).Code)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/v1/prequal/history", "", true).Code)

	rec := srv.do(t, http.MethodGet, "/v1/prequal/history", "", true)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	srv.userID = uuid.New()
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/v1/prequal/history", "", true).Code)
}

func TestClientLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newClientLimiter(1, 1)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	first := l.get("user:a")
	l.get("ip:10.0.0.1")
	assert.Same(t, first, l.get("user:a"))
	assert.Len(t, l.clients, 2)

	now = now.Add(limiterIdleTTL / 2)
	l.get("user:a")

	now = now.Add(limiterIdleTTL / 2)
	l.get("user:b")
	assert.Len(t, l.clients, 2, "the idle IP bucket is dropped, the active user is kept")
	assert.Contains(t, l.clients, "user:a")
	assert.NotContains(t, l.clients, "ip:10.0.0.1")

	now = now.Add(2 * limiterIdleTTL)
	l.get("user:c")
	assert.Len(t, l.clients, 1)
	assert.NotSame(t, first, l.get("user:a"), "an evicted client starts with a fresh bucket")
}
