package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	companyapp "github.com/syncworks/backend/internal/application/company"
	fleetapp "github.com/syncworks/backend/internal/application/fleet"
	identityapp "github.com/syncworks/backend/internal/application/identity"
	pricingapp "github.com/syncworks/backend/internal/application/pricing"
	quoteapp "github.com/syncworks/backend/internal/application/quote"
	"github.com/syncworks/backend/internal/application/report"
	schedulingapp "github.com/syncworks/backend/internal/application/scheduling"
	"github.com/syncworks/backend/internal/domain/identity"
	"github.com/syncworks/backend/internal/infrastructure/auth"
	"github.com/syncworks/backend/internal/infrastructure/cache"
	"github.com/syncworks/backend/internal/infrastructure/config"
	"github.com/syncworks/backend/internal/infrastructure/event"
	"github.com/syncworks/backend/internal/infrastructure/persistence"
	"github.com/syncworks/backend/internal/infrastructure/persistence/models"
	"github.com/syncworks/backend/internal/interfaces/http/dto"
	"github.com/syncworks/backend/internal/interfaces/http/handler"
	"github.com/syncworks/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	adminEmail    = "owner@acme.test"
	adminPassword = "Owner-pass-1"
	staffEmail    = "dispatch@acme.test"
	staffPassword = "Dispatch-pass-1"
)

type apiEnv struct {
	t         *testing.T
	engine    *gin.Engine
	db        *gorm.DB
	companyID uuid.UUID
	users     identity.UserRepository
}

type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.CompanyModel{},
		&models.ReferrerModel{},
		&models.UserModel{},
		&models.SeasonRuleModel{},
		&models.HolidayModel{},
		&models.QuoteModel{},
		&models.TruckModel{},
		&models.EmployeeModel{},
		&models.ShiftModel{},
		&models.TruckAssignmentModel{},
	))
	return db
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	middleware.SetupValidator()
	db := openTestDB(t)
	log := zap.NewNop()
	ctx := context.Background()

	jwtCfg := config.JWTConfig{
		Secret:                 "routes-test-secret-at-least-32-chars",
		RefreshSecret:          "routes-test-refresh-secret-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "syncworks-test",
		MaxRefreshCount:        10,
	}
	jwtService := auth.NewJWTService(jwtCfg)
	blacklist := auth.NewInMemoryTokenBlacklist()
	bus := event.NewInMemoryEventBus(log)

	companyRepo := persistence.NewGormCompanyRepository(db)
	referrerRepo := persistence.NewGormReferrerRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	dashboardRepo := persistence.NewGormDashboardRepository(db)
	truckRepo := persistence.NewGormTruckRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	ruleRepo := persistence.NewGormSeasonRuleRepository(db)
	holidayRepo := persistence.NewGormHolidayRepository(db)
	quoteRepo := persistence.NewGormQuoteRepository(db)
	shiftRepo := persistence.NewGormShiftRepository(db)
	assignmentRepo := persistence.NewGormTruckAssignmentRepository(db)

	companyService := companyapp.NewCompanyService(companyRepo)
	referrerService := companyapp.NewReferrerService(referrerRepo, dashboardRepo)
	authService := identityapp.NewAuthService(userRepo, companyRepo, jwtService, blacklist,
		identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, referrerRepo, blacklist, jwtCfg.RefreshTokenExpiration, bus, log)
	truckService := fleetapp.NewTruckService(truckRepo, bus)
	employeeService := fleetapp.NewEmployeeService(employeeRepo, bus)
	ruleService := pricingapp.NewSeasonRuleService(ruleRepo, bus)
	holidayService := pricingapp.NewHolidayService(holidayRepo)
	pricingService := pricingapp.NewPricingService(ruleRepo, holidayRepo, 92)
	schedulingService := schedulingapp.NewSchedulingService(shiftRepo, assignmentRepo, truckRepo, employeeRepo, quoteRepo, bus, log)
	quoteService := quoteapp.NewQuoteService(quoteRepo, companyRepo, referrerRepo, pricingService,
		quoteapp.WithPublisher(bus),
		quoteapp.WithTruckScheduler(schedulingService),
		quoteapp.WithBookingScope(persistence.NewGormBookingScope(&persistence.Database{DB: db}, log)),
		quoteapp.WithLogger(log),
	)
	dashboardService := report.NewDashboardService(dashboardRepo, quoteRepo, companyRepo, referrerRepo, nil, 0, log)
	bus.Subscribe(schedulingapp.NewQuoteCancelledHandler(schedulingService, log))

	co, err := companyService.Create(ctx, companyapp.CreateCompanyRequest{
		Code:     "acme",
		Name:     "Acme Movers",
		Timezone: "UTC",
	})
	require.NoError(t, err)

	for _, u := range []struct {
		email, password string
		role            identity.Role
	}{
		{adminEmail, adminPassword, identity.RoleAdmin},
		{staffEmail, staffPassword, identity.RoleStaff},
	} {
		user, err := identity.NewUser(co.ID, u.email, u.password, u.role, nil)
		require.NoError(t, err)
		require.NoError(t, userRepo.Create(ctx, user))
	}

	idempotency := cache.NewInMemoryIdempotencyStore(time.Hour)
	t.Cleanup(func() { _ = idempotency.Close() })

	engine := gin.New()
	jwt := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
	})
	NewRouter(engine).Mount(Handlers{
		Auth:       handler.NewAuthHandler(authService, config.CookieConfig{Path: "/"}, jwtCfg),
		User:       handler.NewUserHandler(userService),
		Company:    handler.NewCompanyHandler(companyService),
		Referrer:   handler.NewReferrerHandler(referrerService),
		Fleet:      handler.NewFleetHandler(truckService, employeeService),
		Pricing:    handler.NewPricingHandler(ruleService, holidayService, pricingService),
		Quote:      handler.NewQuoteHandler(quoteService),
		Scheduling: handler.NewSchedulingHandler(schedulingService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		System:     handler.NewSystemHandler(handler.BuildInfo{Name: "SyncWorks API", Version: "test"}, &persistence.Database{DB: db}),
	}, Guards{
		JWT: jwt,
		Idempotency: middleware.Idempotency(middleware.IdempotencyConfig{
			Store: idempotency,
			TTL:   time.Hour,
		}),
	}).Setup()

	return &apiEnv{t: t, engine: engine, db: db, companyID: co.ID, users: userRepo}
}

func (e *apiEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeAs[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (e *apiEnv) login(email, password string) string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	return decodeAs[handler.LoginResponse](e.t, w).Data.Token.AccessToken
}

func moveDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func submitQuote(t *testing.T, e *apiEnv, referralCode string) quoteapp.SubmitQuoteResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/api/v1/public/companies/acme/quotes", "", gin.H{
		"customer":      gin.H{"name": "Dana Reyes", "email": "dana@example.test", "phone": "555-0100"},
		"origin":        gin.H{"street": "12 Elm St", "city": "Austin", "state": "TX"},
		"destination":   gin.H{"street": "80 Oak Ave", "city": "Round Rock", "state": "TX"},
		"move_date":     moveDate(10),
		"move_size":     "studio",
		"referral_code": referralCode,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeAs[quoteapp.SubmitQuoteResponse](t, w).Data
}

func findQuoteID(t *testing.T, e *apiEnv, token, number string) uuid.UUID {
	t.Helper()
	w := e.do(http.MethodGet, "/api/v1/quotes/number/"+number, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeAs[quoteapp.QuoteResponse](t, w).Data.ID
}

func TestRoutes_Health(t *testing.T) {
	e := newAPIEnv(t)

	w := e.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.NotNil(t, health.Pool)

	w = e.do(http.MethodGet, "/api/v1/system/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeAs[any](t, w).Error.Code)
}

func TestRoutes_AuthFlow(t *testing.T) {
	e := newAPIEnv(t)

	w := e.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "OWNER@acme.test", "password": adminPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decodeAs[handler.LoginResponse](t, w).Data
	assert.NotEmpty(t, login.Token.AccessToken)
	assert.Empty(t, login.Token.RefreshToken, "refresh token travels only in the cookie")
	assert.Equal(t, "admin", login.User.Role)

	var refreshCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == handler.RefreshTokenCookie {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie)
	assert.True(t, refreshCookie.HttpOnly)

	w = e.do(http.MethodGet, "/api/v1/auth/me", login.Token.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminEmail, decodeAs[identityapp.UserInfo](t, w).Data.Email)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decodeAs[handler.RefreshTokenResponse](t, rec).Data.Token.AccessToken)

	w = e.do(http.MethodPost, "/api/v1/auth/logout", login.Token.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/api/v1/auth/me", login.Token.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_LoginFailures(t *testing.T) {
	e := newAPIEnv(t)

	w := e.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": adminEmail, "password": "wrong-pass-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidCredentials, decodeAs[any](t, w).Error.Code)

	w = e.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/v1/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_RoleGuards(t *testing.T) {
	e := newAPIEnv(t)
	admin := e.login(adminEmail, adminPassword)
	staff := e.login(staffEmail, staffPassword)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"anonymous users list", http.MethodGet, "/api/v1/users", "", http.StatusUnauthorized},
		{"staff users list", http.MethodGet, "/api/v1/users", staff, http.StatusForbidden},
		{"admin users list", http.MethodGet, "/api/v1/users", admin, http.StatusOK},
		{"staff reads trucks", http.MethodGet, "/api/v1/trucks", staff, http.StatusOK},
		{"staff reads company", http.MethodGet, "/api/v1/company", staff, http.StatusOK},
		{"staff cannot change rates", http.MethodPut, "/api/v1/company/rates", staff, http.StatusForbidden},
		{"staff reads quotes", http.MethodGet, "/api/v1/quotes", staff, http.StatusOK},
		{"staff has no portal", http.MethodGet, "/api/v1/me/quotes", staff, http.StatusForbidden},
		{"staff reads admin dashboard", http.MethodGet, "/api/v1/dashboards/admin", staff, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRoutes_UserAdministration(t *testing.T) {
	e := newAPIEnv(t)
	admin := e.login(adminEmail, adminPassword)

	w := e.do(http.MethodPost, "/api/v1/users", admin, gin.H{
		"email": "Crew.Lead@acme.test", "password": "Crew-lead-1", "role": "staff", "display_name": "Crew Lead",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeAs[identityapp.UserDTO](t, w).Data
	assert.Equal(t, "crew.lead@acme.test", created.Email)

	w = e.do(http.MethodPost, "/api/v1/users", admin, gin.H{
		"email": "crew.lead@acme.test", "password": "Crew-lead-1", "role": "staff",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(http.MethodGet, "/api/v1/users?role=staff", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeAs[[]identityapp.UserDTO](t, w)
	assert.Len(t, list.Data, 2)
	require.NotNil(t, list.Meta)
	assert.EqualValues(t, 2, list.Meta.Total)

	w = e.do(http.MethodPost, "/api/v1/users/"+created.ID.String()+"/deactivate", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deactivated", decodeAs[identityapp.UserDTO](t, w).Data.Status)

	w = e.do(http.MethodGet, "/api/v1/users/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/v1/users/"+uuid.NewString(), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_PublicQuoteLifecycle(t *testing.T) {
	e := newAPIEnv(t)
	staff := e.login(staffEmail, staffPassword)

	w := e.do(http.MethodGet, "/api/v1/public/companies/acme", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Movers", decodeAs[companyapp.PublicCompanyResponse](t, w).Data.Name)

	w = e.do(http.MethodGet, "/api/v1/public/companies/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	submitted := submitQuote(t, e, "")
	// studio defaults: 2 movers, 3 hours, 1 truck at 45/h and 125 per truck
	assert.True(t, decimal.NewFromInt(395).Equal(submitted.TotalPrice), submitted.TotalPrice.String())
	assert.Equal(t, 2, submitted.CrewSize)

	id := findQuoteID(t, e, staff, submitted.QuoteNumber).String()

	for _, step := range []struct {
		path   string
		status string
	}{
		{"/quoted", "quoted"},
		{"/book", "booked"},
		{"/complete", "completed"},
	} {
		w = e.do(http.MethodPost, "/api/v1/quotes/"+id+step.path, staff, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, step.status, decodeAs[quoteapp.QuoteResponse](t, w).Data.Status)
	}

	w = e.do(http.MethodPost, "/api/v1/quotes/"+id+"/cancel", staff, gin.H{"reason": "changed mind"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = e.do(http.MethodGet, "/api/v1/quotes/summary", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeAs[quoteapp.StatusSummaryResponse](t, w).Data.Counts["completed"])

	w = e.do(http.MethodGet, "/api/v1/quotes/"+id+"/pdf", staff, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "no renderer is configured")
}

func TestRoutes_PublicQuoteIdempotency(t *testing.T) {
	e := newAPIEnv(t)
	staff := e.login(staffEmail, staffPassword)

	submit := func() *httptest.ResponseRecorder {
		raw, err := json.Marshal(gin.H{
			"customer":    gin.H{"name": "Dana Reyes"},
			"origin":      gin.H{"street": "12 Elm St", "city": "Austin"},
			"destination": gin.H{"street": "80 Oak Ave", "city": "Austin"},
			"move_date":   moveDate(12),
			"move_size":   "1br",
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/public/companies/acme/quotes", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.IdempotencyKeyHeader, "form-7f3a")
		w := httptest.NewRecorder()
		e.engine.ServeHTTP(w, req)
		return w
	}

	first := submit()
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := submit()
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotentReplayHeader))
	assert.Equal(t,
		decodeAs[quoteapp.SubmitQuoteResponse](t, first).Data.QuoteNumber,
		decodeAs[quoteapp.SubmitQuoteResponse](t, second).Data.QuoteNumber)

	w := e.do(http.MethodGet, "/api/v1/quotes/summary", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeAs[quoteapp.StatusSummaryResponse](t, w).Data.Counts["pending"])
}

func TestRoutes_PublicQuoteValidation(t *testing.T) {
	e := newAPIEnv(t)

	w := e.do(http.MethodPost, "/api/v1/public/companies/acme/quotes", "", gin.H{
		"customer":    gin.H{"name": "Dana"},
		"origin":      gin.H{"street": "1 A St", "city": "Austin"},
		"destination": gin.H{"street": "2 B St", "city": "Austin"},
		"move_date":   "2001-01-01",
		"move_size":   "castle",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeAs[any](t, w).Error.Code)
}

func TestRoutes_ReferrerPortal(t *testing.T) {
	e := newAPIEnv(t)
	admin := e.login(adminEmail, adminPassword)

	w := e.do(http.MethodPost, "/api/v1/referrers", admin, gin.H{
		"name": "Lone Star Realty", "referral_code": "LONESTAR", "commission_rate": "5",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	referrer := decodeAs[companyapp.ReferrerResponse](t, w).Data

	w = e.do(http.MethodPost, "/api/v1/users", admin, gin.H{
		"email": "agent@lonestar.test", "password": "Agent-pass-1", "role": "referrer", "referrer_id": referrer.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	submitQuote(t, e, "LONESTAR")
	submitQuote(t, e, "")

	agent := e.login("agent@lonestar.test", "Agent-pass-1")

	w = e.do(http.MethodGet, "/api/v1/me/quotes", agent, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	mine := decodeAs[[]quoteapp.QuoteListResponse](t, w).Data
	require.Len(t, mine, 1)
	assert.Equal(t, "LONESTAR", mine[0].ReferralCode)

	w = e.do(http.MethodGet, "/api/v1/me/quotes/"+mine[0].ID.String(), agent, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/api/v1/me/dashboard", agent, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, referrer.ID, decodeAs[report.ReferrerDashboardResponse](t, w).Data.ReferrerID)

	w = e.do(http.MethodGet, "/api/v1/quotes", agent, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodGet, "/api/v1/referrers/"+referrer.ID.String()+"/stats", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_FleetAndScheduling(t *testing.T) {
	e := newAPIEnv(t)
	admin := e.login(adminEmail, adminPassword)
	staff := e.login(staffEmail, staffPassword)

	w := e.do(http.MethodPost, "/api/v1/trucks", admin, gin.H{"code": "T1", "name": "Box truck", "capacity_cu_ft": 1200})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	truck := decodeAs[fleetapp.TruckResponse](t, w).Data

	w = e.do(http.MethodPost, "/api/v1/employees", staff, gin.H{"code": "E1", "name": "Sam", "role": "driver"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/api/v1/employees", admin, gin.H{"code": "E1", "name": "Sam", "role": "driver", "hourly_rate": "22"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	employee := decodeAs[fleetapp.EmployeeResponse](t, w).Data

	day := moveDate(10)
	w = e.do(http.MethodPost, "/api/v1/scheduling/shifts", staff, gin.H{
		"employee_id": employee.ID, "date": day, "start": "08:00", "end": "12:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/v1/scheduling/shifts", staff, gin.H{
		"employee_id": employee.ID, "date": day, "start": "11:00", "end": "15:00",
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/v1/scheduling/shifts", staff, gin.H{
		"employee_id": employee.ID, "date": day, "start": "8am", "end": "15:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	submitted := submitQuote(t, e, "")
	id := findQuoteID(t, e, staff, submitted.QuoteNumber).String()
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/api/v1/quotes/"+id+"/quoted", staff, nil).Code)

	w = e.do(http.MethodPost, "/api/v1/quotes/"+id+"/book", staff, gin.H{"truck_ids": []uuid.UUID{truck.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodGet, "/api/v1/quotes/"+id+"/trucks", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeAs[[]schedulingapp.TruckAssignmentResponse](t, w).Data, 1)

	w = e.do(http.MethodGet, "/api/v1/scheduling/availability?date="+day, staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	avail := decodeAs[schedulingapp.AvailabilityResponse](t, w).Data
	assert.Empty(t, avail.Trucks, "the only truck is booked")
	assert.Empty(t, avail.Employees, "the only employee has a shift")

	w = e.do(http.MethodGet, "/api/v1/scheduling/days/"+day, staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeAs[schedulingapp.DayScheduleResponse](t, w).Data.Moves, 1)

	w = e.do(http.MethodPost, "/api/v1/quotes/"+id+"/cancel", staff, gin.H{"reason": "customer postponed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodGet, "/api/v1/quotes/"+id+"/trucks", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeAs[[]schedulingapp.TruckAssignmentResponse](t, w).Data, "cancel releases reserved trucks")
}

func TestRoutes_Pricing(t *testing.T) {
	e := newAPIEnv(t)
	admin := e.login(adminEmail, adminPassword)
	staff := e.login(staffEmail, staffPassword)

	w := e.do(http.MethodPost, "/api/v1/pricing/rules", admin, gin.H{
		"name":             "Every day surcharge",
		"recurrence":       "weekly",
		"days_of_week":     []int{0, 1, 2, 3, 4, 5, 6},
		"adjustment_type":  "percentage",
		"adjustment_value": "10",
		"priority":         1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/v1/pricing/rules", admin, gin.H{
		"name": "Bad days", "recurrence": "weekly", "days_of_week": []int{9}, "adjustment_type": "fixed",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/v1/pricing/preview?date=2026-07-04&base_price=100", staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	preview := decodeAs[pricingapp.AdjustmentResponse](t, w).Data
	assert.True(t, decimal.NewFromInt(110).Equal(preview.FinalPrice), preview.FinalPrice.String())

	w = e.do(http.MethodGet, "/api/v1/pricing/calendar?from=2026-07-01&to=2026-07-07", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeAs[pricingapp.CalendarResponse](t, w).Data.Days, 7)

	w = e.do(http.MethodGet, "/api/v1/pricing/calendar?from=2026-01-01&to=2026-12-31", staff, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "DATE_RANGE_TOO_LARGE", decodeAs[any](t, w).Error.Code)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "holidays.csv")
	require.NoError(t, err)
	_, _ = part.Write([]byte("name,date,recurring\nIndependence Day,2026-07-04,true\nDuplicate,07/04/2026,false\nBroken,not-a-date,false\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/holidays/import", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeAs[pricingapp.HolidayImportResult](t, rec).Data
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2, "one duplicate date and one bad date")

	w = e.do(http.MethodGet, "/api/v1/pricing/holidays", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeAs[[]pricingapp.HolidayResponse](t, w).Data, 1)
}

func TestRoutes_AdminDashboard(t *testing.T) {
	e := newAPIEnv(t)
	admin := e.login(adminEmail, adminPassword)
	submitQuote(t, e, "")

	w := e.do(http.MethodGet, "/api/v1/dashboards/admin", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dash := decodeAs[report.AdminDashboardResponse](t, w).Data
	assert.EqualValues(t, 1, dash.QuoteCounts["pending"])

	w = e.do(http.MethodGet, "/api/v1/dashboards/admin?from=2026-01-01&to=2028-01-01", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
