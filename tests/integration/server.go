package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	billingapp "github.com/kitabayar/backend/internal/application/billing"
	dashboardapp "github.com/kitabayar/backend/internal/application/dashboard"
	identityapp "github.com/kitabayar/backend/internal/application/identity"
	paymentapp "github.com/kitabayar/backend/internal/application/payment"
	residentapp "github.com/kitabayar/backend/internal/application/resident"
	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/infrastructure/auth"
	"github.com/kitabayar/backend/internal/infrastructure/cache"
	"github.com/kitabayar/backend/internal/infrastructure/config"
	"github.com/kitabayar/backend/internal/infrastructure/persistence"
	"github.com/kitabayar/backend/internal/interfaces/http/handler"
	"github.com/kitabayar/backend/internal/interfaces/http/middleware"
	"github.com/kitabayar/backend/internal/interfaces/http/router"
	"github.com/kitabayar/backend/tests/testutil"
)

const testPassword = "Rahasia123!"

// TestServer is the full API over a real database
type TestServer struct {
	DB        *TestDB
	Engine    *gin.Engine
	Users     *identityapp.UserService
	Bills     *billingapp.BillService
	Payments  *paymentapp.Service
	Dashboard *dashboardapp.Service
}

// NewTestServer wires every service and route the way the server binary does
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.SetupValidator())

	tdb := NewTestDB(t)
	log := zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel))

	store := cache.NewMemoryStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	userRepo := persistence.NewGormUserRepository(tdb.DB)
	residentRepo := persistence.NewGormResidentRepository(tdb.DB)
	categoryRepo := persistence.NewGormCategoryRepository(tdb.DB)
	billTypeRepo := persistence.NewGormBillTypeRepository(tdb.DB)
	periodRepo := persistence.NewGormPeriodRepository(tdb.DB)
	billRepo := persistence.NewGormBillRepository(tdb.DB)
	paymentRepo := persistence.NewGormPaymentRepository(tdb.DB)
	tx := persistence.NewTxManager(tdb.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-secret-key-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "kitabayar-test",
		MaxRefreshCount:        5,
	})
	blacklist := auth.NewStoreBlacklist(store)

	users := identityapp.NewUserService(userRepo, log)
	residents := residentapp.NewService(residentRepo, userRepo, log)
	bills := billingapp.NewBillService(billRepo, billTypeRepo, periodRepo, residentRepo, paymentRepo, tx, log)
	payments := paymentapp.NewService(paymentRepo, billRepo, billTypeRepo, residentRepo, tx, log,
		paymentapp.WithStore(store),
		paymentapp.WithReceiptPrefix("KBR"),
	)
	dashboard := dashboardapp.NewService(residentRepo, billTypeRepo, periodRepo, billRepo, paymentRepo, log,
		dashboardapp.WithCache(store, time.Minute),
	)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.Mount(engine, router.Handlers{
		Auth:           handler.NewAuthHandler(identityapp.NewAuthService(userRepo, residentRepo, tx, jwtService, blacklist, log)),
		User:           handler.NewUserHandler(users),
		Resident:       handler.NewResidentHandler(residents, dashboard),
		LegacyResident: handler.NewLegacyResidentHandler(residents, dashboard),
		BillingConfig:  handler.NewBillingConfigHandler(billingapp.NewConfigService(categoryRepo, billTypeRepo, periodRepo, log)),
		Bill:           handler.NewBillHandler(bills, dashboard),
		Payment:        handler.NewPaymentHandler(payments, dashboard),
		Dashboard:      handler.NewDashboardHandler(dashboard),
		System:         handler.NewSystemHandler(tdb.Database, "test"),
	}, router.Config{
		JWT: middleware.JWTConfig{JWTService: jwtService, Blacklist: blacklist, Logger: log},
	})

	return &TestServer{
		DB:        tdb,
		Engine:    engine,
		Users:     users,
		Bills:     bills,
		Payments:  payments,
		Dashboard: dashboard,
	}
}

// Do sends a request through the engine
func (ts *TestServer) Do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var headers map[string]string
	if token != "" {
		headers = testutil.Bearer(token)
	}
	return testutil.Do(t, ts.Engine, method, path, body, headers)
}

// CreateUser adds an account with the shared test password
func (ts *TestServer) CreateUser(t *testing.T, email string, role identity.Role) {
	t.Helper()
	_, err := ts.Users.Create(context.Background(), identityapp.CreateUserInput{
		Email:    email,
		Password: testPassword,
		Role:     role,
	})
	require.NoError(t, err)
}

// Login returns an access token
func (ts *TestServer) Login(t *testing.T, login string) string {
	t.Helper()
	w := ts.Do(t, http.MethodPost, "/api/v1/auth/login", handler.LoginRequest{Login: login, Password: testPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return testutil.DecodeData[handler.LoginResponse](t, w).Token.AccessToken
}
