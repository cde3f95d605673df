package services

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/config"
	"food-ordering-api/logger"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	authn    *auth.Authenticator
	audit    *AuditLog
	orders   *OrderService
	feedback *FeedbackService
	accounts *AccountService
	catalog  *CatalogService
	dash     *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := config.OpenDB(&config.Config{
		DBDriver: "sqlite",
		DBSource: filepath.Join(t.TempDir(), "services.db"),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	log := logger.New("test", "error", io.Discard)

	orderRepo := repository.NewOrderRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)
	audit := NewAuditLog(repository.NewAdminLogRepository(db), log)
	authn := auth.NewAuthenticator("services-secret", time.Hour, auth.NewMemoryRevoker())

	accounts := NewAccountService(db, userRepo, restRepo, authn, audit)
	accounts.hashCost = bcrypt.MinCost

	env := &testEnv{
		db:       db,
		authn:    authn,
		audit:    audit,
		orders:   NewOrderService(db, orderRepo, restRepo, audit, true),
		feedback: NewFeedbackService(repository.NewFeedbackRepository(db), orderRepo, restRepo, config.FeedbackPolicyReject),
		accounts: accounts,
		catalog:  NewCatalogService(restRepo),
		dash:     NewDashboardService(orderRepo),
	}
	t.Cleanup(audit.Wait)
	return env
}

// signupCustomer creates a customer and returns its principal.
func (e *testEnv) signupCustomer(t *testing.T, email string) *auth.Principal {
	t.Helper()
	u, err := e.accounts.Signup(context.Background(), SignupInput{
		Name: "Customer " + email, Email: email, Password: "Passw0rd!", Role: "customer",
	})
	if err != nil {
		t.Fatalf("signup customer: %v", err)
	}
	return &auth.Principal{ID: u.ID, Email: u.Email, Role: models.RoleCustomer}
}

// signupRestaurant creates a restaurant and returns the principal its login yields.
func (e *testEnv) signupRestaurant(t *testing.T, email string) *auth.Principal {
	t.Helper()
	ctx := context.Background()
	_, err := e.accounts.Signup(ctx, SignupInput{
		Name: "Kitchen " + email, Email: email, Password: "Passw0rd!", Role: "restaurant", Cuisine: "Italian",
	})
	if err != nil {
		t.Fatalf("signup restaurant: %v", err)
	}
	sess, err := e.accounts.Login(ctx, LoginInput{Email: email, Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("login restaurant: %v", err)
	}
	p := sess.Principal
	return &p
}

func (e *testEnv) addDish(t *testing.T, rest *auth.Principal, price string) *models.Dish {
	t.Helper()
	d, err := e.catalog.AddDish(context.Background(), rest, DishInput{
		Name: "Margherita", Price: decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("add dish: %v", err)
	}
	return d
}

func superAdmin() *auth.Principal {
	return &auth.Principal{ID: 1, Email: "root@example.com", Role: models.RoleSuperAdmin}
}

func countAdminLogs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.AdminLog{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}
