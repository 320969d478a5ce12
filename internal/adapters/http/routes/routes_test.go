package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fundtrack/internal/adapters/persistence/models"
	"fundtrack/internal/config"
	"fundtrack/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenMins: 60,
		},
	}
	config.AppConfig = cfg

	hashed, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	accountant := &models.User{
		Email:    "accountant@test.com",
		Name:     "Accountant",
		Password: hashed,
		Role:     models.RoleAccountant,
	}
	if err := db.Create(accountant).Error; err != nil {
		t.Fatalf("Failed to seed accountant: %v", err)
	}

	app := fiber.New()
	Setup(app, db, cfg)
	return app, db
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, *apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("%s %s returned unparseable body: %v", method, path, err)
	}
	return resp.StatusCode, &parsed
}

func login(t *testing.T, app *fiber.App, email, pass, role string) string {
	t.Helper()

	status, resp := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    email,
		"password": pass,
		"role":     role,
	})
	if status != http.StatusOK {
		t.Fatalf("Login failed with status %d: %s", status, resp.Error)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("Failed to parse login data: %v", err)
	}
	if data.Token == "" {
		t.Fatal("Login returned no token")
	}
	return data.Token
}

func TestPaymentWorkflow(t *testing.T) {
	app, _ := setupTestApp(t)

	accToken := login(t, app, "accountant@test.com", "password123", models.RoleAccountant)

	// Accountant provisions a member
	status, resp := doJSON(t, app, http.MethodPost, "/accountant/members", accToken, fiber.Map{
		"name":          "Karim",
		"email":         "karim@test.com",
		"monthlyAmount": 1000,
		"password":      "secret123",
	})
	if status != http.StatusCreated {
		t.Fatalf("Create member failed with status %d: %s", status, resp.Error)
	}

	memberToken := login(t, app, "karim@test.com", "secret123", models.RoleMember)

	// Member submits a claim
	status, resp = doJSON(t, app, http.MethodPost, "/member/payments", memberToken, fiber.Map{
		"amount":        1000,
		"paymentMethod": "BKASH",
		"transactionId": "TXN123",
	})
	if status != http.StatusCreated {
		t.Fatalf("Submit payment failed with status %d: %s", status, resp.Error)
	}

	var submitData struct {
		Payment struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"payment"`
	}
	if err := json.Unmarshal(resp.Data, &submitData); err != nil {
		t.Fatalf("Failed to parse payment data: %v", err)
	}
	if submitData.Payment.Status != models.PaymentStatusPending {
		t.Errorf("Status mismatch: got %s, want %s", submitData.Payment.Status, models.PaymentStatusPending)
	}
	paymentID := submitData.Payment.ID

	// Accountant sees it in the queue
	status, resp = doJSON(t, app, http.MethodGet, "/accountant/payments", accToken, nil)
	if status != http.StatusOK {
		t.Fatalf("List payments failed with status %d: %s", status, resp.Error)
	}

	// Approve it
	status, resp = doJSON(t, app, http.MethodPatch, "/accountant/payments/"+paymentID, accToken, fiber.Map{
		"action": "APPROVE",
	})
	if status != http.StatusOK {
		t.Fatalf("Verify failed with status %d: %s", status, resp.Error)
	}

	// A second decision must bounce
	status, resp = doJSON(t, app, http.MethodPatch, "/accountant/payments/"+paymentID, accToken, fiber.Map{
		"action": "REJECT",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("Second verify: got status %d, want 400 (%s)", status, resp.Error)
	}

	// Member profile reflects the reconciled balances
	status, resp = doJSON(t, app, http.MethodGet, "/member/profile", memberToken, nil)
	if status != http.StatusOK {
		t.Fatalf("Get profile failed with status %d: %s", status, resp.Error)
	}

	var profileData struct {
		Member struct {
			TotalPaid decimal.Decimal `json:"totalPaid"`
			TotalDue  decimal.Decimal `json:"totalDue"`
		} `json:"member"`
	}
	if err := json.Unmarshal(resp.Data, &profileData); err != nil {
		t.Fatalf("Failed to parse profile data: %v", err)
	}
	if !profileData.Member.TotalPaid.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("TotalPaid mismatch: got %s, want 1000", profileData.Member.TotalPaid)
	}
	if !profileData.Member.TotalDue.IsZero() {
		t.Errorf("TotalDue mismatch: got %s, want 0", profileData.Member.TotalDue)
	}
}

func TestAuthorization(t *testing.T) {
	app, _ := setupTestApp(t)

	accToken := login(t, app, "accountant@test.com", "password123", models.RoleAccountant)

	status, _ := doJSON(t, app, http.MethodPost, "/accountant/members", accToken, fiber.Map{
		"name":          "Salma",
		"email":         "salma@test.com",
		"monthlyAmount": 1200,
		"password":      "secret123",
	})
	if status != http.StatusCreated {
		t.Fatalf("Create member failed with status %d", status)
	}
	memberToken := login(t, app, "salma@test.com", "secret123", models.RoleMember)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token on accountant surface", http.MethodGet, "/accountant/members", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/accountant/members", "garbage", http.StatusUnauthorized},
		{"member on accountant surface", http.MethodGet, "/accountant/members", memberToken, http.StatusUnauthorized},
		{"accountant on member surface", http.MethodGet, "/member/profile", accToken, http.StatusUnauthorized},
		{"accountant surface with accountant", http.MethodGet, "/accountant/members", accToken, http.StatusOK},
		{"member surface with member", http.MethodGet, "/member/payments", memberToken, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := doJSON(t, app, tc.method, tc.path, tc.token, nil)
			if status != tc.want {
				t.Errorf("Status mismatch: got %d, want %d (%s)", status, tc.want, resp.Error)
			}
		})
	}
}

func TestMemberManagement(t *testing.T) {
	app, _ := setupTestApp(t)

	accToken := login(t, app, "accountant@test.com", "password123", models.RoleAccountant)

	create := func(name, email string) (int, *apiResponse) {
		return doJSON(t, app, http.MethodPost, "/accountant/members", accToken, fiber.Map{
			"name":          name,
			"email":         email,
			"monthlyAmount": 1000,
		})
	}

	status, resp := create("Karim", "karim@test.com")
	if status != http.StatusCreated {
		t.Fatalf("Create member failed with status %d: %s", status, resp.Error)
	}

	var createData struct {
		Member struct {
			ID string `json:"id"`
		} `json:"member"`
		TempPassword string `json:"tempPassword"`
	}
	if err := json.Unmarshal(resp.Data, &createData); err != nil {
		t.Fatalf("Failed to parse create data: %v", err)
	}
	if createData.TempPassword == "" {
		t.Error("Expected a temp password when none was supplied")
	}

	t.Run("duplicate email returns 400", func(t *testing.T) {
		status, _ := create("Karim Again", "karim@test.com")
		if status != http.StatusBadRequest {
			t.Errorf("Status mismatch: got %d, want 400", status)
		}
	})

	t.Run("delete removes the member", func(t *testing.T) {
		status, resp := doJSON(t, app, http.MethodDelete, "/accountant/members/"+createData.Member.ID, accToken, nil)
		if status != http.StatusOK {
			t.Fatalf("Delete failed with status %d: %s", status, resp.Error)
		}
	})

	t.Run("delete of missing member returns 404", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, "/accountant/members/"+createData.Member.ID, accToken, nil)
		if status != http.StatusNotFound {
			t.Errorf("Status mismatch: got %d, want 404", status)
		}
	})

	t.Run("wrong credentials return 401", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
			"email":    "accountant@test.com",
			"password": "wrong",
			"role":     models.RoleAccountant,
		})
		if status != http.StatusUnauthorized {
			t.Errorf("Status mismatch: got %d, want 401", status)
		}
	})
}
