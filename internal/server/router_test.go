package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgettracker/internal/config"
	"budgettracker/internal/ledger"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/testutil"
	"budgettracker/internal/validator"
)

const adminKey = "test-admin-key"

// testApp holds the full application stack for router tests.
type testApp struct {
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		CacheDriver:       "memory",
		CacheSize:         16,
		ExportPath:        filepath.Join(t.TempDir(), "exports", "transactions.txt"),
		CurrencyLimitMode: "amount",
	}
}

func setupApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	caches, closer, err := NewCaches(cfg)
	if err != nil {
		t.Fatalf("failed to build caches: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })

	return &testApp{Router: NewRouter(NewServices(db, cfg, caches), adminKey)}
}

func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token.
func (app *testApp) registerUser(t *testing.T, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"username":"tester","password":"password123"}`, email)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

func (app *testApp) mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func decimalField(t *testing.T, obj map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	raw, ok := obj[key].(string)
	if !ok {
		t.Fatalf("expected %s to be a decimal string, got %v", key, obj[key])
	}
	return decimal.RequireFromString(raw)
}

func (app *testApp) wallet(t *testing.T, token string) map[string]interface{} {
	t.Helper()
	rec := app.request("GET", "/api/v1/wallet", "", token)
	app.mustStatus(t, rec, http.StatusOK)
	return parseJSON(t, rec)["wallet"].(map[string]interface{})
}

func TestHealth(t *testing.T) {
	app := setupApp(t, testConfig(t))

	rec := app.request("GET", "/api/health", "", "")

	app.mustStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["status"] != "ok" {
		t.Error("expected status ok")
	}
}

func TestAuthFlow(t *testing.T) {
	app := setupApp(t, testConfig(t))

	token := app.registerUser(t, "Flow@Example.com")

	t.Run("register creates a CZK wallet", func(t *testing.T) {
		w := app.wallet(t, token)
		if w["currency"] != string(models.CurrencyCZK) {
			t.Errorf("expected CZK, got %v", w["currency"])
		}
		if w["name"] != "testerWallet" {
			t.Errorf("expected name testerWallet, got %v", w["name"])
		}
		if !decimalField(t, w, "budget_limit").Equal(decimal.NewFromInt(100000)) {
			t.Errorf("expected limit 100000, got %v", w["budget_limit"])
		}
	})

	t.Run("login with normalised email", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/login", `{"email":"flow@example.com","password":"password123"}`, "")
		app.mustStatus(t, rec, http.StatusOK)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/auth/register",
			`{"email":"flow@example.com","username":"other","password":"password123"}`, "")
		app.mustStatus(t, rec, http.StatusConflict)
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/wallet", "", "")
		app.mustStatus(t, rec, http.StatusUnauthorized)
	})
}

func TestLedgerFlow(t *testing.T) {
	app := setupApp(t, testConfig(t))
	token := app.registerUser(t, "ledger@example.com")

	rec := app.request("POST", "/api/v1/categories", `{"name":"Salary"}`, token)
	app.mustStatus(t, rec, http.StatusCreated)
	categoryID := parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/transactions",
		`{"description":"Paycheck","money":"1000","category_id":"`+categoryID+`"}`, token)
	app.mustStatus(t, rec, http.StatusCreated)
	income := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if income["type"] != string(models.TransactionTypeIncome) {
		t.Errorf("expected INCOME, got %v", income["type"])
	}

	rec = app.request("POST", "/api/v1/transactions", `{"description":"Groceries","money":"-300"}`, token)
	app.mustStatus(t, rec, http.StatusCreated)
	expense := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if expense["type"] != string(models.TransactionTypeExpense) {
		t.Errorf("expected EXPENSE, got %v", expense["type"])
	}

	t.Run("balance follows transactions", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/wallet/balance", "", token)
		app.mustStatus(t, rec, http.StatusOK)
		if got := decimalField(t, parseJSON(t, rec), "balance"); !got.Equal(decimal.NewFromInt(700)) {
			t.Errorf("expected balance 700, got %s", got)
		}
	})

	t.Run("progress agrees with balance", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/wallet/progress", "", token)
		app.mustStatus(t, rec, http.StatusOK)
		p := parseJSON(t, rec)
		if !decimalField(t, p, "total_income").Equal(decimal.NewFromInt(1000)) ||
			!decimalField(t, p, "total_expenses").Equal(decimal.NewFromInt(300)) ||
			!decimalField(t, p, "balance").Equal(decimal.NewFromInt(700)) {
			t.Errorf("unexpected progress %v", p)
		}
	})

	t.Run("weekly statistics", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/statistics?interval=WEEKLY", "", token)
		app.mustStatus(t, rec, http.StatusOK)
		totals := parseJSON(t, rec)["totals"].(map[string]interface{})
		if !decimalField(t, totals, "Net Income").Equal(decimal.NewFromInt(700)) {
			t.Errorf("expected net 700, got %v", totals["Net Income"])
		}
	})

	t.Run("search by category", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/transactions?category_id="+categoryID, "", token)
		app.mustStatus(t, rec, http.StatusOK)
		if txs := parseJSON(t, rec)["transactions"].([]interface{}); len(txs) != 1 {
			t.Errorf("expected 1 transaction, got %d", len(txs))
		}
	})

	t.Run("paginated wallet transactions", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/wallet/transactions?page=1&page_size=1", "", token)
		app.mustStatus(t, rec, http.StatusOK)
		page := parseJSON(t, rec)
		if page["total_items"] != float64(2) || page["total_pages"] != float64(2) {
			t.Errorf("unexpected page metadata %v", page)
		}
	})

	t.Run("edit leaves the balance alone", func(t *testing.T) {
		rec := app.request("PUT", "/api/v1/transactions/"+expense["id"].(string),
			`{"description":"Big groceries","money":"-500"}`, token)
		app.mustStatus(t, rec, http.StatusOK)

		if got := decimalField(t, app.wallet(t, token), "amount"); !got.Equal(decimal.NewFromInt(700)) {
			t.Errorf("expected amount to stay 700, got %s", got)
		}
	})

	t.Run("delete leaves the balance alone", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/transactions/"+expense["id"].(string), "", token)
		app.mustStatus(t, rec, http.StatusNoContent)

		rec = app.request("GET", "/api/v1/transactions/"+expense["id"].(string), "", token)
		app.mustStatus(t, rec, http.StatusNotFound)

		if got := decimalField(t, app.wallet(t, token), "amount"); !got.Equal(decimal.NewFromInt(700)) {
			t.Errorf("expected amount to stay 700, got %s", got)
		}
	})

	t.Run("deleting the category keeps its transactions", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/categories/"+categoryID, "", token)
		app.mustStatus(t, rec, http.StatusNoContent)

		rec = app.request("GET", "/api/v1/transactions/"+income["id"].(string), "", token)
		app.mustStatus(t, rec, http.StatusOK)

		rec = app.request("POST", "/api/v1/categories", `{"name":"Salary"}`, token)
		app.mustStatus(t, rec, http.StatusCreated)
	})
}

func TestReconcileOnEdit(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReconcileOnEdit = true
	app := setupApp(t, cfg)
	token := app.registerUser(t, "reconcile@example.com")

	rec := app.request("POST", "/api/v1/transactions", `{"description":"Lunch","money":"-100"}`, token)
	app.mustStatus(t, rec, http.StatusCreated)
	id := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	rec = app.request("PUT", "/api/v1/transactions/"+id, `{"description":"Lunch","money":"-250"}`, token)
	app.mustStatus(t, rec, http.StatusOK)

	if got := decimalField(t, app.wallet(t, token), "amount"); !got.Equal(decimal.NewFromInt(-250)) {
		t.Errorf("expected amount -250, got %s", got)
	}
}

func TestEditFlipsClassification(t *testing.T) {
	app := setupApp(t, testConfig(t))
	token := app.registerUser(t, "flip@example.com")

	rec := app.request("POST", "/api/v1/transactions", `{"description":"Gift","money":"100"}`, token)
	app.mustStatus(t, rec, http.StatusCreated)
	id := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	rec = app.request("PUT", "/api/v1/transactions/"+id, `{"description":"Gift","money":"-500"}`, token)
	app.mustStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["transaction"].(map[string]interface{})["type"]; got != "EXPENSE" {
		t.Errorf("expected EXPENSE after sign flip, got %v", got)
	}

	rec = app.request("GET", "/api/v1/transactions/totals", "", token)
	app.mustStatus(t, rec, http.StatusOK)
	totals := parseJSON(t, rec)
	if got := decimalField(t, totals, "total_income"); !got.IsZero() {
		t.Errorf("expected income 0, got %s", got)
	}
	if got := decimalField(t, totals, "total_expenses"); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected expenses 500, got %s", got)
	}
}

func TestWalletFlow(t *testing.T) {
	app := setupApp(t, testConfig(t))
	token := app.registerUser(t, "wallet@example.com")

	rec := app.request("POST", "/api/v1/wallet/deposit", `{"amount":"500"}`, token)
	app.mustStatus(t, rec, http.StatusOK)

	t.Run("czk to eur", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/wallet/currency", `{"currency":"EUR"}`, token)
		app.mustStatus(t, rec, http.StatusOK)
		w := parseJSON(t, rec)["wallet"].(map[string]interface{})
		if w["currency"] != "EUR" {
			t.Errorf("expected EUR, got %v", w["currency"])
		}
		if !decimalField(t, w, "amount").Equal(decimal.NewFromInt(21)) {
			t.Errorf("expected amount 21, got %v", w["amount"])
		}
		if !decimalField(t, w, "budget_limit").Equal(decimal.NewFromInt(21)) {
			t.Errorf("expected limit 21, got %v", w["budget_limit"])
		}
	})

	t.Run("unsupported currency", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/wallet/currency", `{"currency":"JPY"}`, token)
		app.mustStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("goals", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/wallet/goals", `{"goal":"Bike","money_goal":"1500"}`, token)
		app.mustStatus(t, rec, http.StatusCreated)
		goalID := parseJSON(t, rec)["goal"].(map[string]interface{})["id"].(string)

		rec = app.request("GET", "/api/v1/wallet/goals", "", token)
		app.mustStatus(t, rec, http.StatusOK)
		if goals := parseJSON(t, rec)["goals"].([]interface{}); len(goals) != 1 {
			t.Fatalf("expected 1 goal, got %d", len(goals))
		}

		rec = app.request("DELETE", "/api/v1/wallet/goals/"+goalID, "", token)
		app.mustStatus(t, rec, http.StatusNoContent)

		rec = app.request("GET", "/api/v1/wallet/goals", "", token)
		if goals := parseJSON(t, rec)["goals"].([]interface{}); len(goals) != 0 {
			t.Errorf("expected no goals, got %d", len(goals))
		}
	})
}

func TestTransactionIsolation(t *testing.T) {
	app := setupApp(t, testConfig(t))
	alice := app.registerUser(t, "alice@example.com")
	bob := app.registerUser(t, "bob@example.com")

	rec := app.request("POST", "/api/v1/transactions", `{"description":"Rent","money":"-900"}`, alice)
	app.mustStatus(t, rec, http.StatusCreated)
	id := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	rec = app.request("GET", "/api/v1/transactions/"+id, "", bob)
	app.mustStatus(t, rec, http.StatusNotFound)

	rec = app.request("DELETE", "/api/v1/transactions/"+id, "", bob)
	app.mustStatus(t, rec, http.StatusNotFound)

	rec = app.request("GET", "/api/v1/transactions", "", bob)
	app.mustStatus(t, rec, http.StatusOK)
	if txs := parseJSON(t, rec)["transactions"].([]interface{}); len(txs) != 0 {
		t.Errorf("expected bob to see no transactions, got %d", len(txs))
	}
}

func TestAdminExport(t *testing.T) {
	app := setupApp(t, testConfig(t))
	token := app.registerUser(t, "export@example.com")

	rec := app.request("POST", "/api/v1/transactions",
		`{"description":"Coffee","money":"-3.5","date":"2024-03-15T08:30:00"}`, token)
	app.mustStatus(t, rec, http.StatusCreated)

	t.Run("requires the api key", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/admin/transactions/export", "", token)
		app.mustStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("streams the export", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/admin/transactions/export", nil)
		req.Header.Set("X-API-Key", adminKey)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		app.mustStatus(t, rec, http.StatusOK)
		body, _ := io.ReadAll(rec.Body)
		for _, want := range []string{"Date: 2024-03-15T08:30:00", "Description: Coffee", "Category: ", "Amount: -3.5"} {
			if !strings.Contains(string(body), want) {
				t.Errorf("expected export to contain %q, got:\n%s", want, body)
			}
		}
	})
}

func TestNewCaches(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CacheDriver = "memcached"
		if _, _, err := NewCaches(cfg); err == nil {
			t.Error("expected error for unknown driver")
		}
	})

	t.Run("none", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CacheDriver = "none"
		caches, closer, err := NewCaches(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer closer.Close()
		caches.Categories.Put("k", models.Category{Name: "x"})
		if _, ok := caches.Categories.Get("k"); ok {
			t.Error("noop cache must never hit")
		}
	})
}

func TestLedgerOptions(t *testing.T) {
	cfg := testConfig(t)
	if opts := LedgerOptions(cfg); opts.LimitMode != ledger.LimitFromAmount {
		t.Errorf("expected limit from amount, got %v", opts.LimitMode)
	}

	cfg.CurrencyLimitMode = "limit"
	cfg.ApplyStatisticsInterval = true
	opts := LedgerOptions(cfg)
	if opts.LimitMode != ledger.LimitFromLimit {
		t.Errorf("expected limit from limit, got %v", opts.LimitMode)
	}
	if !opts.ApplyStatisticsInterval {
		t.Error("expected statistics interval to be applied")
	}
}
