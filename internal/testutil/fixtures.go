package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgettracker/internal/models"

	"github.com/bxcodec/faker/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Username: faker.Username(),
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWallet creates a CZK wallet with zero balance for userID.
func CreateTestWallet(t *testing.T, db *gorm.DB, userID string) *models.Wallet {
	t.Helper()
	return CreateTestWalletWithAmount(t, db, userID, "0", models.CurrencyCZK)
}

// CreateTestWalletWithAmount creates a wallet holding amount in currency.
func CreateTestWalletWithAmount(t *testing.T, db *gorm.DB, userID, amount string, currency models.Currency) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{
		UserID:      userID,
		Name:        fmt.Sprintf("Test Wallet %d", nextID()),
		Amount:      decimal.RequireFromString(amount),
		Currency:    currency,
		BudgetLimit: decimal.NewFromInt(100000),
	}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return wallet
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("%s %d", faker.Word(), nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction stores a transaction with the given signed money.
// The wallet balance is not touched.
func CreateTestTransaction(t *testing.T, db *gorm.DB, walletID, money string, date time.Time) *models.Transaction {
	t.Helper()

	m := decimal.RequireFromString(money)
	txType := models.TransactionTypeIncome
	if m.IsNegative() {
		txType = models.TransactionTypeExpense
	}

	tx := &models.Transaction{
		WalletID:    walletID,
		Description: faker.Sentence(),
		Date:        date,
		Money:       m,
		Type:        txType,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal attaches a goal with the given target to walletID.
func CreateTestGoal(t *testing.T, db *gorm.DB, walletID, target string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		WalletID:  &walletID,
		Goal:      fmt.Sprintf("Goal %d", nextID()),
		MoneyGoal: decimal.RequireFromString(target),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
