package services

import (
	"testing"
	"time"

	"budgettracker/internal/ledger"
	"budgettracker/internal/models"
	"budgettracker/internal/pagination"
	"budgettracker/internal/testutil"
)

func TestCreateWallet(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		user := testutil.CreateTestUser(t, f.db)

		wallet, err := f.wallets.CreateWallet("Alice", user)
		testutil.AssertNoError(t, err)

		if wallet.ID == "" {
			t.Fatal("expected wallet ID")
		}
		if wallet.Name != "AliceWallet" {
			t.Errorf("expected name AliceWallet, got %s", wallet.Name)
		}
		if wallet.Currency != models.CurrencyCZK {
			t.Errorf("expected CZK, got %s", wallet.Currency)
		}
		testutil.AssertDecimal(t, wallet.Amount, "0")
		testutil.AssertDecimal(t, wallet.BudgetLimit, "100000")

		stored := f.reloadWallet(t, wallet.ID)
		if stored.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, stored.UserID)
		}
	})

	t.Run("empty_name_is_accepted", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		user := testutil.CreateTestUser(t, f.db)

		wallet, err := f.wallets.CreateWallet("", user)
		testutil.AssertNoError(t, err)
		if wallet.Name != "Wallet" {
			t.Errorf("expected name Wallet, got %s", wallet.Name)
		}
	})

	t.Run("nil_owner", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})

		_, err := f.wallets.CreateWallet("Alice", nil)
		testutil.AssertAppError(t, err, "NULL_ARGUMENT")
	})
}

func TestAddMoney(t *testing.T) {
	t.Run("deposit_and_withdraw_restore_balance", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		_, err := f.wallets.AddMoney(wallet, dec("123.45"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, f.reloadWallet(t, wallet.ID).Amount, "123.45")

		_, err = f.wallets.AddMoney(wallet, dec("-123.45"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, f.reloadWallet(t, wallet.ID).Amount, "0")
	})

	t.Run("may_go_negative", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		_, err := f.wallets.AddMoney(wallet, dec("-50"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, f.reloadWallet(t, wallet.ID).Amount, "-50")
	})

	t.Run("nil_wallet", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})

		_, err := f.wallets.AddMoney(nil, dec("10"))
		testutil.AssertAppError(t, err, "NULL_ARGUMENT")
	})
}

func TestWalletUnchangedOnFailedSave(t *testing.T) {
	f := newFixture(t, LedgerOptions{})
	wallet := f.newWalletFor(t)
	sqlDB, err := f.db.DB()
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, sqlDB.Close())

	_, err = f.wallets.AddMoney(wallet, dec("500"))
	testutil.AssertKind(t, err, "PersistenceFailure")
	testutil.AssertDecimal(t, wallet.Amount, "0")

	_, err = f.wallets.ChangeCurrency(models.CurrencyEUR, wallet)
	testutil.AssertKind(t, err, "PersistenceFailure")
	if wallet.Currency != models.CurrencyCZK {
		t.Errorf("expected CZK to be kept, got %s", wallet.Currency)
	}
}

func TestChangeCurrency(t *testing.T) {
	t.Run("czk_to_eur_after_deposit", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		_, err := f.wallets.AddMoney(wallet, dec("500"))
		testutil.AssertNoError(t, err)

		_, err = f.wallets.ChangeCurrency(models.CurrencyEUR, wallet)
		testutil.AssertNoError(t, err)

		stored := f.reloadWallet(t, wallet.ID)
		if stored.Currency != models.CurrencyEUR {
			t.Errorf("expected EUR, got %s", stored.Currency)
		}
		testutil.AssertDecimal(t, stored.Amount, "21")
		testutil.AssertDecimal(t, stored.BudgetLimit, "21")
	})

	t.Run("limit_mode_converts_limit", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{LimitMode: ledger.LimitFromLimit})
		wallet := f.newWalletFor(t)

		_, err := f.wallets.AddMoney(wallet, dec("500"))
		testutil.AssertNoError(t, err)
		_, err = f.wallets.ChangeCurrency(models.CurrencyEUR, wallet)
		testutil.AssertNoError(t, err)

		stored := f.reloadWallet(t, wallet.ID)
		testutil.AssertDecimal(t, stored.Amount, "21")
		testutil.AssertDecimal(t, stored.BudgetLimit, "4200")
	})

	t.Run("round_trip_drifts", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		user := testutil.CreateTestUser(t, f.db)
		wallet := testutil.CreateTestWalletWithAmount(t, f.db, user.ID, "100", models.CurrencyEUR)

		_, err := f.wallets.ChangeCurrency(models.CurrencyCZK, wallet)
		testutil.AssertNoError(t, err)
		_, err = f.wallets.ChangeCurrency(models.CurrencyEUR, wallet)
		testutil.AssertNoError(t, err)

		stored := f.reloadWallet(t, wallet.ID)
		if stored.Amount.Equal(dec("100")) {
			t.Error("expected EUR->CZK->EUR to change the amount")
		}
	})

	t.Run("same_currency_is_noop", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		user := testutil.CreateTestUser(t, f.db)
		wallet := testutil.CreateTestWalletWithAmount(t, f.db, user.ID, "500", models.CurrencyCZK)

		_, err := f.wallets.ChangeCurrency(models.CurrencyCZK, wallet)
		testutil.AssertNoError(t, err)

		stored := f.reloadWallet(t, wallet.ID)
		testutil.AssertDecimal(t, stored.Amount, "500")
		testutil.AssertDecimal(t, stored.BudgetLimit, "100000")
	})

	t.Run("unsupported_currency", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		_, err := f.wallets.ChangeCurrency(models.Currency("GBP"), wallet)
		testutil.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
	})

	t.Run("nil_wallet", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})

		_, err := f.wallets.ChangeCurrency(models.CurrencyEUR, nil)
		testutil.AssertAppError(t, err, "NULL_ARGUMENT")
	})
}

func TestCalculateBudgetProgress(t *testing.T) {
	t.Run("from_transactions_not_stored_amount", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		user := testutil.CreateTestUser(t, f.db)
		wallet := testutil.CreateTestWalletWithAmount(t, f.db, user.ID, "9999", models.CurrencyCZK)
		testutil.CreateTestTransaction(t, f.db, wallet.ID, "1000", time.Now())
		testutil.CreateTestTransaction(t, f.db, wallet.ID, "250.5", time.Now())
		testutil.CreateTestTransaction(t, f.db, wallet.ID, "-300", time.Now())

		progress, err := f.wallets.CalculateBudgetProgress(wallet.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, progress.TotalIncome, "1250.5")
		testutil.AssertDecimal(t, progress.TotalExpenses, "300")
		testutil.AssertDecimal(t, progress.Balance, "950.5")
	})

	t.Run("other_wallets_ignored", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		mine := f.newWalletFor(t)
		other := f.newWalletFor(t)
		testutil.CreateTestTransaction(t, f.db, mine.ID, "10", time.Now())
		testutil.CreateTestTransaction(t, f.db, other.ID, "1000", time.Now())

		progress, err := f.wallets.CalculateBudgetProgress(mine.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, progress.TotalIncome, "10")
	})

	t.Run("unknown_wallet", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})

		_, err := f.wallets.CalculateBudgetProgress("0190a5f2-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")
	})
}

func TestGetTotalBalance(t *testing.T) {
	f := newFixture(t, LedgerOptions{})
	user := testutil.CreateTestUser(t, f.db)
	wallet := testutil.CreateTestWalletWithAmount(t, f.db, user.ID, "42.42", models.CurrencyUSD)

	balance, err := f.wallets.GetTotalBalance(wallet.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, balance, "42.42")
}

func TestGetWalletLookups(t *testing.T) {
	f := newFixture(t, LedgerOptions{})
	user := testutil.CreateTestUserWithEmail(t, f.db, "owner@example.com")
	wallet := testutil.CreateTestWallet(t, f.db, user.ID)

	t.Run("by_user_id", func(t *testing.T) {
		got, err := f.wallets.GetWalletByUserID(user.ID)
		testutil.AssertNoError(t, err)
		if got.ID != wallet.ID {
			t.Errorf("expected wallet %s, got %s", wallet.ID, got.ID)
		}
	})

	t.Run("by_user_email_case_insensitive", func(t *testing.T) {
		got, err := f.wallets.GetWalletByUserEmail("Owner@Example.com")
		testutil.AssertNoError(t, err)
		if got.ID != wallet.ID {
			t.Errorf("expected wallet %s, got %s", wallet.ID, got.ID)
		}
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := f.wallets.GetWalletByUserEmail("nobody@example.com")
		testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")
	})

	t.Run("empty_id", func(t *testing.T) {
		_, err := f.wallets.GetWalletByID("")
		testutil.AssertAppError(t, err, "NULL_ARGUMENT")
	})
}

func TestUpdateWallet(t *testing.T) {
	t.Run("name_and_limit", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		_, err := f.wallets.UpdateWallet(wallet.ID, "Holiday", ptr(dec("2500")))
		testutil.AssertNoError(t, err)

		stored := f.reloadWallet(t, wallet.ID)
		if stored.Name != "Holiday" {
			t.Errorf("expected name Holiday, got %s", stored.Name)
		}
		testutil.AssertDecimal(t, stored.BudgetLimit, "2500")
	})

	t.Run("empty_name_keeps_current", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		updated, err := f.wallets.UpdateWallet(wallet.ID, "", nil)
		testutil.AssertNoError(t, err)
		if updated.Name != wallet.Name {
			t.Errorf("expected name %s, got %s", wallet.Name, updated.Name)
		}
	})

	t.Run("negative_limit", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		_, err := f.wallets.UpdateWallet(wallet.ID, "", ptr(dec("-1")))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetTransactionsPage(t *testing.T) {
	f := newFixture(t, LedgerOptions{})
	wallet := f.newWalletFor(t)
	base := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		testutil.CreateTestTransaction(t, f.db, wallet.ID, "10", base.AddDate(0, 0, i))
	}

	page, err := f.wallets.GetTransactionsPage(wallet.ID, pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)

	if page.TotalItems != 5 {
		t.Errorf("expected 5 total items, got %d", page.TotalItems)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", page.TotalPages)
	}
	if len(page.Data) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Data))
	}
	if !page.Data[0].Date.After(page.Data[1].Date) {
		t.Error("expected newest transaction first")
	}

	oldest, err := f.wallets.GetTransactionsPage(wallet.ID, pagination.PageRequest{Page: 3, PageSize: 2, Order: pagination.Oldest})
	testutil.AssertNoError(t, err)
	if len(oldest.Data) != 1 || !oldest.Data[0].Date.Equal(base.AddDate(0, 0, 4)) {
		t.Errorf("expected the newest transaction alone on the last oldest-first page, got %+v", oldest.Data)
	}
	if oldest.HasMore {
		t.Error("expected last page to report no more")
	}

	all, err := f.wallets.GetTransactions(wallet.ID)
	testutil.AssertNoError(t, err)
	if len(all) != 5 {
		t.Errorf("expected 5 transactions, got %d", len(all))
	}
}

func TestGoals(t *testing.T) {
	t.Run("add_list_remove", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		goal, err := f.wallets.AddGoal(wallet.ID, "New bike", dec("15000"))
		testutil.AssertNoError(t, err)
		if goal.WalletID == nil || *goal.WalletID != wallet.ID {
			t.Fatalf("expected goal to reference wallet %s", wallet.ID)
		}

		goals, err := f.wallets.GetGoals(wallet.ID)
		testutil.AssertNoError(t, err)
		if len(goals) != 1 || goals[0].Goal != "New bike" {
			t.Fatalf("unexpected goals: %+v", goals)
		}
		testutil.AssertDecimal(t, goals[0].MoneyGoal, "15000")

		testutil.AssertNoError(t, f.wallets.RemoveGoal(wallet.ID, goal.ID))

		goals, err = f.wallets.GetGoals(wallet.ID)
		testutil.AssertNoError(t, err)
		if len(goals) != 0 {
			t.Errorf("expected no goals, got %d", len(goals))
		}
	})

	t.Run("empty_label", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		wallet := f.newWalletFor(t)

		_, err := f.wallets.AddGoal(wallet.ID, "", dec("1"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("remove_foreign_goal", func(t *testing.T) {
		f := newFixture(t, LedgerOptions{})
		mine := f.newWalletFor(t)
		other := f.newWalletFor(t)
		goal := testutil.CreateTestGoal(t, f.db, other.ID, "100")

		err := f.wallets.RemoveGoal(mine.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestDeleteWallet(t *testing.T) {
	f := newFixture(t, LedgerOptions{})
	wallet := f.newWalletFor(t)
	testutil.CreateTestGoal(t, f.db, wallet.ID, "100")
	testutil.CreateTestGoal(t, f.db, wallet.ID, "200")

	testutil.AssertNoError(t, f.wallets.DeleteWallet(wallet.ID))

	_, err := f.wallets.GetWalletByID(wallet.ID)
	testutil.AssertAppError(t, err, "WALLET_NOT_FOUND")

	goals, err := f.store.Goals.FindByWalletID(wallet.ID)
	testutil.AssertNoError(t, err)
	if len(goals) != 0 {
		t.Errorf("expected goals to be deleted, got %d", len(goals))
	}
}
