package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"budgettracker/internal/models"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func TestRedis(t *testing.T) {
	t.Run("round_trips_entities", func(t *testing.T) {
		_, client := setupRedis(t)
		c := NewRedis[models.Transaction](client, "transactions", time.Minute)

		in := models.Transaction{
			Base:        models.Base{ID: "tx-1"},
			WalletID:    "wallet-1",
			Description: "Salary",
			Money:       decimal.RequireFromString("1250.50"),
			Type:        models.TransactionTypeIncome,
		}
		c.Put(in.ID, in)

		out, ok := c.Get(in.ID)
		if !ok {
			t.Fatal("expected cache hit")
		}
		if out.Description != "Salary" || !out.Money.Equal(in.Money) || out.Type != in.Type {
			t.Errorf("unexpected cached value %+v", out)
		}
	})

	t.Run("prefixes_keys_and_sets_ttl", func(t *testing.T) {
		srv, client := setupRedis(t)
		c := NewRedis[string](client, "categories", time.Minute)
		c.Put("42", "food")

		if !srv.Exists("categories:42") {
			t.Fatal("expected prefixed key to exist")
		}
		if ttl := srv.TTL("categories:42"); ttl != time.Minute {
			t.Errorf("expected ttl 1m, got %v", ttl)
		}

		srv.FastForward(2 * time.Minute)
		if _, ok := c.Get("42"); ok {
			t.Error("expected miss after ttl")
		}
	})

	t.Run("evict", func(t *testing.T) {
		_, client := setupRedis(t)
		c := NewRedis[string](client, "categories", time.Minute)
		c.Put("1", "rent")
		c.Evict("1")

		if _, ok := c.Get("1"); ok {
			t.Error("expected miss after evict")
		}
	})

	t.Run("server_down_is_a_miss", func(t *testing.T) {
		srv, client := setupRedis(t)
		c := NewRedis[string](client, "categories", time.Minute)
		srv.Close()

		c.Put("1", "rent")
		if _, ok := c.Get("1"); ok {
			t.Error("expected miss when redis is unavailable")
		}
	})

	t.Run("garbage_is_a_miss", func(t *testing.T) {
		srv, client := setupRedis(t)
		c := NewRedis[models.Category](client, "categories", time.Minute)
		if err := srv.Set("categories:1", "{not json"); err != nil {
			t.Fatalf("seed: %v", err)
		}

		if _, ok := c.Get("1"); ok {
			t.Error("expected miss for undecodable value")
		}
	})
}
