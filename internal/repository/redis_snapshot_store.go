package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	pkgcache "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/cache"
	applogger "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/logger"
)

// RedisSnapshotStore implements SnapshotStore over the live keys maintained
// by the external position monitor: "<account>_live" holds a JSON array of
// open positions, "<account>_balance" holds the wallet components. Missing or
// malformed per-account data degrades to zero, never fails the whole call.
type RedisSnapshotStore struct {
	cache *pkgcache.RedisCache
	l     *applogger.Logger
	// keyFor maps an account to its snapshot-store name.
	keyFor func(account string) string
}

func NewRedisSnapshotStore(cache *pkgcache.RedisCache, keyFor func(string) string) *RedisSnapshotStore {
	if keyFor == nil {
		keyFor = func(a string) string { return a }
	}
	return &RedisSnapshotStore{cache: cache, keyFor: keyFor}
}

// SetLogger injects a structured logger.
func (s *RedisSnapshotStore) SetLogger(l *applogger.Logger) { s.l = l }

// position is the slice of the monitor's live-position JSON we care about.
// Upstream serializes numbers as strings, so the field tolerates both.
type position struct {
	UnrealizedProfit flexFloat `json:"unrealizedProfit"`
}

// flexFloat decodes a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 1 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func (s *RedisSnapshotStore) FetchUnrealized(ctx context.Context, accounts []string) (map[string]float64, error) {
	keys := make([]string, len(accounts))
	for i, acct := range accounts {
		keys[i] = s.keyFor(acct) + "_live"
	}
	raw, err := s.cache.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("fetch unrealized: %w", err)
	}

	out := make(map[string]float64, len(accounts)+1)
	var total float64
	for i, acct := range accounts {
		out[acct] = 0.0
		payload, ok := raw[keys[i]]
		if !ok {
			continue
		}
		var positions []position
		if err := json.Unmarshal([]byte(payload), &positions); err != nil {
			if s.l != nil {
				s.l.Warn("redis live payload malformed",
					applogger.String("account", acct),
					applogger.Error(err),
				)
			}
			continue
		}
		var sum float64
		for _, p := range positions {
			sum += float64(p.UnrealizedProfit)
		}
		out[acct] = sum
		total += sum
	}
	out["total"] = total
	return out, nil
}

func (s *RedisSnapshotStore) FetchWalletBalances(ctx context.Context, accounts []string) (map[string]models.WalletBalance, error) {
	keys := make([]string, len(accounts))
	for i, acct := range accounts {
		keys[i] = s.keyFor(acct) + "_balance"
	}
	raw, err := s.cache.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("fetch wallet balances: %w", err)
	}

	out := make(map[string]models.WalletBalance, len(accounts))
	for i, acct := range accounts {
		var wb models.WalletBalance
		if payload, ok := raw[keys[i]]; ok {
			if err := json.Unmarshal([]byte(payload), &wb); err != nil {
				if s.l != nil {
					s.l.Warn("redis balance payload malformed",
						applogger.String("account", acct),
						applogger.Error(err),
					)
				}
				wb = models.WalletBalance{}
			}
		}
		out[acct] = wb
	}
	return out, nil
}
