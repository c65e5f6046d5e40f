package accounts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
)

// Directory holds account metadata and the baseline balance/unrealized maps,
// loaded once at startup. Lookups are by lowercase account key.
type Directory struct {
	accounts   map[string]models.Account
	order      []string
	balances   map[string]float64
	unrealized map[string]float64
}

// Load reads the accounts file plus optional baseline files. Empty baseline
// paths are allowed; the maps then default to zero per account.
func Load(accountsPath, balancePath, unrealizedPath string) (*Directory, error) {
	var list []models.Account
	if err := readJSON(accountsPath, &list); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	d := &Directory{
		accounts:   make(map[string]models.Account, len(list)),
		balances:   make(map[string]float64),
		unrealized: make(map[string]float64),
	}
	for _, a := range list {
		key := a.Key()
		if _, dup := d.accounts[key]; dup {
			return nil, fmt.Errorf("load accounts: duplicate account %q", key)
		}
		d.accounts[key] = a
		d.order = append(d.order, key)
	}

	if balancePath != "" {
		if err := readJSON(balancePath, &d.balances); err != nil {
			return nil, fmt.Errorf("load balance baselines: %w", err)
		}
		d.balances = lowerKeys(d.balances)
	}
	if unrealizedPath != "" {
		if err := readJSON(unrealizedPath, &d.unrealized); err != nil {
			return nil, fmt.Errorf("load unrealized baselines: %w", err)
		}
		d.unrealized = lowerKeys(d.unrealized)
	}
	return d, nil
}

func readJSON(path string, dest interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

func lowerKeys(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Lookup resolves one account by case-insensitive key.
func (d *Directory) Lookup(name string) (models.Account, bool) {
	a, ok := d.accounts[strings.ToLower(name)]
	return a, ok
}

// List returns all accounts in file order, optionally only monitored ones.
func (d *Directory) List(monitoredOnly bool) []models.Account {
	out := make([]models.Account, 0, len(d.order))
	for _, key := range d.order {
		a := d.accounts[key]
		if monitoredOnly && !a.Monitored {
			continue
		}
		out = append(out, a)
	}
	return out
}

// BaselineBalance returns the baseline equity for an account, zero when absent.
func (d *Directory) BaselineBalance(name string) float64 {
	return d.balances[strings.ToLower(name)]
}

// UnrealizedBaseline returns the constant margin-series offset for an
// account, zero when absent.
func (d *Directory) UnrealizedBaseline(name string) float64 {
	return d.unrealized[strings.ToLower(name)]
}

// Strategies partitions the given account keys by strategy group. Accounts
// without metadata land under the empty strategy and are dropped.
func (d *Directory) Strategies(names []string) map[string][]string {
	out := make(map[string][]string)
	for _, name := range names {
		a, ok := d.Lookup(name)
		if !ok || a.Strategy == "" {
			continue
		}
		out[a.Strategy] = append(out[a.Strategy], strings.ToLower(name))
	}
	return out
}

// RedisKey maps an account to its snapshot-store name, falling back to the
// account key itself when no metadata exists.
func (d *Directory) RedisKey(name string) string {
	if a, ok := d.Lookup(name); ok && a.RedisName != "" {
		return strings.ToLower(a.RedisName)
	}
	return strings.ToLower(name)
}

// DBName maps an account to its ledger-store name, falling back to the
// account key itself.
func (d *Directory) DBName(name string) string {
	if a, ok := d.Lookup(name); ok && a.DBName != "" {
		return strings.ToLower(a.DBName)
	}
	return strings.ToLower(name)
}
