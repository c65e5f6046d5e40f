package accounts

import (
    "os"
    "path/filepath"
    "testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
    t.Helper()
    path := filepath.Join(dir, name)
    if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
        t.Fatalf("write %s: %v", name, err)
    }
    return path
}

func loadFixture(t *testing.T) *Directory {
    t.Helper()
    dir := t.TempDir()
    accounts := writeFile(t, dir, "accounts.json", `[
        {"binanceName": "Alpha", "redisName": "alpha_r", "dbName": "alpha_db", "strategy": "janus", "leverage": 3, "monitored": true},
        {"binanceName": "Beta", "redisName": "", "dbName": "", "strategy": "janus", "leverage": 2, "monitored": false},
        {"binanceName": "Gamma", "redisName": "gamma_r", "dbName": "gamma_db", "strategy": "vega", "leverage": 1, "monitored": true}
    ]`)
    balance := writeFile(t, dir, "balance.json", `{"Alpha": 1000.5, "beta": 2000}`)
    unreal := writeFile(t, dir, "unrealized.json", `{"alpha": -12.5}`)

    d, err := Load(accounts, balance, unreal)
    if err != nil {
        t.Fatalf("load: %v", err)
    }
    return d
}

func TestLookupCaseInsensitive(t *testing.T) {
    d := loadFixture(t)
    a, ok := d.Lookup("ALPHA")
    if !ok {
        t.Fatalf("expected ok")
    }
    if a.Strategy != "janus" || a.Leverage != 3 {
        t.Fatalf("unexpected account %+v", a)
    }
}

func TestListMonitored(t *testing.T) {
    d := loadFixture(t)
    all := d.List(false)
    if len(all) != 3 {
        t.Fatalf("expected 3 accounts, got %d", len(all))
    }
    mon := d.List(true)
    if len(mon) != 2 {
        t.Fatalf("expected 2 monitored accounts, got %d", len(mon))
    }
}

func TestBaselines(t *testing.T) {
    d := loadFixture(t)
    if got := d.BaselineBalance("alpha"); got != 1000.5 {
        t.Fatalf("unexpected baseline %v", got)
    }
    if got := d.UnrealizedBaseline("alpha"); got != -12.5 {
        t.Fatalf("unexpected unrealized baseline %v", got)
    }
    if got := d.UnrealizedBaseline("beta"); got != 0 {
        t.Fatalf("missing baseline must default to zero, got %v", got)
    }
}

func TestStrategiesPartition(t *testing.T) {
    d := loadFixture(t)
    groups := d.Strategies([]string{"alpha", "beta", "gamma", "unknown"})
    if len(groups["janus"]) != 2 || len(groups["vega"]) != 1 {
        t.Fatalf("unexpected partition %v", groups)
    }
}

func TestNameMappingFallbacks(t *testing.T) {
    d := loadFixture(t)
    if got := d.RedisKey("alpha"); got != "alpha_r" {
        t.Fatalf("unexpected redis key %q", got)
    }
    if got := d.RedisKey("beta"); got != "beta" {
        t.Fatalf("expected fallback, got %q", got)
    }
    if got := d.DBName("unknown"); got != "unknown" {
        t.Fatalf("expected fallback, got %q", got)
    }
}

func TestLoadRejectsDuplicates(t *testing.T) {
    dir := t.TempDir()
    accounts := writeFile(t, dir, "accounts.json", `[
        {"binanceName": "Alpha"},
        {"binanceName": "alpha"}
    ]`)
    if _, err := Load(accounts, "", ""); err == nil {
        t.Fatalf("expected duplicate error")
    }
}
