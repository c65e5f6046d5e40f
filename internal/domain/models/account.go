package models

import "strings"

// Account is immutable reference metadata for a trading account, loaded once
// from the accounts file at startup.
type Account struct {
	BinanceName string  `json:"binanceName"`
	RedisName   string  `json:"redisName"`
	DBName      string  `json:"dbName"`
	Strategy    string  `json:"strategy"`
	Leverage    float64 `json:"leverage"`
	Monitored   bool    `json:"monitored"`
}

// Key returns the canonical lowercase lookup key for the account.
func (a Account) Key() string {
	return strings.ToLower(a.BinanceName)
}
