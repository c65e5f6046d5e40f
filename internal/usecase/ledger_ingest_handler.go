package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/models"
	domrepo "github.com/247TeamAlgo/AlgoforceAnalytics/internal/domain/repository"
	pkgkafka "github.com/247TeamAlgo/AlgoforceAnalytics/pkg/kafka"
)

// LedgerIngestHandler consumes ledger rows from Kafka and appends them to
// ClickHouse. Messages carry a table discriminator; each message is one row.
type LedgerIngestHandler struct {
	topic   string
	writer  domrepo.LedgerWriter
	metrics domrepo.Metrics
}

func NewLedgerIngestHandler(topic string, writer domrepo.LedgerWriter, metrics domrepo.Metrics) *LedgerIngestHandler {
	return &LedgerIngestHandler{topic: topic, writer: writer, metrics: metrics}
}

func (h *LedgerIngestHandler) Topic() string { return h.topic }

// incoming message schema: {table, account, ts, ...} with ts in unix seconds
// (milliseconds tolerated).
func (h *LedgerIngestHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Table      string  `json:"table"`
		Account    string  `json:"account"`
		Ts         int64   `json:"ts"`
		Symbol     string  `json:"symbol"`
		Pnl        float64 `json:"realized_pnl"`
		Commission float64 `json:"commission"`
		IncomeType string  `json:"income_type"`
		Income     float64 `json:"income"`
		Rewards    float64 `json:"rewards"`
		Value      float64 `json:"value"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("ingest_unmarshal")
		return err
	}
	if m.Ts > 1e11 { // ms
		m.Ts = m.Ts / 1000
	}
	ts := time.Unix(m.Ts, 0).UTC()

	start := time.Now()
	var err error
	switch m.Table {
	case "trades":
		err = h.writer.InsertTrades(ctx, []models.Trade{{
			Account:    m.Account,
			Symbol:     m.Symbol,
			Time:       ts,
			Pnl:        m.Pnl,
			Commission: m.Commission,
		}})
	case "transactions":
		kind := models.KindFundingFee
		if m.IncomeType == "TRANSFER" {
			kind = models.KindTransfer
		}
		err = h.writer.InsertTransactions(ctx, []models.LedgerEvent{{
			Account: m.Account,
			Time:    ts,
			Amount:  m.Income,
			Kind:    kind,
		}})
	case "earnings":
		err = h.writer.InsertEarnings(ctx, []models.LedgerEvent{{
			Account: m.Account,
			Time:    ts,
			Amount:  m.Rewards,
			Kind:    models.KindEarning,
		}})
	case "balance_snapshots":
		err = h.writer.InsertSnapshots(ctx, []models.BalanceSnapshot{{
			Account: m.Account,
			Time:    ts,
			Value:   m.Value,
		}})
	default:
		h.metrics.RecordError("ingest_unknown_table")
		return fmt.Errorf("unknown ledger table %q", m.Table)
	}
	h.metrics.RecordStoreLatency("ch_insert", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("ingest_insert")
		return err
	}
	h.metrics.RecordIngest(m.Table, 1)
	return nil
}

var _ pkgkafka.MessageHandler = (*LedgerIngestHandler)(nil)
