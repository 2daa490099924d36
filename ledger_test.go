package fifotax

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotQueue_Insert(t *testing.T) {
	var q LotQueue
	q.Insert(newLot("", "A", day("2023-03-01"), 2, 1, 10))
	q.Insert(newLot("", "A", day("2023-01-01"), 5, 2, 10))
	q.Insert(newLot("", "A", day("2023-03-01"), 1, 3, 10))
	q.Insert(newLot("", "A", day("2024-01-01"), 0, 4, 10))

	got := unsold(&q)
	want := []float64{2, 3, 1, 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Insert() order mismatch (-want +got):\n%s", diff)
	}

	oldest, ok := q.PopOldest()
	if !ok || oldest.Index != 5 {
		t.Errorf("PopOldest() = %v, %v, want index 5", oldest, ok)
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
}

func TestLotQueue_Nil(t *testing.T) {
	var q *LotQueue
	if !q.Empty() {
		t.Error("nil queue is not empty")
	}
	if _, ok := q.Oldest(); ok {
		t.Error("nil queue has an oldest lot")
	}
	if got := q.UnsoldShares(); got != 0 {
		t.Errorf("UnsoldShares() = %v, want 0", got)
	}
}

func TestLedger_Dispose(t *testing.T) {
	tests := []struct {
		name       string
		sell       float64
		wantUnsold []float64
	}{
		{"less than oldest lot", 4, []float64{6, 20, 30}},
		{"exactly oldest lot", 10, []float64{20, 30}},
		{"across two lots", 15, []float64{15, 30}},
		{"everything", 60, nil},
		{"float slack", 60 + 5e-6, nil},
		{"nothing", 0, []float64{10, 20, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			require.NoError(t, l.Acquire("Depot", "ETF", day("2023-01-10"), 0, 10, 100, ""))
			require.NoError(t, l.Acquire("Depot", "ETF", day("2023-02-10"), 1, 20, 220, ""))
			require.NoError(t, l.Acquire("Depot", "ETF", day("2023-03-10"), 2, 30, 360, ""))

			require.NoError(t, l.Dispose("Depot", "ETF", tt.sell))

			got := unsold(l.Queue("Depot", "ETF"))
			if diff := cmp.Diff(tt.wantUnsold, got); diff != "" {
				t.Errorf("Dispose(%v) mismatch (-want +got):\n%s", tt.sell, diff)
			}
			if tt.wantUnsold == nil && len(l.Accounts()) != 0 {
				t.Errorf("Accounts() = %v, want none", l.Accounts())
			}
		})
	}
}

func TestLedger_DisposeKeepsNewerLotsUntouched(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Acquire("Depot", "ETF", day("2023-01-10"), 0, 10, 100, ""))
	require.NoError(t, l.Acquire("Depot", "ETF", day("2023-02-10"), 1, 20, 220, "IE00B3RBWM25"))
	before := l.Queue("Depot", "ETF").Lots()

	require.NoError(t, l.Dispose("Depot", "ETF", 3))

	after := l.Queue("Depot", "ETF").Lots()
	require.Len(t, after, 2)
	assert.Equal(t, before[1], after[1])
	assert.InDelta(t, 7, after[0].UnsoldShares, 1e-9)
	assert.Equal(t, before[0].PurchasedShares, after[0].PurchasedShares)
	assert.Equal(t, before[0].PurchasedValue, after[0].PurchasedValue)
}

func TestLedger_DisposeShortfall(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Acquire("Depot", "ETF", day("2023-01-10"), 0, 10, 100, ""))

	err := l.Dispose("Depot", "ETF", 12)
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("Dispose() error = %v, want ErrInsufficientShares", err)
	}
	var short *ShortfallError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, "Depot", short.Account)
	assert.InDelta(t, 2, short.Missing, 1e-9)

	err = l.Dispose("Other", "ETF", 1)
	if !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("Dispose() on unknown account error = %v, want ErrInsufficientShares", err)
	}
}

func TestLedger_Transfer(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Acquire("A", "ETF", day("2023-01-10"), 0, 10, 100, ""))
	require.NoError(t, l.Acquire("A", "ETF", day("2023-02-10"), 1, 20, 220, ""))
	require.NoError(t, l.Acquire("B", "ETF", day("2023-01-20"), 2, 5, 60, ""))

	require.NoError(t, l.Transfer("A", "B", "ETF", 15))

	if diff := cmp.Diff([]float64{15}, unsold(l.Queue("A", "ETF"))); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	// The whole first lot and the split part of the second one are moved and
	// sorted among the lots already there.
	if diff := cmp.Diff([]float64{10, 5, 5}, unsold(l.Queue("B", "ETF"))); diff != "" {
		t.Errorf("destination mismatch (-want +got):\n%s", diff)
	}

	moved := l.Queue("B", "ETF").Lots()[2]
	assert.Equal(t, 20.0, moved.PurchasedShares, "cost basis must not be prorated")
	assert.Equal(t, 220.0, moved.PurchasedValue, "cost basis must not be prorated")
	assert.InDelta(t, 11.0, moved.CostPerShare(), 1e-9)

	total := l.Shares("A", "ETF") + l.Shares("B", "ETF")
	assert.InDelta(t, 35, total, 1e-9)
}

func TestLedger_TransferEverything(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Acquire("A", "ETF", day("2023-01-10"), 0, 10, 100, ""))

	require.NoError(t, l.Transfer("A", "B", "ETF", 10))

	assert.Equal(t, []string{"B"}, l.Accounts())
	assert.Equal(t, 1, l.Len())
}

func TestLedger_TransferCashIsSkipped(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Transfer("A", "B", "", 1000))
	assert.Empty(t, l.Accounts())
}

func TestLedger_TransferSlack(t *testing.T) {
	tests := []struct {
		name      string
		shares    float64
		wantErr   bool
		wantMoved float64
	}{
		{"exact", 10, false, 10},
		{"float slack", 10 + 5e-6, false, 10},
		{"beyond slack", 10 + 2e-5, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			require.NoError(t, l.Acquire("A", "ETF", day("2023-01-10"), 0, 10, 100, ""))

			err := l.Transfer("A", "B", "ETF", tt.shares)
			if tt.wantErr {
				if !errors.Is(err, ErrInsufficientShares) {
					t.Errorf("Transfer(%v) error = %v, want ErrInsufficientShares", tt.shares, err)
				}
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Queue("A", "ETF").Empty())
			assert.Equal(t, []string{"B"}, l.Accounts(), "the source account is pruned")
			assert.InDelta(t, tt.wantMoved, l.Shares("B", "ETF"), 1e-12)
		})
	}
}

func TestLedger_TransferSameAccount(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Acquire("A", "ETF", day("2023-01-10"), 0, 10, 100, ""))

	require.NoError(t, l.Transfer("A", "A", "ETF", 4))
	assert.InDelta(t, 10, l.Shares("A", "ETF"), 1e-12, "nothing moves")

	err := l.Transfer("B", "B", "ETF", 4)
	var short *ShortfallError
	if !errors.As(err, &short) {
		t.Fatalf("Transfer() from an empty account error = %v, want *ShortfallError", err)
	}
	assert.Equal(t, "B", short.Account)
	assert.InDelta(t, 4, short.Missing, 1e-12)
	assert.Empty(t, l.Queue("B", "ETF").Lots())
}

func TestLedger_TransferShortfall(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Acquire("A", "ETF", day("2023-01-10"), 0, 10, 100, ""))

	err := l.Transfer("A", "B", "ETF", 11)
	var short *ShortfallError
	if !errors.As(err, &short) {
		t.Fatalf("Transfer() error = %v, want *ShortfallError", err)
	}
	assert.Equal(t, OutboundTransfer, short.Op)
}

func TestLedger_Conservation(t *testing.T) {
	purchases := []float64{1.5, 2.25, 10, 0.125, 7}
	sales := []float64{3, 0.5, 8.375}

	l := NewLedger()
	var bought, sold float64
	for i, p := range purchases {
		require.NoError(t, l.Acquire("Depot", "ETF", day("2023-01-10").AddDate(0, i, 0), i, p, p*10, ""))
		bought += p
	}
	for _, s := range sales {
		require.NoError(t, l.Dispose("Depot", "ETF", s))
		sold += s
	}
	assert.InDelta(t, bought-sold, l.Shares("Depot", "ETF"), 1e-5)
	for _, lot := range l.Queue("Depot", "ETF").All() {
		assert.Greater(t, lot.UnsoldShares, 0.0)
		assert.LessOrEqual(t, lot.UnsoldShares, lot.PurchasedShares)
	}
}

func TestReplay_Deterministic(t *testing.T) {
	txs := []Transaction{
		buy(0, "2022-01-03", "A", "ETF", 10, 1000),
		buy(1, "2022-01-03", "A", "ETF", 5, 510),
		buy(2, "2022-05-03", "A", "Stock", 3, 300),
		transfer(3, "2022-06-01", "A", "B", "ETF", 12),
		{Type: OutboundTransfer, Date: day("2022-06-02"), Index: 4, Account: "A", OffsetAccount: "Cash"},
		sell(5, "2022-07-01", "B", "ETF", 4),
		sell(6, "2022-07-02", "A", "Stock", 3),
		{Type: Other, Date: day("2022-08-01"), Index: 7, Account: "A"},
	}

	first, err := Replay(txs)
	require.NoError(t, err)
	second, err := Replay(txs)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Holdings(), second.Holdings()); diff != "" {
		t.Errorf("Replay() not deterministic (-first +second):\n%s", diff)
	}
	for _, account := range first.Accounts() {
		for _, security := range first.Securities(account) {
			if diff := cmp.Diff(first.Queue(account, security).Lots(), second.Queue(account, security).Lots()); diff != "" {
				t.Errorf("Replay() lots of %s/%s differ (-first +second):\n%s", account, security, diff)
			}
		}
	}

	want := []Holding{
		{Account: "A", Security: "ETF", Shares: 3, Lots: 1},
		{Account: "B", Security: "ETF", Shares: 8, Lots: 2},
	}
	if diff := cmp.Diff(want, first.Holdings()); diff != "" {
		t.Errorf("Holdings() mismatch (-want +got):\n%s", diff)
	}
}

func TestReplay_Shortfall(t *testing.T) {
	txs := []Transaction{
		buy(0, "2022-01-03", "A", "ETF", 10, 1000),
		sell(1, "2022-02-03", "A", "ETF", 11),
	}
	l, err := Replay(txs)
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("Replay() error = %v, want ErrInsufficientShares", err)
	}
	if l != nil {
		t.Errorf("Replay() returned a partial ledger")
	}
}

func TestReplay_InvalidTransaction(t *testing.T) {
	_, err := Replay([]Transaction{buy(0, "2022-01-03", "A", "ETF", 0, 0)})
	if err == nil {
		t.Fatal("Replay() with a zero share buy succeeded")
	}
}
