package fifotax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeVap(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Acquire("Zeta", "World", day("2023-07-01"), 0, 12, 1200, ""))
	require.NoError(t, l.Acquire("Alpha", "World", day("2023-01-01"), 1, 10, 1000, ""))
	require.NoError(t, l.Acquire("Alpha", "Bonds", day("2024-01-01"), 2, 4, 400, "LU0000000001"))
	require.NoError(t, l.Acquire("Alpha", "NoISIN", day("2023-01-01"), 3, 4, 400, ""))

	md := Metadata{
		"World": {Name: "World", ISIN: "IE00BK5BQT80", TFSPercentage: 30},
	}
	vap := VapTable{}
	vap.Set("World", 2023, 1.2)
	vap.Set("World", 2024, 2)
	vap.Set("Bonds", 2024, 0.5)
	vap.Set("NoISIN", 2024, 1)

	s := SummarizeVap(l, md, vap)

	require.False(t, s.Empty())
	assert.Equal(t, []int{2023, 2024}, s.Years)
	require.Len(t, s.Rows, 3)
	assert.Equal(t, "IE00BK5BQT80", s.Rows[0].ISIN, "rows are sorted by account then ISIN")
	assert.Equal(t, "LU0000000001", s.Rows[1].ISIN)
	assert.Equal(t, "Zeta", s.Rows[2].Account)

	alphaWorld := s.Rows[0]
	assert.InDelta(t, 12, alphaWorld.Years[2023].BeforeTFS, 1e-9)
	assert.InDelta(t, 8.4, alphaWorld.Years[2023].AfterTFS, 1e-9)
	assert.InDelta(t, 20, alphaWorld.Years[2024].BeforeTFS, 1e-9)

	// bought in July: 6/12 of the 2023 rate.
	zeta := s.Rows[2]
	assert.InDelta(t, 0.6*12, zeta.Years[2023].BeforeTFS, 1e-9)

	bonds := s.Rows[1]
	assert.InDelta(t, 2, bonds.Years[2024].BeforeTFS, 1e-9)
	assert.InDelta(t, 2, bonds.Years[2024].AfterTFS, 1e-9)

	assert.InDelta(t, 22, s.Accounts["Alpha"][2024].BeforeTFS, 1e-9)
	assert.InDelta(t, 12+7.2, s.Total[2023].BeforeTFS, 1e-9)
	assert.Equal(t, []string{"Alpha", "Zeta"}, s.AccountNames())
}

func TestSummarizeVap_Empty(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Acquire("Depot", "Stock", day("2023-01-01"), 0, 1, 10, "US0378331005"))

	s := SummarizeVap(l, Metadata{}, VapTable{})
	assert.True(t, s.Empty())
	assert.Empty(t, s.Years)
}
