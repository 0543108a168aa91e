package costs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierList(t *testing.T) {
	l := NewTierList(DefaultTiers())
	require.Equal(t, 2, l.Len())

	i := l.Add()
	assert.Equal(t, 2, i)
	require.True(t, l.Update(i, TierType, "Priority"))
	require.True(t, l.Update(i, TierTimeframe, "24 hours"))
	require.True(t, l.Update(i, TierTimeUnit, "hours"))
	require.True(t, l.Update(i, TierMinTime, "12"))
	require.True(t, l.Update(i, TierMaxTime, "24"))
	assert.Equal(t, Tier{Type: "Priority", Timeframe: "24 hours", TimeUnit: "hours", MinTime: "12", MaxTime: "24"}, l.All()[i])

	assert.False(t, l.Update(9, TierType, "x"))
	assert.False(t, l.Update(0, TierField("other"), "x"))

	require.True(t, l.Remove(0))
	assert.Equal(t, "Express", l.All()[0].Type)
	assert.False(t, l.Remove(-1))
	assert.False(t, l.Remove(l.Len()))
}

func TestTierList_CopiesInput(t *testing.T) {
	in := DefaultTiers()
	l := NewTierList(in)
	l.Update(0, TierType, "Changed")
	assert.Equal(t, "Standard", in[0].Type)

	out := l.All()
	out[0].Type = "Again"
	assert.Equal(t, "Changed", l.All()[0].Type)
}

func TestLedger(t *testing.T) {
	l := NewLedger(nil)
	i := l.Add()
	require.True(t, l.Update(i, CostDescription, "Biometrics"))
	require.True(t, l.Update(i, CostAmount, "85"))
	require.True(t, l.Update(i, CostCurrency, "gbp"))
	assert.Equal(t, []Cost{{Description: "Biometrics", Amount: "85", Currency: "gbp"}}, l.All())

	assert.False(t, l.Update(1, CostAmount, "1"))
	assert.False(t, l.Update(0, CostField("other"), "1"))
	require.True(t, l.Remove(0))
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Remove(0))
}
