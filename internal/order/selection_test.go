package order_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluecup/backend-pos/internal/order"
)

func TestSelectionPriceDelta(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	empty, err := order.NewSelection(latte)
	require.NoError(t, err)
	require.EqualValues(t, 0, empty.PriceDelta())

	sel, err := order.NewSelection(latte, "extra-shot", "no-whip")
	require.NoError(t, err)
	require.EqualValues(t, 50, sel.PriceDelta())
	require.Equal(t, []string{"extra-shot", "no-whip"}, sel.OptionIDs())
}

func TestSelectionOrderIndependence(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	a, err := order.NewSelection(latte, "whip", "oat-milk")
	require.NoError(t, err)
	b, err := order.NewSelection(latte, "oat-milk", "whip")
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))
	require.Equal(t, a.PriceDelta(), b.PriceDelta())
	require.Equal(t, a.OptionIDs(), b.OptionIDs())

	// Same options on equivalent items must produce identical unit prices.
	policy := testPolicy(t, 800)
	first := order.New(policy)
	refA, err := first.AddItem(latte, 1, a)
	require.NoError(t, err)
	refB, err := first.AddItem(latte, 1, b)
	require.NoError(t, err)
	itemA, err := first.Item(refA)
	require.NoError(t, err)
	itemB, err := first.Item(refB)
	require.NoError(t, err)
	require.Equal(t, itemA.UnitPrice, itemB.UnitPrice)
}

func TestSelectionValidation(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	_, err = order.NewSelection(latte, "whip", "whip")
	require.ErrorIs(t, err, order.ErrDuplicateOption)

	_, err = order.NewSelection(latte, "syrup-of-nowhere")
	require.ErrorIs(t, err, order.ErrInvalidOption)
}

func TestSelectionInequality(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)
	water, err := store.FindProduct("water")
	require.NoError(t, err)

	withWhip, err := order.NewSelection(latte, "whip")
	require.NoError(t, err)
	plainLatte, err := order.NewSelection(latte)
	require.NoError(t, err)
	plainWater, err := order.NewSelection(water)
	require.NoError(t, err)

	require.False(t, withWhip.Equal(plainLatte))
	require.False(t, plainLatte.Equal(plainWater))
}
