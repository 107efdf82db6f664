package order_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluecup/backend-pos/internal/catalog"
	"github.com/bluecup/backend-pos/internal/order"
	"github.com/bluecup/backend-pos/internal/pricing"
)

func testStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStore([]catalog.Product{
		{ID: "latte", Name: "Latte", BasePrice: 400, Options: []catalog.Option{
			{ID: "extra-shot", Name: "Extra Shot", PriceDelta: 75},
			{ID: "whip", Name: "Whipped Cream", PriceDelta: 50},
			{ID: "oat-milk", Name: "Oat Milk", PriceDelta: 60},
			{ID: "no-whip", Name: "No Whip", PriceDelta: -25},
			{ID: "big-discount", Name: "Big Discount", PriceDelta: -500},
		}},
		{ID: "water", Name: "Water", BasePrice: 150},
	})
	require.NoError(t, err)
	return store
}

func testPolicy(t *testing.T, bps int) pricing.Policy {
	t.Helper()
	policy, err := pricing.NewPolicy(bps, pricing.RoundHalfUp)
	require.NoError(t, err)
	return policy
}

func mustSelection(t *testing.T, p catalog.Product, ids ...string) order.Selection {
	t.Helper()
	sel, err := order.NewSelection(p, ids...)
	require.NoError(t, err)
	return sel
}

// Scenario A: Latte base 4.00 with extra-shot +0.75, qty 2, 8% tax.
func TestAddItemComputesScenarioTotals(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	o := order.New(testPolicy(t, 800))
	ref, err := o.AddItem(latte, 2, mustSelection(t, latte, "extra-shot"))
	require.NoError(t, err)

	item, err := o.Item(ref)
	require.NoError(t, err)
	require.EqualValues(t, 475, item.UnitPrice)
	require.EqualValues(t, 950, item.ExtendedPrice)

	totals := o.Totals()
	require.EqualValues(t, 950, totals.Subtotal)
	require.EqualValues(t, 76, totals.Tax)
	require.EqualValues(t, 1026, totals.Total)
}

// Scenario B: empty order yields all-zero totals.
func TestEmptyOrderTotalsAreZero(t *testing.T) {
	o := order.New(testPolicy(t, 825))
	totals := o.Totals()
	require.EqualValues(t, 0, totals.Subtotal)
	require.EqualValues(t, 0, totals.Tax)
	require.EqualValues(t, 0, totals.Total)
	require.Empty(t, o.Items())
}

// Scenario C: quantity 0 is rejected and the order stays empty.
func TestAddItemRejectsZeroQuantity(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	o := order.New(testPolicy(t, 800))
	_, err = o.AddItem(latte, 0, mustSelection(t, latte))
	require.ErrorIs(t, err, order.ErrInvalidQuantity)
	require.Zero(t, o.Len())
	require.EqualValues(t, 0, o.Totals().Total)
}

// Scenario D: removing the first of two items leaves the second intact.
func TestRemoveItemPreservesRemaining(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)
	water, err := store.FindProduct("water")
	require.NoError(t, err)

	o := order.New(testPolicy(t, 800))
	first, err := o.AddItem(latte, 1, mustSelection(t, latte, "whip"))
	require.NoError(t, err)
	second, err := o.AddItem(water, 3, mustSelection(t, water))
	require.NoError(t, err)

	require.NoError(t, o.RemoveItem(first))

	items := o.Items()
	require.Len(t, items, 1)
	require.Equal(t, second, items[0].Ref)
	require.EqualValues(t, 450, items[0].ExtendedPrice)
	require.EqualValues(t, 450, o.Totals().Subtotal)

	require.ErrorIs(t, o.RemoveItem(first), order.ErrItemNotFound)
}

// Scenario E: an invalid customization update leaves the item unchanged.
func TestUpdateSelectionRejectsUnknownOption(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	o := order.New(testPolicy(t, 800))
	ref, err := o.AddItem(latte, 1, mustSelection(t, latte, "whip"))
	require.NoError(t, err)

	_, err = order.NewSelection(latte, "pumpkin-spice")
	require.ErrorIs(t, err, order.ErrInvalidOption)

	// A selection built for another product is rejected by the update.
	water, err := store.FindProduct("water")
	require.NoError(t, err)
	err = o.UpdateSelection(ref, mustSelection(t, water))
	require.ErrorIs(t, err, order.ErrInvalidOption)

	item, err := o.Item(ref)
	require.NoError(t, err)
	require.EqualValues(t, 450, item.UnitPrice)
	require.Equal(t, []string{"whip"}, optionIDs(item))
}

func TestUpdateQuantityLaw(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	o := order.New(testPolicy(t, 800))
	ref, err := o.AddItem(latte, 1, mustSelection(t, latte))
	require.NoError(t, err)

	for _, q := range []int{1, 2, 7, 100} {
		require.NoError(t, o.UpdateQuantity(ref, q))
		item, err := o.Item(ref)
		require.NoError(t, err)
		require.Equal(t, q, item.Quantity)
		require.EqualValues(t, item.UnitPrice*int64(q), item.ExtendedPrice)
	}

	require.NoError(t, o.UpdateQuantity(ref, 4))
	for _, q := range []int{0, -1, -100} {
		require.ErrorIs(t, o.UpdateQuantity(ref, q), order.ErrInvalidQuantity)
		item, err := o.Item(ref)
		require.NoError(t, err)
		require.Equal(t, 4, item.Quantity)
	}

	require.ErrorIs(t, o.UpdateQuantity("missing", 2), order.ErrItemNotFound)
}

func TestSubtotalReconcilesAfterEveryMutation(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)
	water, err := store.FindProduct("water")
	require.NoError(t, err)

	o := order.New(testPolicy(t, 825))
	check := func() {
		var sum int64
		for _, item := range o.Items() {
			sum += item.ExtendedPrice
		}
		totals := o.Totals()
		require.EqualValues(t, sum, totals.Subtotal)
		require.EqualValues(t, totals.Subtotal+totals.Tax, totals.Total)
		// Idempotence: a second read without mutation is identical.
		require.Equal(t, totals, o.Totals())
	}

	refA, err := o.AddItem(latte, 2, mustSelection(t, latte, "extra-shot", "whip"))
	require.NoError(t, err)
	check()
	refB, err := o.AddItem(water, 1, mustSelection(t, water))
	require.NoError(t, err)
	check()
	require.NoError(t, o.UpdateQuantity(refA, 5))
	check()
	require.NoError(t, o.UpdateSelection(refA, mustSelection(t, latte, "no-whip")))
	check()
	require.NoError(t, o.RemoveItem(refB))
	check()
	o.Clear()
	check()
	require.Zero(t, o.Len())
}

func TestAddItemRejectsNegativeUnitPrice(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	o := order.New(testPolicy(t, 800))
	// 4.00 - 5.00 would be negative: refuse, don't clamp.
	_, err = o.AddItem(latte, 1, mustSelection(t, latte, "big-discount"))
	require.ErrorIs(t, err, order.ErrInvalidPricing)
	require.Zero(t, o.Len())
}

func TestSnapshotIsDetached(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)

	o := order.New(testPolicy(t, 800))
	_, err = o.AddItem(latte, 2, mustSelection(t, latte, "extra-shot"))
	require.NoError(t, err)

	snap := o.Snapshot()
	o.Clear()

	require.Len(t, snap.Items, 1)
	require.EqualValues(t, 950, snap.Totals.Subtotal)
	require.EqualValues(t, 0, o.Totals().Subtotal)
}

func optionIDs(item order.LineItem) []string {
	ids := make([]string, 0, len(item.Options))
	for _, opt := range item.Options {
		ids = append(ids, opt.ID)
	}
	return ids
}

func TestOrderUpdateItemAtomic(t *testing.T) {
	store := testStore(t)
	latte, err := store.FindProduct("latte")
	require.NoError(t, err)
	o := order.New(testPolicy(t, 800))
	ref, err := o.AddItem(latte, 2, mustSelection(t, latte, "extra-shot"))
	require.NoError(t, err)

	// An invalid quantity rejects the whole update even though the
	// selection part is valid.
	err = o.UpdateItem(ref, 0, mustSelection(t, latte, "whip"))
	require.ErrorIs(t, err, order.ErrInvalidQuantity)
	item, err := o.Item(ref)
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)
	require.EqualValues(t, 475, item.UnitPrice)

	// A selection driving the unit price negative rejects both parts.
	err = o.UpdateItem(ref, 5, mustSelection(t, latte, "big-discount"))
	require.ErrorIs(t, err, order.ErrInvalidPricing)
	item, err = o.Item(ref)
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)
	require.EqualValues(t, 475, item.UnitPrice)

	// A valid combined update applies both fields.
	require.NoError(t, o.UpdateItem(ref, 3, mustSelection(t, latte, "whip")))
	item, err = o.Item(ref)
	require.NoError(t, err)
	require.Equal(t, 3, item.Quantity)
	require.EqualValues(t, 450, item.UnitPrice)
	require.EqualValues(t, 1350, o.Totals().Subtotal)
}
