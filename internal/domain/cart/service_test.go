package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/hamper-shop/internal/idgen"
	"github.com/example/hamper-shop/internal/infrastructure/store"
	"github.com/example/hamper-shop/internal/infrastructure/store/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCartID = "cart-session-1"

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestCartService() (*Service, *mocks.MockEventStore) {
	eventStore := mocks.NewMockEventStore()
	service := NewService(eventStore, idgen.NewSequence("item"), zerolog.Nop())
	service.now = func() time.Time { return fixedNow }
	return service, eventStore
}

func prebuilt(name string, price int64, quantity int) Candidate {
	return Candidate{
		Kind:      KindPrebuilt,
		Name:      name,
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  quantity,
		Prebuilt:  &PrebuiltHamper{ProductID: "p-" + name, Category: "Premium"},
	}
}

func custom(name string, price int64, quantity int) Candidate {
	return Candidate{
		Kind:      KindCustom,
		Name:      name,
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  quantity,
		Custom:    &CustomHamper{Occasion: "Birthday", Vibe: "Modern", Packaging: "Gift Box", Contents: []string{"Keychain"}},
	}
}

func mustGet(t *testing.T, s *Service) *Cart {
	t.Helper()
	c, err := s.Get(context.Background(), testCartID)
	require.NoError(t, err)
	return c
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ============================================
// GetCartID Tests
// ============================================

func TestGetCartID(t *testing.T) {
	tests := []struct {
		name       string
		sessionID  string
		expectedID string
	}{
		{"normal session ID", "session-123", "cart-session-123"},
		{"UUID session ID", "550e8400-e29b-41d4-a716-446655440000", "cart-550e8400-e29b-41d4-a716-446655440000"},
		{"empty session ID", "", "cart-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedID, GetCartID(tt.sessionID))
		})
	}
}

// ============================================
// Add Item Tests
// ============================================

func TestService_AddItem_Success(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()

	item, err := service.AddItem(ctx, testCartID, custom("Birthday Hamper", 1250, 2))

	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.True(t, dec(2500).Equal(item.LineTotal))
	assert.True(t, dec(1250).Equal(item.UnitPrice))

	require.Len(t, eventStore.AppendCalls, 1)
	call := eventStore.AppendCalls[0]
	assert.Equal(t, EventItemAdded, call.EventType)
	assert.Equal(t, AggregateType, call.AggregateType)
	assert.Equal(t, testCartID, call.AggregateID)

	data := call.Data.(ItemAddedToCart)
	assert.Equal(t, testCartID, data.CartID)
	assert.Equal(t, "item-1", data.Item.ID)
	assert.Equal(t, fixedNow, data.AddedAt)
}

func TestService_AddItem_PreservesInsertionOrder(t *testing.T) {
	service, _ := newTestCartService()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := service.AddItem(ctx, testCartID, prebuilt(name, 100, 1))
		require.NoError(t, err)
	}

	cart := mustGet(t, service)
	require.Len(t, cart.Items, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{cart.Items[0].Name, cart.Items[1].Name, cart.Items[2].Name})
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, []string{cart.Items[0].ID, cart.Items[1].ID, cart.Items[2].ID})
}

func TestService_AddItem_Invalid(t *testing.T) {
	mismatched := prebuilt("x", 100, 1)
	mismatched.Kind = KindCustom

	tests := []struct {
		name      string
		candidate Candidate
		wantErr   error
	}{
		{"empty name", prebuilt("", 100, 1), ErrInvalidName},
		{"zero quantity", prebuilt("x", 100, 0), ErrInvalidQuantity},
		{"negative quantity", prebuilt("x", 100, -2), ErrInvalidQuantity},
		{"negative price", prebuilt("x", -1, 1), ErrNegativePrice},
		{"kind without payload", mismatched, ErrInvalidKind},
		{"unknown kind", Candidate{Kind: "gift-card", Name: "x", Quantity: 1}, ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, eventStore := newTestCartService()

			_, err := service.AddItem(context.Background(), testCartID, tt.candidate)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, eventStore.AppendCalls)
		})
	}
}

func TestService_AddItem_FreePriceAllowed(t *testing.T) {
	service, _ := newTestCartService()

	item, err := service.AddItem(context.Background(), testCartID, custom("Sample", 0, 1))

	require.NoError(t, err)
	assert.True(t, item.LineTotal.IsZero())
}

func TestService_AddItem_AppendError(t *testing.T) {
	service, eventStore := newTestCartService()
	eventStore.AppendErr = errors.New("store down")

	_, err := service.AddItem(context.Background(), testCartID, prebuilt("x", 100, 1))

	assert.ErrorContains(t, err, "store down")
}

// ============================================
// Update Quantity Tests
// ============================================

func TestService_UpdateQuantity_AddThenAdjust(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()
	item, err := service.AddItem(ctx, testCartID, prebuilt("Premium", 1000, 1))
	require.NoError(t, err)

	require.NoError(t, service.UpdateQuantity(ctx, testCartID, item.ID, 3))

	got, ok := mustGet(t, service).Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, 3, got.Quantity)
	assert.True(t, dec(3000).Equal(got.LineTotal), "line total %s", got.LineTotal)
	assert.Equal(t, []string{EventItemAdded, EventQuantityUpdated}, eventStore.EventTypes())
}

func TestService_UpdateQuantity_PreservesUnitPrice(t *testing.T) {
	service, _ := newTestCartService()
	ctx := context.Background()
	item, err := service.AddItem(ctx, testCartID, custom("Odd", 333, 3))
	require.NoError(t, err)
	unitBefore := item.LineTotal.Div(decimal.NewFromInt(int64(item.Quantity)))

	for _, q := range []int{1, 2, 7, 10, 4} {
		require.NoError(t, service.UpdateQuantity(ctx, testCartID, item.ID, q))

		got, _ := mustGet(t, service).Item(item.ID)
		unitAfter := got.LineTotal.Div(decimal.NewFromInt(int64(q)))
		assert.True(t, unitBefore.Equal(unitAfter), "q=%d: %s != %s", q, unitAfter, unitBefore)
	}
}

// Quantity zero is ignored rather than treated as a removal.
func TestService_UpdateQuantity_NonPositiveIsIgnored(t *testing.T) {
	for _, q := range []int{0, -1} {
		service, eventStore := newTestCartService()
		ctx := context.Background()
		item, err := service.AddItem(ctx, testCartID, prebuilt("x", 500, 2))
		require.NoError(t, err)

		require.NoError(t, service.UpdateQuantity(ctx, testCartID, item.ID, q))

		got, ok := mustGet(t, service).Item(item.ID)
		require.True(t, ok, "q=%d must not delete the item", q)
		assert.Equal(t, 2, got.Quantity)
		assert.Len(t, eventStore.AppendCalls, 1)
	}
}

func TestService_UpdateQuantity_UnknownIDIsIgnored(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()
	_, err := service.AddItem(ctx, testCartID, prebuilt("x", 500, 1))
	require.NoError(t, err)

	require.NoError(t, service.UpdateQuantity(ctx, testCartID, "missing", 4))

	assert.Len(t, eventStore.AppendCalls, 1)
}

func TestService_UpdateQuantity_SameQuantityEmitsNothing(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()
	item, err := service.AddItem(ctx, testCartID, prebuilt("x", 500, 2))
	require.NoError(t, err)

	require.NoError(t, service.UpdateQuantity(ctx, testCartID, item.ID, 2))

	assert.Len(t, eventStore.AppendCalls, 1)
}

func TestService_IncrementDecrement(t *testing.T) {
	service, _ := newTestCartService()
	ctx := context.Background()
	item, err := service.AddItem(ctx, testCartID, prebuilt("x", 200, 1))
	require.NoError(t, err)

	require.NoError(t, service.Increment(ctx, testCartID, item.ID))
	require.NoError(t, service.Increment(ctx, testCartID, item.ID))
	got, _ := mustGet(t, service).Item(item.ID)
	assert.Equal(t, 3, got.Quantity)
	assert.True(t, dec(600).Equal(got.LineTotal))

	require.NoError(t, service.Decrement(ctx, testCartID, item.ID))
	require.NoError(t, service.Decrement(ctx, testCartID, item.ID))
	require.NoError(t, service.Decrement(ctx, testCartID, item.ID))
	got, ok := mustGet(t, service).Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity)

	require.NoError(t, service.Increment(ctx, testCartID, "missing"))
}

// ============================================
// Remove Item Tests
// ============================================

func TestService_RemoveItem_Idempotent(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()
	first, err := service.AddItem(ctx, testCartID, prebuilt("a", 100, 1))
	require.NoError(t, err)
	_, err = service.AddItem(ctx, testCartID, prebuilt("b", 200, 2))
	require.NoError(t, err)

	require.NoError(t, service.RemoveItem(ctx, testCartID, first.ID))
	once := mustGet(t, service)
	require.NoError(t, service.RemoveItem(ctx, testCartID, first.ID))
	twice := mustGet(t, service)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second removal changed the cart (-once +twice):\n%s", diff)
	}
	assert.Equal(t, []string{EventItemAdded, EventItemAdded, EventItemRemoved}, eventStore.EventTypes())
	assert.Equal(t, 1, twice.LineCount())
}

// ============================================
// Totals Tests
// ============================================

func TestCart_TotalsAreOrderIndependent(t *testing.T) {
	orders := [][]Candidate{
		{prebuilt("a", 1000, 1), custom("b", 450, 2), prebuilt("c", 75, 4)},
		{prebuilt("c", 75, 4), prebuilt("a", 1000, 1), custom("b", 450, 2)},
	}

	for i, candidates := range orders {
		service, _ := newTestCartService()
		ctx := context.Background()
		var ids []string
		for _, c := range candidates {
			item, err := service.AddItem(ctx, testCartID, c)
			require.NoError(t, err)
			ids = append(ids, item.ID)
		}
		cart := mustGet(t, service)
		assert.True(t, dec(2200).Equal(cart.Total()), "order %d total %s", i, cart.Total())
		assert.Equal(t, 7, cart.ItemCount())
		assert.Equal(t, 3, cart.LineCount())

		require.NoError(t, service.RemoveItem(ctx, testCartID, ids[1]))
		cart = mustGet(t, service)
		sum := decimal.Zero
		count := 0
		for _, item := range cart.Items {
			sum = sum.Add(item.LineTotal)
			count += item.Quantity
		}
		assert.True(t, sum.Equal(cart.Total()))
		assert.Equal(t, count, cart.ItemCount())
	}
}

func TestCart_EmptyTotals(t *testing.T) {
	service, _ := newTestCartService()
	cart := mustGet(t, service)

	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
	assert.Equal(t, 0, cart.ItemCount())
	assert.Equal(t, testCartID, cart.ID)
}

// ============================================
// Clear / Customer Details Tests
// ============================================

func TestService_Clear_ResetsItemsAndDetails(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()
	_, err := service.AddItem(ctx, testCartID, prebuilt("a", 100, 1))
	require.NoError(t, err)
	name := "Asha"
	_, err = service.UpdateCustomerDetails(ctx, testCartID, DetailsPatch{Name: &name})
	require.NoError(t, err)

	require.NoError(t, service.Clear(ctx, testCartID))

	cart := mustGet(t, service)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, CustomerDetails{}, cart.Customer)
	assert.Equal(t, EventCartCleared, eventStore.AppendCalls[len(eventStore.AppendCalls)-1].EventType)
}

func TestService_UpdateCustomerDetails_MergesPatch(t *testing.T) {
	service, eventStore := newTestCartService()
	ctx := context.Background()
	name, phone, email := "Asha", "9800000000", "asha@example.com"

	_, err := service.UpdateCustomerDetails(ctx, testCartID, DetailsPatch{Name: &name, Phone: &phone})
	require.NoError(t, err)
	details, err := service.UpdateCustomerDetails(ctx, testCartID, DetailsPatch{Email: &email})
	require.NoError(t, err)

	want := CustomerDetails{Name: name, Phone: phone, Email: email}
	assert.Equal(t, want, details)
	assert.Equal(t, want, mustGet(t, service).Customer)
	assert.True(t, details.HasContact())

	// an empty patch changes nothing and records nothing
	_, err = service.UpdateCustomerDetails(ctx, testCartID, DetailsPatch{})
	require.NoError(t, err)
	assert.Len(t, eventStore.AppendCalls, 2)
}

func TestCustomerDetails_HasContact(t *testing.T) {
	assert.False(t, CustomerDetails{}.HasContact())
	assert.False(t, CustomerDetails{Name: "A"}.HasContact())
	assert.False(t, CustomerDetails{Phone: "1"}.HasContact())
	assert.True(t, CustomerDetails{Name: "A", Phone: "1"}.HasContact())
}

// ============================================
// Snapshot Tests
// ============================================

func TestService_SnapshotMatchesReplay(t *testing.T) {
	service, eventStore := newTestCartService()
	eventStore.Threshold = 3
	ctx := context.Background()

	a, err := service.AddItem(ctx, testCartID, prebuilt("a", 1000, 1))
	require.NoError(t, err)
	b, err := service.AddItem(ctx, testCartID, custom("b", 450, 1))
	require.NoError(t, err)
	require.NoError(t, service.UpdateQuantity(ctx, testCartID, a.ID, 3))
	_, err = service.AddItem(ctx, testCartID, prebuilt("c", 75, 2))
	require.NoError(t, err)
	require.NoError(t, service.RemoveItem(ctx, testCartID, b.ID))
	phone := "12345"
	_, err = service.UpdateCustomerDetails(ctx, testCartID, DetailsPatch{Phone: &phone})
	require.NoError(t, err)
	require.NoError(t, service.Increment(ctx, testCartID, a.ID))

	require.Len(t, eventStore.SaveSnapshotCalls, 2)
	assert.Equal(t, []int{3, 6}, []int{eventStore.SaveSnapshotCalls[0].Version, eventStore.SaveSnapshotCalls[1].Version})

	replayed := &Cart{ID: testCartID}
	for _, e := range eventStore.GetEvents(testCartID) {
		require.NoError(t, replayed.ApplyEvent(e))
	}
	loaded := mustGet(t, service)

	if diff := cmp.Diff(replayed, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot load differs from full replay (-replay +loaded):\n%s", diff)
	}
	assert.Equal(t, 7, loaded.Version)
	assert.True(t, dec(4150).Equal(loaded.Total()), "total %s", loaded.Total())
}

func TestCart_ApplyEvent_BadPayload(t *testing.T) {
	c := &Cart{}

	err := c.ApplyEvent(store.Event{EventType: EventItemAdded, Data: []byte(`{"item":"nope"}`)})

	assert.Error(t, err)
}
