package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/model"
	"restaurant/internal/storage"
)

// flakyStore fails the first failures Get calls and then reads through.
type flakyStore struct {
	storage.Store

	mu       sync.Mutex
	failures int
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failures > 0
	if fail {
		f.failures--
	}
	f.mu.Unlock()

	if fail {
		return nil, errors.New("connection reset by peer")
	}
	return f.Store.Get(ctx, key)
}

func newCart(t *testing.T, store storage.Store) *CartManager {
	t.Helper()
	m, err := NewCartManager(context.Background(), store, nil)
	require.NoError(t, err)
	return m
}

func line(itemID, priceStr string, qty int, note string) model.CartLine {
	return model.CartLine{
		ItemID:   itemID,
		Name:     "item " + itemID,
		Price:    decimal.RequireFromString(priceStr),
		Quantity: qty,
		Note:     note,
	}
}

func sumLines(lines []model.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func TestReduceCartTotalMatchesLines(t *testing.T) {
	prices := []string{"28.90", "12.90", "4.50", "0.10", "99.99"}
	notes := []string{"", "sem cebola", "bem passado"}

	r := rand.New(rand.NewPCG(1, 2))
	for run := 0; run < 200; run++ {
		s := model.CartState{}
		for step := 0; step < 30; step++ {
			idx := r.IntN(len(prices))
			s = ReduceCart(s, AddLine{Line: line(string(rune('a'+idx)), prices[idx], 1+r.IntN(5), notes[r.IntN(len(notes))])})

			if len(s.Lines) > 0 && r.IntN(4) == 0 {
				target := s.Lines[r.IntN(len(s.Lines))].ID
				s = ReduceCart(s, UpdateQuantity{LineID: target, Quantity: r.IntN(4) - 1})
			}
			if len(s.Lines) > 0 && r.IntN(6) == 0 {
				s = ReduceCart(s, RemoveLine{LineID: s.Lines[r.IntN(len(s.Lines))].ID})
			}

			require.True(t, sumLines(s.Lines).Equal(s.Total), "run %d step %d: total %s, lines sum %s", run, step, s.Total, sumLines(s.Lines))
			for _, l := range s.Lines {
				require.Positive(t, l.Quantity)
			}
		}
	}
}

func TestReduceCartMerge(t *testing.T) {
	tests := []struct {
		name      string
		first     model.CartLine
		second    model.CartLine
		wantLines int
		wantQty   int
	}{
		{
			name:      "sameItemSameNote",
			first:     line("3", "28.90", 1, ""),
			second:    line("3", "28.90", 2, ""),
			wantLines: 1,
			wantQty:   3,
		},
		{
			name:      "sameItemDifferentNote",
			first:     line("3", "28.90", 1, ""),
			second:    line("3", "28.90", 1, "sem cebola"),
			wantLines: 2,
			wantQty:   1,
		},
		{
			name:      "differentItemSameNote",
			first:     line("3", "28.90", 1, "x"),
			second:    line("4", "42.90", 1, "x"),
			wantLines: 2,
			wantQty:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ReduceCart(model.CartState{}, AddLine{Line: tt.first})
			s = ReduceCart(s, AddLine{Line: tt.second})

			require.Len(t, s.Lines, tt.wantLines)
			assert.Equal(t, tt.wantQty, s.Lines[0].Quantity)
			assert.NotEmpty(t, s.Lines[0].ID)
			assert.True(t, sumLines(s.Lines).Equal(s.Total))
		})
	}
}

func TestReduceCartUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantTotal string
	}{
		{name: "raise", quantity: 4, wantLines: 2, wantTotal: "128.50"},
		{name: "zeroRemoves", quantity: 0, wantLines: 1, wantTotal: "12.90"},
		{name: "negativeRemoves", quantity: -3, wantLines: 1, wantTotal: "12.90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ReduceCart(model.CartState{}, AddLine{Line: line("3", "28.90", 1, "")})
			s = ReduceCart(s, AddLine{Line: line("2", "12.90", 1, "")})

			s = ReduceCart(s, UpdateQuantity{LineID: s.Lines[0].ID, Quantity: tt.quantity})

			assert.Len(t, s.Lines, tt.wantLines)
			assert.True(t, decimal.RequireFromString(tt.wantTotal).Equal(s.Total), "total = %s", s.Total)
		})
	}
}

func TestReduceCartRemoveMissingIsNoop(t *testing.T) {
	s := ReduceCart(model.CartState{}, AddLine{Line: line("3", "28.90", 2, "")})
	after := ReduceCart(s, RemoveLine{LineID: "nope"})

	assert.Equal(t, s.Lines, after.Lines)
	assert.True(t, s.Total.Equal(after.Total))
}

func TestReduceCartUpdateNoteDoesNotMerge(t *testing.T) {
	s := ReduceCart(model.CartState{}, AddLine{Line: line("3", "28.90", 1, "")})
	s = ReduceCart(s, AddLine{Line: line("3", "28.90", 1, "sem cebola")})
	require.Len(t, s.Lines, 2)

	s = ReduceCart(s, UpdateNote{LineID: s.Lines[1].ID, Note: ""})

	require.Len(t, s.Lines, 2)
	assert.Equal(t, "", s.Lines[1].Note)
	assert.True(t, decimal.RequireFromString("57.80").Equal(s.Total))
}

func TestReduceCartClearKeepsTable(t *testing.T) {
	s := ReduceCart(model.CartState{}, SetTable{TableNumber: "5"})
	s = ReduceCart(s, AddLine{Line: line("3", "28.90", 1, "")})

	s = ReduceCart(s, ClearCart{})

	assert.Empty(t, s.Lines)
	assert.True(t, s.Total.IsZero())
	assert.Equal(t, "5", s.TableNumber)
}

func TestReduceCartDoesNotMutateInput(t *testing.T) {
	s := ReduceCart(model.CartState{}, AddLine{Line: line("3", "28.90", 1, "")})
	before := s.Lines[0].Quantity

	_ = ReduceCart(s, AddLine{Line: line("3", "28.90", 5, "")})

	assert.Equal(t, before, s.Lines[0].Quantity)
}

func TestCartManagerPersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	m := newCart(t, store)
	m.Add(ctx, line("3", "28.90", 2, ""))
	m.Add(ctx, line("12", "16.90", 1, "sem sorvete"))
	m.SetTable(ctx, "5")
	want := m.State()

	got := newCart(t, store).State()

	require.Len(t, got.Lines, len(want.Lines))
	for i := range want.Lines {
		assert.Equal(t, want.Lines[i].ID, got.Lines[i].ID)
		assert.Equal(t, want.Lines[i].ItemID, got.Lines[i].ItemID)
		assert.Equal(t, want.Lines[i].Quantity, got.Lines[i].Quantity)
		assert.Equal(t, want.Lines[i].Note, got.Lines[i].Note)
		assert.True(t, want.Lines[i].Price.Equal(got.Lines[i].Price))
	}
	assert.True(t, want.Total.Equal(got.Total))
	assert.Equal(t, "5", got.TableNumber)
}

func TestCartManagerRehydrateMergesCollidingNotes(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	m := newCart(t, store)
	m.Add(ctx, line("3", "28.90", 1, ""))
	s := m.Add(ctx, line("3", "28.90", 2, "sem cebola"))
	m.UpdateNote(ctx, s.Lines[1].ID, "")
	require.Len(t, m.State().Lines, 2)

	got := newCart(t, store).State()

	require.Len(t, got.Lines, 1)
	assert.Equal(t, 3, got.Lines[0].Quantity)
}

func TestCartManagerIgnoresCorruptState(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, cartKey, []byte("{not json")))

	s := newCart(t, store).State()

	assert.Empty(t, s.Lines)
	assert.True(t, s.Total.IsZero())
}

func TestCartStateSummary(t *testing.T) {
	s := ReduceCart(model.CartState{}, AddLine{Line: line("3", "28.90", 2, "")})
	s = ReduceCart(s, AddLine{Line: line("11", "4.50", 1, "")})

	assert.Equal(t, 3, s.ItemCount())
	assert.Equal(t, "62.30", s.Total.StringFixed(2))
	assert.Equal(t, "6.23", s.ServiceFee().StringFixed(2))
	assert.Equal(t, "68.53", s.GrandTotal().StringFixed(2))
}

func TestCartManagerStoreFailureKeepsSavedCart(t *testing.T) {
	ctx := context.Background()
	base := storage.NewMemoryStore()
	saved := newCart(t, base)
	saved.Add(ctx, line("3", "28.90", 3, ""))
	saved.SetTable(ctx, "5")

	m, err := NewCartManager(ctx, &flakyStore{Store: base, failures: 1}, nil)
	require.Error(t, err)
	assert.Nil(t, m)

	got := newCart(t, base).State()
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 3, got.Lines[0].Quantity)
	assert.Equal(t, "5", got.TableNumber)
}

func TestCartManagerClearPersistsEmptyLines(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := newCart(t, store)
	m.Add(ctx, line("3", "28.90", 1, ""))

	m.Clear(ctx)

	raw, err := store.Get(ctx, cartKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lines":[]`)
}

func TestReduceCartSettleLines(t *testing.T) {
	s := ReduceCart(model.CartState{}, AddLine{Line: line("3", "28.90", 2, "")})
	placed := append([]model.CartLine(nil), s.Lines...)

	s = ReduceCart(s, AddLine{Line: line("3", "28.90", 1, "")})
	s = ReduceCart(s, AddLine{Line: line("11", "4.50", 1, "")})

	s = ReduceCart(s, settleLines{lines: placed})

	require.Len(t, s.Lines, 2)
	assert.Equal(t, "3", s.Lines[0].ItemID)
	assert.Equal(t, 1, s.Lines[0].Quantity)
	assert.Equal(t, "11", s.Lines[1].ItemID)
	assert.Equal(t, "33.40", s.Total.StringFixed(2))
}
