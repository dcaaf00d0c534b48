package grid_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compras-grid/internal/application/grid"
	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func fixtureCatalog() []entity.Product {
	return []entity.Product{
		{ID: "p1", Code: "CEM-50", Name: "أسمنت بورتلاندي", Price: d("22.5"), Quantity: d("400"), Unit: "كيس", Category: "مواد بناء"},
		{ID: "p2", Code: "STL-12", Name: "حديد تسليح 12 مم", Price: d("310"), Quantity: d("80"), Unit: "طن", Category: "حديد"},
		{ID: "p3", Code: "PNT-W", Name: "Paint White", Price: d("45"), Quantity: d("60"), Unit: "جالون", Category: "دهانات"},
		{ID: "p4", Code: "W1", Name: "Widget", Price: d("10"), Quantity: d("5"), Unit: "قطعة", Category: "Hardware"},
		{ID: "p5", Code: "HW-PAINTER", Name: "Brush", Price: d("7"), Quantity: d("20"), Unit: "قطعة", Category: "دهانات"},
		{ID: "p6", Code: "NL-2", Name: "مسامير 2 بوصة", Price: d("3.25"), Quantity: d("1000"), Unit: "علبة", Category: "Hardware"},
		{ID: "p7", Code: "NL-3", Name: "مسامير 3 بوصة", Price: d("3.75"), Quantity: d("900"), Unit: "علبة", Category: "Hardware"},
	}
}

type recordingNotifier struct {
	events []grid.Notification
}

func (r *recordingNotifier) Notify(n grid.Notification) { r.events = append(r.events, n) }

func (r *recordingNotifier) last() grid.Notification {
	if len(r.events) == 0 {
		return grid.Notification{}
	}
	return r.events[len(r.events)-1]
}

type fakeSaver struct {
	saved []*entity.Invoice
	err   error
}

func (f *fakeSaver) SaveInvoice(_ context.Context, inv *entity.Invoice) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, inv)
	return nil
}

type fixture struct {
	s        *grid.Session
	notifier *recordingNotifier
	saver    *fakeSaver
}

func newFixture(t *testing.T, prefill ...entity.LineItemPatch) fixture {
	t.Helper()
	n := &recordingNotifier{}
	sv := &fakeSaver{}
	s, err := grid.NewSession(grid.Options{
		Catalog:  fixtureCatalog(),
		Saver:    sv,
		Notifier: n,
		Prefill:  prefill,
	})
	require.NoError(t, err)
	return fixture{s: s, notifier: n, saver: sv}
}

func named(name string) entity.LineItemPatch {
	return entity.LineItemPatch{Name: ptr(name), Price: ptr(d("10"))}
}
