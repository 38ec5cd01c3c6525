package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	_ "time/tzdata"

	"github.com/wudi/invoicekit/config"
	"github.com/wudi/invoicekit/invoice"
	"github.com/wudi/invoicekit/locale"
	"github.com/wudi/invoicekit/model"
)

var (
	_ invoice.StoreScope     = (*Registry)(nil)
	_ invoice.Settings       = (*Registry)(nil)
	_ invoice.StoreDirectory = (*Registry)(nil)
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry([]config.Store{
		{ID: "default", Name: "Main", Logo: "logo/main.png", Address: []string{"Main Store"}},
		{ID: "de", Locale: "de-DE", Timezone: "Europe/Berlin", Logo: "/abs/logo.png",
			PutOrderIDInvoice: config.Bool(false)},
	}, "/srv/media")
	require.NoError(t, err)
	return r
}

func TestRegistry_Views(t *testing.T) {
	r := testRegistry(t)
	assert.Equal(t, []string{"default", "de"}, r.IDs())

	de, ok := r.View("de")
	require.True(t, ok)
	assert.Equal(t, language.MustParse("de-DE"), de.Tag)
	assert.Equal(t, "Europe/Berlin", de.Location.String())

	def, _ := r.View("default")
	assert.Equal(t, language.AmericanEnglish, def.Tag)
	assert.Equal(t, time.UTC, def.Location)
}

func TestRegistry_Profile(t *testing.T) {
	r := testRegistry(t)

	p, ok := r.Profile("default")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/srv/media", "logo/main.png"), p.Logo)
	assert.Equal(t, []string{"Main Store"}, p.Address)

	p, _ = r.Profile("de")
	assert.Equal(t, "/abs/logo.png", p.Logo)

	_, ok = r.Profile("missing")
	assert.False(t, ok)
}

func TestRegistry_PutOrderID(t *testing.T) {
	r := testRegistry(t)
	assert.True(t, r.PutOrderID("default", model.KindInvoice))
	assert.True(t, r.PutOrderID("default", model.KindShipment))
	assert.False(t, r.PutOrderID("de", model.KindInvoice))
	assert.True(t, r.PutOrderID("de", model.KindShipment))
	assert.True(t, r.PutOrderID("missing", model.KindInvoice))
}

func TestRegistry_Scope(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	assert.Equal(t, "", r.Current())
	require.NoError(t, r.Enter(ctx, "default"))
	require.NoError(t, r.Enter(ctx, "de"))
	assert.Equal(t, "de", r.Current())
	r.Exit()
	assert.Equal(t, "default", r.Current())
	r.Exit()
	assert.Equal(t, "", r.Current())
	r.Exit()
	assert.Equal(t, "", r.Current())

	err := r.Enter(ctx, "missing")
	assert.ErrorIs(t, err, ErrUnknownStore)
	assert.Equal(t, "", r.Current())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, r.Enter(cancelled, "default"), context.Canceled)
}

func TestRegistry_ConcurrentScopes(t *testing.T) {
	r := testRegistry(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Enter(context.Background(), "default"); err == nil {
				r.Exit()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, "", r.Current())
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry([]config.Store{
		{ID: "a", Locale: "not a locale!"},
		{ID: "b", Timezone: "Mars/Olympus"},
		{ID: "c"},
		{ID: "c"},
	}, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "store a: locale")
	assert.ErrorContains(t, err, "store b: timezone")
	assert.ErrorContains(t, err, "store c: duplicate id")
}

func TestRegistry_LocaleOptions(t *testing.T) {
	r := testRegistry(t)
	f := locale.New(r.LocaleOptions()...)
	ts := time.Date(2024, time.January, 1, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, "Jan 1, 2024", f.FormatDate(ts, "default", locale.DateMedium))
	// 00:30 UTC is 01:30 in Berlin, still the same day.
	assert.Equal(t, "1/1/24", f.FormatDate(ts, "de", locale.DateShort))
	late := time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "1/2/24", f.FormatDate(late, "de", locale.DateShort))
}
