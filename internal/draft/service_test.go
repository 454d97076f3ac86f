package draft

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/invoicer/internal/config"
	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/smallbiznis/invoicer/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(debounce time.Duration) (Service, kvstore.Store) {
	store := kvstore.NewMemoryStore()
	cfg := config.DefaultInvoiceConfig()
	cfg.DraftDebounce = debounce
	svc := New(nil, ServiceParam{
		Store:  store,
		Holder: config.NewStaticInvoiceConfigHolder(cfg),
		Log:    zap.NewNop(),
	})
	return svc, store
}

func draftInvoice(recipient string) invoicedomain.Invoice {
	return invoicedomain.Invoice{
		RecipientCompany: recipient,
		Currency:         "IDR",
		TaxMode:          invoicedomain.TaxModePercentage,
	}
}

func TestSaveNowAndLoad(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.SaveNow(ctx, draftInvoice("Acme Corp")))

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Acme Corp", loaded.RecipientCompany)
}

func TestLoadAbsentReturnsNil(t *testing.T) {
	svc, _ := newTestService(time.Hour)

	loaded, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadCorruptReturnsNil(t *testing.T) {
	svc, store := newTestService(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, kvstore.KeyDraft, []byte("{broken")))

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaveDebouncesRapidEdits(t *testing.T) {
	svc, store := newTestService(40 * time.Millisecond)
	ctx := context.Background()

	svc.Save(ctx, draftInvoice("A"))
	svc.Save(ctx, draftInvoice("AB"))
	svc.Save(ctx, draftInvoice("ABC"))

	// Nothing is written inside the debounce window.
	_, ok, err := store.Get(ctx, kvstore.KeyDraft)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Eventually(t, func() bool {
		loaded, err := svc.Load(ctx)
		return err == nil && loaded != nil && loaded.RecipientCompany == "ABC"
	}, time.Second, 10*time.Millisecond)
}

func TestFlushWritesPendingImmediately(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	ctx := context.Background()

	svc.Save(ctx, draftInvoice("Pending"))
	require.NoError(t, svc.Flush(ctx))

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Pending", loaded.RecipientCompany)

	// A second flush with nothing pending is a no-op.
	require.NoError(t, svc.Flush(ctx))
}

func TestClearCancelsPendingWrite(t *testing.T) {
	svc, store := newTestService(30 * time.Millisecond)
	ctx := context.Background()

	svc.Save(ctx, draftInvoice("Doomed"))
	require.NoError(t, svc.Clear(ctx))

	time.Sleep(80 * time.Millisecond)

	_, ok, err := store.Get(ctx, kvstore.KeyDraft)
	require.NoError(t, err)
	assert.False(t, ok)
}
