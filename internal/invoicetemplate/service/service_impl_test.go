package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/invoicer/internal/clock"
	"github.com/smallbiznis/invoicer/internal/invoicetemplate/domain"
	"github.com/smallbiznis/invoicer/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() domain.Service {
	return New(ServiceParam{
		Store: kvstore.NewMemoryStore(),
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Log:   zap.NewNop(),
	})
}

func TestSaveListGetDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	id, err := svc.Save(ctx, domain.Template{
		Name:          "Retainer client",
		SenderCompany: "AGS Indonesia",
		BankName:      "BCA",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	templates, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Retainer client", templates[0].Name)

	tpl, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, tpl)
	assert.Equal(t, "BCA", tpl.BankName)

	require.NoError(t, svc.Delete(ctx, id))
	tpl, err = svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, tpl)
}

func TestSaveRequiresName(t *testing.T) {
	svc := newTestService()
	_, err := svc.Save(context.Background(), domain.Template{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
}
