package settings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS site_settings (
  id INTEGER PRIMARY KEY,
  site_name TEXT NOT NULL,
  site_name_en TEXT,
  contact_email TEXT NOT NULL,
  contact_phone TEXT,
  whatsapp_number TEXT,
  instagram_url TEXT,
  facebook_url TEXT,
  telegram_url TEXT,
  default_locale TEXT NOT NULL DEFAULT 'ar',
  default_booking_price NUMERIC NOT NULL DEFAULT 0,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM site_settings").Error)
	return db
}

func newSettingsService(t *testing.T) Service {
	t.Helper()

	db := setupSettingsTestDB(t)
	svc, err := NewService(NewRepository(db), Defaults{
		SiteName:      "نت ويف",
		ContactEmail:  "info@netwave-iq.com",
		DefaultLocale: "ar",
		BookingPrice:  decimal.NewFromInt(50000),
	})
	require.NoError(t, err)
	return svc
}

func TestGetReturnsDefaultsBeforeFirstSave(t *testing.T) {
	svc := newSettingsService(t)

	row, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "نت ويف", row.SiteName)
	assert.Equal(t, "info@netwave-iq.com", row.ContactEmail)
	assert.Equal(t, "ar", row.DefaultLocale)
	assert.True(t, row.DefaultBookingPrice.Equal(decimal.NewFromInt(50000)))
}

func TestUpdateUpsertsSingleRow(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	phone := "+9647901234567"
	first, err := svc.Update(ctx, UpdateInput{
		SiteName:            "نت ويف للتسويق",
		ContactEmail:        "hello@netwave-iq.com",
		ContactPhone:        &phone,
		DefaultLocale:       "ar",
		DefaultBookingPrice: decimal.NewFromInt(75000),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := svc.Update(ctx, UpdateInput{
		SiteName:            "نت ويف",
		ContactEmail:        "hello@netwave-iq.com",
		DefaultLocale:       "en",
		DefaultBookingPrice: decimal.NewFromInt(60000),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.ID)

	row, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "نت ويف", row.SiteName)
	assert.Equal(t, "en", row.DefaultLocale)
	assert.True(t, row.DefaultBookingPrice.Equal(decimal.NewFromInt(60000)))
}

func TestUpdateRejectsNonPositivePrice(t *testing.T) {
	svc := newSettingsService(t)

	_, err := svc.Update(context.Background(), UpdateInput{
		SiteName:            "نت ويف",
		ContactEmail:        "hello@netwave-iq.com",
		DefaultLocale:       "ar",
		DefaultBookingPrice: decimal.Zero,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestPublicOmitsBookingPrice(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, UpdateInput{
		SiteName:            "نت ويف",
		ContactEmail:        "hello@netwave-iq.com",
		DefaultLocale:       "ar",
		DefaultBookingPrice: decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	public, err := svc.Public(ctx)
	require.NoError(t, err)
	assert.Equal(t, "نت ويف", public.SiteName)
	assert.Equal(t, "hello@netwave-iq.com", public.ContactEmail)
}

func TestDefaultBookingPriceFallsBack(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	price, err := svc.DefaultBookingPrice(ctx)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(50000)))

	_, err = svc.Update(ctx, UpdateInput{
		SiteName:            "نت ويف",
		ContactEmail:        "hello@netwave-iq.com",
		DefaultLocale:       "ar",
		DefaultBookingPrice: decimal.NewFromInt(90000),
	})
	require.NoError(t, err)

	price, err = svc.DefaultBookingPrice(ctx)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(90000)))
}
