package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/crypto-academy/internal/models"
)

func TestStorage_UpsertSubscription_Idempotency(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	packageID := factory.CreatePackage(t, "VIP", 99.0, "1190000000000000001")

	ctx := context.Background()
	startDate := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	first := models.Subscription{
		OrderID:       "order-10042",
		PaymentID:     "payment-1",
		DiscordID:     "280926659550320657",
		WalletAddress: "TVnPnK1kWkdCZT2rX9ANfjZbksFkyxK6Wu",
		ProductID:     &packageID,
		Status:        models.SubscriptionStatusActive,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, 30),
	}

	firstID, err := storage.UpsertSubscription(ctx, first)
	require.NoError(t, err)
	require.NotZero(t, firstID)

	// Повторная доставка того же заказа: другой payment_id и новое окно доступа
	second := first
	second.PaymentID = "payment-2"
	second.EndDate = startDate.AddDate(0, 0, 60)

	secondID, err := storage.UpsertSubscription(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	verification := NewTestVerification(storage)
	verification.VerifySubscriptionCount(t, "order-10042", 1)
	verification.VerifySubscriptionStatus(t, "order-10042", models.SubscriptionStatusActive, "payment-2")

	got, err := storage.GetSubscriptionByOrderID(ctx, "order-10042")
	require.NoError(t, err)
	assert.True(t, got.EndDate.Equal(startDate.AddDate(0, 0, 60)))
	assert.Equal(t, "280926659550320657", got.DiscordID)
	require.NotNil(t, got.ProductID)
	assert.Equal(t, packageID, *got.ProductID)
}

func TestStorage_GetSubscriptionByOrderID_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	got, err := storage.GetSubscriptionByOrderID(context.Background(), "missing-order")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Nil(t, got)
}

func TestStorage_DeletePackage_KeepsLedgerRow(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	packageID := factory.CreatePackage(t, "VIP", 99.0, "1190000000000000001")

	startDate := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	factory.CreateSubscription(t, "order-10042", "payment-1", "280926659550320657",
		&packageID, models.SubscriptionStatusActive, startDate, startDate.AddDate(0, 0, 30))

	ctx := context.Background()

	n, err := storage.DeletePackage(ctx, packageID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	verification := NewTestVerification(storage)
	verification.VerifyPackageDeleted(t, packageID)
	verification.VerifySubscriptionCount(t, "order-10042", 1)

	got, err := storage.GetSubscriptionByOrderID(ctx, "order-10042")
	require.NoError(t, err)
	assert.Nil(t, got.ProductID, "subscription must survive package deletion with product_id = NULL")
}

func TestStorage_EnsureDefaultAdmin(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	created, err := storage.EnsureDefaultAdmin(ctx, "admin", "hashedpassword")
	require.NoError(t, err)
	assert.True(t, created)

	// Повторный вызов не создаёт дубликат и не трогает существующий хэш
	created, err = storage.EnsureDefaultAdmin(ctx, "admin", "otherhash")
	require.NoError(t, err)
	assert.False(t, created)

	got, err := storage.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hashedpassword", got.PasswordHash)
	assert.Equal(t, "admin", got.Role)
}

func TestStorage_GetUserByUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
		setup    func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:     "successful get user by username",
			username: "admin",
			wantErr:  false,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "admin", "hashedpassword", "admin")
			},
		},
		{
			name:     "get non-existing user",
			username: "nonexistent",
			wantErr:  true,
			setup:    func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.GetUserByUsername(context.Background(), tt.username)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNotFound))
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "admin", got.Username)
			assert.Equal(t, "hashedpassword", got.PasswordHash)
			assert.Equal(t, "admin", got.Role)
		})
	}
}

func TestStorage_UpdatePasswordHash(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := factory.CreateUser(t, "admin", "oldhash", "admin")

	ctx := context.Background()

	err := storage.UpdatePasswordHash(ctx, userID, "newhash")
	require.NoError(t, err)

	got, err := storage.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)

	err = storage.UpdatePasswordHash(ctx, 9999, "whatever")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStorage_PackageCRUD(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	pkg := models.Package{
		Name:          "VIP",
		Price:         99.99,
		Description:   "Полный доступ",
		Features:      []string{"Сигналы", "Закрытый чат"},
		Popular:       true,
		DiscordRoleID: "1190000000000000001",
		PaymentLink:   "https://nowpayments.io/payment/?iid=42",
	}

	id, err := storage.CreatePackage(ctx, pkg)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := storage.GetPackageByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, pkg.Name, got.Name)
	assert.InDelta(t, pkg.Price, got.Price, 0.001)
	assert.Equal(t, pkg.Features, got.Features)
	assert.True(t, got.Popular)
	assert.Equal(t, pkg.DiscordRoleID, got.DiscordRoleID)

	pkg.Name = "VIP Plus"
	pkg.Features = append(pkg.Features, "Личный разбор")
	n, err := storage.UpdatePackage(ctx, id, pkg)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := storage.ListPackages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "VIP Plus", list[0].Name)
	assert.Len(t, list[0].Features, 3)

	n, err = storage.UpdatePackage(ctx, 9999, pkg)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStorage_PackageWithLegacyFeaturesColumn(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	// Строка, заполненная до перехода на jsonb-массив: в колонке лежит
	// json-строка с сериализованным списком, а не сам массив
	var legacyID int
	err := storage.DB.QueryRow(`INSERT INTO packages
		(name, price, description, features, popular, discord_role_id, payment_link)
		VALUES ('Legacy', 49.0, '', to_jsonb($1::text), false, '', '') RETURNING id`,
		`["signals", "chat"]`).Scan(&legacyID)
	require.NoError(t, err)

	factory := NewTestDataFactory(storage)
	healthyID := factory.CreatePackage(t, "VIP", 99.0, "1190000000000000001")

	got, err := storage.GetPackageByID(ctx, legacyID)
	require.NoError(t, err)
	assert.Equal(t, "Legacy", got.Name)
	assert.Empty(t, got.Features)

	// Список пакетов не падает из-за одной проблемной строки
	list, err := storage.ListPackages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, p := range list {
		switch p.ID {
		case legacyID:
			assert.Empty(t, p.Features)
		case healthyID:
			assert.Equal(t, []string{"feature one", "feature two"}, p.Features)
		}
	}
}

func TestStorage_CheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, CheckDatabaseReady(storage))

	_, err := storage.DB.Exec(`DROP TABLE subscriptions`)
	require.NoError(t, err)

	err = CheckDatabaseReady(storage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscriptions")
}

func TestStorage_GetPackageByID_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	got, err := storage.GetPackageByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Nil(t, got)
}

func TestStorage_HeroContent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	_, err := storage.GetHeroContent(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	seed := models.HeroContent{
		Title:             "Crypto Academy",
		Subtitle:          "Трейдинг с нуля",
		Description:       "Обучение и сигналы",
		WhatsappNumber:    "+10000000000",
		DiscordInviteLink: "https://discord.gg/example",
	}
	require.NoError(t, storage.EnsureDefaultHero(ctx, seed))

	// Повторный посев не перезаписывает существующие тексты
	other := seed
	other.Title = "Another Title"
	require.NoError(t, storage.EnsureDefaultHero(ctx, other))

	got, err := storage.GetHeroContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Crypto Academy", got.Title)
	assert.Equal(t, 1, got.ID)

	updated := seed
	updated.Title = "Crypto Academy 2.0"
	require.NoError(t, storage.UpdateHeroContent(ctx, updated))

	got, err = storage.GetHeroContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Crypto Academy 2.0", got.Title)
}

func TestStorage_FeatureCRUD(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateFeature(ctx, models.Feature{
		Icon:        "chart",
		Title:       "Сигналы",
		Description: "Точки входа и выхода",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	n, err := storage.UpdateFeature(ctx, id, models.Feature{
		Icon:        "chart-up",
		Title:       "Сигналы 24/7",
		Description: "Точки входа и выхода",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := storage.ListFeatures(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Сигналы 24/7", list[0].Title)

	n, err = storage.DeleteFeature(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err = storage.ListFeatures(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStorage_ContextCancellation(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.GetUserByUsername(ctx, "admin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = storage.UpsertSubscription(ctx, models.Subscription{OrderID: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
