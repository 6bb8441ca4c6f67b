package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его id
func (f *TestDataFactory) CreateUser(t *testing.T, username, passwordHash, role string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3) RETURNING id`,
		username, passwordHash, role).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreatePackage создает тестовый пакет обучения и возвращает его id
func (f *TestDataFactory) CreatePackage(t *testing.T, name string, price float64, discordRoleID string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO packages (name, price, description, features, popular, discord_role_id, payment_link)
		VALUES ($1, $2, '', '["feature one", "feature two"]'::jsonb, false, $3, '') RETURNING id`,
		name, price, discordRoleID).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает запись в реестре подписок и возвращает её id
func (f *TestDataFactory) CreateSubscription(t *testing.T, orderID, paymentID, discordID string,
	productID *int, status string, startDate, endDate time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions
		(order_id, payment_id, discord_id, wallet_address, product_id, status, start_date, end_date)
		VALUES ($1, $2, $3, '', $4, $5, $6, $7) RETURNING id`,
		orderID, paymentID, discordID, productID, status, startDate, endDate).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateHero вставляет строку hero-блока
func (f *TestDataFactory) CreateHero(t *testing.T, title string) {
	_, err := f.storage.DB.Exec(`INSERT INTO hero_content
		(id, title, subtitle, description, whatsapp_number, discord_invite_link)
		VALUES (1, $1, '', '', '', '') ON CONFLICT (id) DO NOTHING`, title)
	require.NoError(t, err)
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifySubscriptionCount проверяет число записей в реестре по order_id
func (v *TestVerification) VerifySubscriptionCount(t *testing.T, orderID string, want int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM subscriptions WHERE order_id = $1", orderID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, want, count)
}

// VerifySubscriptionStatus проверяет статус и payment_id записи реестра
func (v *TestVerification) VerifySubscriptionStatus(t *testing.T, orderID, wantStatus, wantPaymentID string) {
	var status, paymentID string
	err := v.storage.DB.QueryRow("SELECT status, payment_id FROM subscriptions WHERE order_id = $1", orderID).
		Scan(&status, &paymentID)
	require.NoError(t, err)
	require.Equal(t, wantStatus, status)
	require.Equal(t, wantPaymentID, paymentID)
}

// VerifyPackageDeleted проверяет удаление пакета из БД
func (v *TestVerification) VerifyPackageDeleted(t *testing.T, packageID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM packages WHERE id = $1", packageID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	var storage *Storage
	for range 10 {
		storage, err = New(connStr, logger)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	// Схема повторяет migrations/000001_init.up.sql
	_, err = storage.DB.Exec(`
        CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'admin'
        );

        CREATE TABLE IF NOT EXISTS packages (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            price NUMERIC(10, 2) NOT NULL,
            description TEXT,
            features JSONB NOT NULL DEFAULT '[]'::jsonb,
            popular BOOLEAN NOT NULL DEFAULT false,
            discord_role_id TEXT,
            payment_link TEXT
        );

        CREATE TABLE IF NOT EXISTS features (
            id SERIAL PRIMARY KEY,
            icon TEXT NOT NULL,
            title TEXT NOT NULL,
            description TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS testimonials (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            role TEXT,
            content TEXT NOT NULL,
            rating INT NOT NULL DEFAULT 5
        );

        CREATE TABLE IF NOT EXISTS faqs (
            id SERIAL PRIMARY KEY,
            question TEXT NOT NULL,
            answer TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS hero_content (
            id INT PRIMARY KEY DEFAULT 1,
            title TEXT,
            subtitle TEXT,
            description TEXT,
            whatsapp_number TEXT,
            discord_invite_link TEXT
        );

        CREATE TABLE IF NOT EXISTS subscriptions (
            id SERIAL PRIMARY KEY,
            order_id TEXT NOT NULL UNIQUE,
            payment_id TEXT,
            discord_id TEXT,
            wallet_address TEXT,
            product_id INT REFERENCES packages(id) ON DELETE SET NULL,
            status TEXT NOT NULL,
            start_date TIMESTAMPTZ NOT NULL,
            end_date TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
    `)
	require.NoError(t, err, "Failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
