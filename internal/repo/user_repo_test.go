package repo

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/models"
)

func newMockRepo(t *testing.T) (*UserRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepo(mock, time.Second), mock
}

func sampleUser() *models.User {
	return &models.User{
		ID:           "3f1f8a52-7e54-4a38-9f6e-0a4f5b8f1c2d",
		Fullname:     "Priya Sharma",
		Email:        "priya@example.com",
		PhoneNumber:  "9876543210",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleStudent,
		VerificationToken: &models.PendingToken{
			Value:     "abc123",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		},
	}
}

func TestUserRepoCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts user", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(ctx, sampleUser()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrDuplicateEmail", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := repo.Create(ctx, sampleUser())
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserRepoGetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates pending tokens from column pairs", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		verifyExp := time.Now().Add(24 * time.Hour)
		now := time.Now()

		mock.ExpectQuery("FROM users WHERE email").
			WithArgs("priya@example.com").
			WillReturnRows(userRows().
				AddRow(
					"id-1", "Priya Sharma", "priya@example.com", "9876543210",
					"$2a$10$hash", models.RoleStudent, false,
					strPtr("abc123"), &verifyExp, nil, nil,
					"", []string{}, "", "", "", now, now,
				))

		user, err := repo.GetByEmail(ctx, "priya@example.com")
		require.NoError(t, err)
		assert.Equal(t, "id-1", user.ID)
		require.NotNil(t, user.VerificationToken)
		assert.Equal(t, "abc123", user.VerificationToken.Value)
		assert.Nil(t, user.ResetToken)
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("FROM users WHERE email").
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestConsumeVerificationToken(t *testing.T) {
	ctx := context.Background()

	t.Run("matching live token returns owner id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("UPDATE users").
			WithArgs("abc123", pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("id-1"))

		id, err := repo.ConsumeVerificationToken(ctx, "abc123", time.Now())
		require.NoError(t, err)
		assert.Equal(t, "id-1", id)
	})

	t.Run("consumed or expired token maps to ErrNoConsumableToken", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("UPDATE users").
			WithArgs("abc123", pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.ConsumeVerificationToken(ctx, "abc123", time.Now())
		assert.ErrorIs(t, err, ErrNoConsumableToken)
	})
}

func TestConsumeResetToken(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces hash and returns owner id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("UPDATE users").
			WithArgs("$2a$10$newhash", "tok", pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("id-1"))

		id, err := repo.ConsumeResetToken(ctx, "tok", "$2a$10$newhash", time.Now())
		require.NoError(t, err)
		assert.Equal(t, "id-1", id)
	})

	t.Run("raced consumption maps to ErrNoConsumableToken", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("UPDATE users").
			WithArgs("$2a$10$newhash", "tok", pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.ConsumeResetToken(ctx, "tok", "$2a$10$newhash", time.Now())
		assert.ErrorIs(t, err, ErrNoConsumableToken)
	})
}

func TestFindByResetToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("WHERE reset_password_token").
		WithArgs("tok", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByResetToken(context.Background(), "tok", time.Now())
	assert.ErrorIs(t, err, ErrNoConsumableToken)
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "fullname", "email", "phone_number", "password_hash", "role", "is_email_verified",
		"email_verification_token", "email_verification_expiry",
		"reset_password_token", "reset_password_expiry",
		"bio", "skills", "profile_photo_url", "resume_url", "resume_original_name",
		"created_at", "updated_at",
	})
}

func strPtr(s string) *string { return &s }
