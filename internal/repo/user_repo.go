package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrNoConsumableToken covers every failed token lookup: never issued,
	// expired, or already consumed. Callers must not distinguish the three.
	ErrNoConsumableToken = errors.New("no consumable token")
)

// Querier is the subset of pgxpool.Pool the repository uses. pgxmock
// satisfies it as well.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepo struct {
	db      Querier
	timeout time.Duration
}

func NewUserRepo(db Querier, timeout time.Duration) *UserRepo {
	return &UserRepo{db: db, timeout: timeout}
}

const userColumns = `id, fullname, email, phone_number, password_hash, role, is_email_verified,
	email_verification_token, email_verification_expiry,
	reset_password_token, reset_password_expiry,
	bio, skills, profile_photo_url, resume_url, resume_original_name,
	created_at, updated_at`

// Create inserts a new unverified user, verification token included, as a
// single write. The unique index on email arbitrates concurrent registrations
// racing on the same address.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	token, expiry := tokenFields(user.VerificationToken)
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (
			id, fullname, email, phone_number, password_hash, role, is_email_verified,
			email_verification_token, email_verification_expiry,
			bio, skills, profile_photo_url, resume_url, resume_original_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		user.ID,
		user.Fullname,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.Role,
		user.IsEmailVerified,
		token,
		expiry,
		user.Profile.Bio,
		user.Profile.Skills,
		user.Profile.ProfilePhoto,
		user.Profile.Resume,
		user.Profile.ResumeOriginalName,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row, "get user by email")
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, "get user by id")
}

// ConsumeVerificationToken flips is_email_verified and clears the token pair
// in one conditional UPDATE. Only rows holding the exact token with an
// unexpired window match, so at most one concurrent caller succeeds; everyone
// else gets ErrNoConsumableToken.
func (r *UserRepo) ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET is_email_verified = TRUE,
		    email_verification_token = NULL,
		    email_verification_expiry = NULL,
		    updated_at = NOW()
		WHERE email_verification_token = $1 AND email_verification_expiry > $2
		RETURNING id
	`, token, now)

	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoConsumableToken
		}
		return "", fmt.Errorf("consume verification token: %w", err)
	}
	return id, nil
}

// SetResetToken overwrites any pending reset token for the user.
func (r *UserRepo) SetResetToken(ctx context.Context, userID string, pending *models.PendingToken) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	token, expiry := tokenFields(pending)
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = $1, reset_password_expiry = $2, updated_at = NOW()
		WHERE id = $3
	`, token, expiry, userID)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// FindByResetToken looks up the holder of a live reset token without
// consuming it. Used so a weak replacement password can be rejected while the
// token stays valid.
func (r *UserRepo) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_password_token = $1 AND reset_password_expiry > $2
	`, token, now)

	user, err := scanUser(row, "find by reset token")
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoConsumableToken
	}
	return user, err
}

// ConsumeResetToken replaces the password hash and clears the reset pair in
// one conditional UPDATE, making the token single-use under concurrency.
func (r *UserRepo) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $1,
		    reset_password_token = NULL,
		    reset_password_expiry = NULL,
		    updated_at = NOW()
		WHERE reset_password_token = $2 AND reset_password_expiry > $3
		RETURNING id
	`, passwordHash, token, now)

	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoConsumableToken
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return id, nil
}

// UpdateProfile persists the mutable profile fields plus contact details.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET fullname = $1, email = $2, phone_number = $3,
		    bio = $4, skills = $5,
		    resume_url = $6, resume_original_name = $7,
		    updated_at = NOW()
		WHERE id = $8
	`,
		user.Fullname,
		user.Email,
		user.PhoneNumber,
		user.Profile.Bio,
		user.Profile.Skills,
		user.Profile.Resume,
		user.Profile.ResumeOriginalName,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row, op string) (*models.User, error) {
	var (
		user        models.User
		verifyToken *string
		verifyExp   *time.Time
		resetToken  *string
		resetExp    *time.Time
	)
	if err := row.Scan(
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Role,
		&user.IsEmailVerified,
		&verifyToken,
		&verifyExp,
		&resetToken,
		&resetExp,
		&user.Profile.Bio,
		&user.Profile.Skills,
		&user.Profile.ProfilePhoto,
		&user.Profile.Resume,
		&user.Profile.ResumeOriginalName,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.VerificationToken = pendingToken(verifyToken, verifyExp)
	user.ResetToken = pendingToken(resetToken, resetExp)
	return &user, nil
}

func pendingToken(value *string, expiry *time.Time) *models.PendingToken {
	if value == nil || expiry == nil {
		return nil
	}
	return &models.PendingToken{Value: *value, ExpiresAt: *expiry}
}

func tokenFields(pending *models.PendingToken) (*string, *time.Time) {
	if pending == nil {
		return nil, nil
	}
	return &pending.Value, &pending.ExpiresAt
}
