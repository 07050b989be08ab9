package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/config"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/models"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/repo"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/utils"
)

// UserStore is the credential store as the auth flows consume it.
// *repo.UserRepo is the production implementation.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (string, error)
	SetResetToken(ctx context.Context, userID string, pending *models.PendingToken) error
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (string, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

// Mailer delivers the verification and reset links. Implementations are
// expected to be slow; the service never calls them on the request path.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
	SendReset(ctx context.Context, email, token string) error
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users  UserStore
	mailer Mailer
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthService(users UserStore, mailer Mailer, cfg *config.Config, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Fullname        string
	Email           string
	PhoneNumber     string
	Password        string
	Role            string
	ProfilePhotoURL string
}

// Register creates an unverified user with a fresh verification token and
// dispatches the verification mail. It never logs the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if in.Fullname == "" || in.Email == "" || in.PhoneNumber == "" || in.Password == "" || in.Role == "" {
		return utils.ValidationError("Something is missing")
	}
	if !models.ValidRole(in.Role) {
		return utils.ValidationError("Invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Fullname:     in.Fullname,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
		Role:         in.Role,
		VerificationToken: &models.PendingToken{
			Value:     token,
			ExpiresAt: s.now().Add(s.cfg.VerificationTTL),
		},
		Profile: models.Profile{ProfilePhoto: in.ProfilePhotoURL},
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return utils.ConflictError("User already exists with this email")
		}
		return err
	}

	s.dispatchMail("verification email", user.Email, func(ctx context.Context) error {
		return s.mailer.SendVerification(ctx, user.Email, token)
	})
	return nil
}

// Login runs the credential gates in a fixed order; every gate is hard.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (string, *models.User, error) {
	if email == "" || password == "" || role == "" {
		return "", nil, utils.ValidationError("Something is missing")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, utils.NotFoundError("User does not exist")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, utils.AuthError("Incorrect password")
	}

	if role != user.Role {
		return "", nil, utils.ValidationError("Account does not exist with this role")
	}

	if !user.IsEmailVerified {
		return "", nil, utils.ForbiddenError("Please verify your email before login")
	}

	token, err := s.issueSession(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyEmail consumes a verification token. All failure causes collapse into
// one generic error so token state cannot be probed.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return utils.ValidationError("Verification link is invalid or expired")
	}

	if _, err := s.users.ConsumeVerificationToken(ctx, token, s.now()); err != nil {
		if errors.Is(err, repo.ErrNoConsumableToken) {
			return utils.ValidationError("Verification link is invalid or expired")
		}
		return err
	}
	return nil
}

// ForgotPassword issues a fresh reset token, replacing any pending one, and
// dispatches the reset mail.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return utils.ValidationError("Something is missing")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return utils.NotFoundError("User not found")
		}
		return err
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	pending := &models.PendingToken{
		Value:     token,
		ExpiresAt: s.now().Add(s.cfg.ResetTTL),
	}
	if err := s.users.SetResetToken(ctx, user.ID, pending); err != nil {
		return err
	}

	s.dispatchMail("reset email", user.Email, func(ctx context.Context) error {
		return s.mailer.SendReset(ctx, user.Email, token)
	})
	return nil
}

// ResetPassword exchanges a live reset token for a new password hash. A weak
// password is rejected before the token is consumed, so the link stays usable.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return utils.ValidationError("Reset link is invalid or expired")
	}

	if _, err := s.users.FindByResetToken(ctx, token, s.now()); err != nil {
		if errors.Is(err, repo.ErrNoConsumableToken) {
			return utils.ValidationError("Reset link is invalid or expired")
		}
		return err
	}

	if !StrongPassword(password) {
		return utils.ValidationError("Weak password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	if _, err := s.users.ConsumeResetToken(ctx, token, string(hash), s.now()); err != nil {
		if errors.Is(err, repo.ErrNoConsumableToken) {
			// Lost the race to a concurrent consumer.
			return utils.ValidationError("Reset link is invalid or expired")
		}
		return err
	}
	return nil
}

type UpdateProfileInput struct {
	Fullname           string
	Email              string
	PhoneNumber        string
	Bio                string
	Skills             []string
	ResumeURL          string
	ResumeOriginalName string
}

// UpdateProfile applies the non-empty fields to the owning user's record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NotFoundError("User not found")
		}
		return nil, err
	}

	if in.Fullname != "" {
		user.Fullname = in.Fullname
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.Bio != "" {
		user.Profile.Bio = in.Bio
	}
	if len(in.Skills) > 0 {
		user.Profile.Skills = in.Skills
	}
	if in.ResumeURL != "" {
		user.Profile.Resume = in.ResumeURL
		user.Profile.ResumeOriginalName = in.ResumeOriginalName
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueSession(userID string) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.cfg.SessionTTL)),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// dispatchMail fires the send on its own goroutine with a fresh timeout
// context. The triggering request's outcome is already decided; a failed send
// is logged and lost.
func (s *AuthService) dispatchMail(kind, email string, send func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SMTP.Timeout)
		defer cancel()
		if err := send(ctx); err != nil {
			s.logger.Error("mail dispatch failed", "kind", kind, "email", email, "error", err)
		}
	}()
}
