package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/email"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const (
	DefaultVerificationCodeTTL = 24 * time.Hour
	DefaultResetCodeTTL        = time.Hour

	verifyEmailPath   = "/auth/verify_email/"
	resetPasswordPath = "/auth/reset_password/"
)

// Notifier delivers templated messages. *email.Mailer implements it.
type Notifier interface {
	Send(ctx context.Context, name email.Template, to email.Address, data email.LinkData) error
}

// AccountService implements the credential workflow: registration, email
// verification, login and password reset.
type AccountService struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Tokens   *TokenService
	Notifier Notifier

	VerificationCodeTTL time.Duration
	ResetCodeTTL        time.Duration

	// AllowedOrigins restricts the frontend base URLs used in emailed links.
	// Empty allows any http(s) origin.
	AllowedOrigins []string

	// Now defaults to time.Now.
	Now func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Country      *string
	Image        *string
	FrontBaseURL string
}

// LoginResult is a successful login.
type LoginResult struct {
	Account   domain.Account
	Token     string
	ExpiresAt time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register creates an unverified account and emails it a verification link.
// If the email cannot be sent the account is removed again.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	addr, err := email.ParseAddress(in.Email)
	if err != nil {
		log.Warn("registration with invalid email")
		return domain.Account{}, ErrInvalidEmail
	}
	if in.Password == "" {
		return domain.Account{}, ErrInvalidPassword
	}
	base, err := s.frontendBase(in.FrontBaseURL)
	if err != nil {
		log.Warn("registration with invalid frontend base url", slog.String("base_url", in.FrontBaseURL))
		return domain.Account{}, err
	}

	// 2. Hash the password with a fresh salt
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 3. Mint the verification code
	now := s.now()
	raw, code, err := s.newCode("", domain.CodePurposeVerification, now)
	if err != nil {
		log.Error("failed to generate verification code", slog.Any("error", err))
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:           idx.NewAt(now).String(),
		Email:        addr.String(),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Country:      in.Country,
		Image:        in.Image,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	code.AccountID = account.ID

	// 4. Store account and code together
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			return err
		}
		return tx.Codes().CreateCode(ctx, code)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration with taken email")
			return domain.Account{}, ErrEmailTaken
		}
		log.Error("failed to create account", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 5. Send the verification link, undoing the registration on failure
	err = s.Notifier.Send(ctx, email.TemplateVerifyEmail, addr, email.LinkData{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Link:      base + verifyEmailPath + raw,
	})
	if err != nil {
		log.Error("failed to send verification email",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		// The request may already be cancelled; the undo must still run
		if delErr := s.Store.Accounts().DeleteAccount(context.WithoutCancel(ctx), account.ID); delErr != nil {
			log.Error("failed to remove account after notification failure",
				slog.String("account_id", account.ID),
				slog.Any("error", delErr),
			)
		}
		return domain.Account{}, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	log.Info("account registered", slog.String("account_id", account.ID))
	return account, nil
}

// VerifyEmail consumes a verification code and marks its account verified.
// A code works once.
func (s *AccountService) VerifyEmail(ctx context.Context, rawCode string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	rawCode = strings.TrimSpace(rawCode)
	if rawCode == "" {
		return domain.Account{}, ErrInvalidCode
	}

	now := s.now()
	var account domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Delete the code; zero rows means unknown, used or expired
		accountID, err := tx.Codes().ConsumeCode(ctx, cryptox.FingerprintToken(rawCode), domain.CodePurposeVerification, now)
		if err != nil {
			return err
		}

		// 2. Flip the flag
		account, err = tx.Accounts().MarkVerified(ctx, accountID, now)
		if err != nil {
			return err
		}

		// 3. Any other verification codes are now pointless
		_, err = tx.Codes().DeleteCodesForAccount(ctx, accountID, domain.CodePurposeVerification)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("email verification with invalid code")
			return domain.Account{}, ErrInvalidCode
		}
		log.Error("failed to verify email", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("email verified", slog.String("account_id", account.ID))
	return account, nil
}

// Login checks credentials and issues a token. Unknown emails and wrong
// passwords are indistinguishable; the verification state is only reported
// to callers that supplied the right password.
func (s *AccountService) Login(ctx context.Context, rawEmail, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the account, burning the same hashing time when absent
	addr, err := email.ParseAddress(rawEmail)
	if err != nil {
		s.burnVerify(password)
		return LoginResult{}, ErrInvalidCredentials
	}
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, addr.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.burnVerify(password)
			log.Warn("login for unknown email")
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return LoginResult{}, err
	}

	// 2. Verify the password
	if err := s.Hasher.Verify(password, account.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash is unreadable",
				slog.String("account_id", account.ID),
				slog.Any("error", err),
			)
		} else {
			log.Warn("login with wrong password", slog.String("account_id", account.ID))
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	// 3. Require a verified email
	if !account.IsVerified {
		log.Warn("login before email verification", slog.String("account_id", account.ID))
		return LoginResult{}, ErrEmailNotVerified
	}

	// 4. Upgrade legacy or outdated hashes while the plaintext is at hand
	now := s.now()
	if s.Hasher.NeedsRehash(account.PasswordHash) {
		hash, err := s.Hasher.Hash(password)
		if err != nil {
			log.Warn("failed to rehash password",
				slog.String("account_id", account.ID),
				slog.Any("error", err),
			)
		} else if updated, err := s.Store.Accounts().UpdatePasswordHash(ctx, account.ID, hash, now); err != nil {
			log.Warn("failed to upgrade password hash",
				slog.String("account_id", account.ID),
				slog.Any("error", err),
			)
		} else {
			account = updated
			log.Info("password hash upgraded", slog.String("account_id", account.ID))
		}
	}

	// 5. Issue the token
	token, claims, err := s.Tokens.Issue(account, now)
	if err != nil {
		log.Error("failed to sign token", slog.Any("error", err))
		return LoginResult{}, err
	}

	log.Info("login succeeded", slog.String("account_id", account.ID))
	return LoginResult{
		Account:   account,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// RequestPasswordReset emails a reset link to the account owning rawEmail.
func (s *AccountService) RequestPasswordReset(ctx context.Context, rawEmail, frontBaseURL string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	addr, err := email.ParseAddress(rawEmail)
	if err != nil {
		return domain.Account{}, ErrInvalidEmail
	}
	base, err := s.frontendBase(frontBaseURL)
	if err != nil {
		log.Warn("reset request with invalid frontend base url", slog.String("base_url", frontBaseURL))
		return domain.Account{}, err
	}

	// 2. Find the account
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, addr.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("reset request for unknown email")
			return domain.Account{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 3. Mint and store the reset code
	raw, code, err := s.newCode(account.ID, domain.CodePurposePasswordReset, s.now())
	if err != nil {
		log.Error("failed to generate reset code", slog.Any("error", err))
		return domain.Account{}, err
	}
	if err := s.Store.Codes().CreateCode(ctx, code); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between the lookup and the insert.
			return domain.Account{}, ErrInvalidCredentials
		}
		log.Error("failed to store reset code", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 4. Send the link, dropping the code if it never reached the user
	err = s.Notifier.Send(ctx, email.TemplateResetPassword, addr, email.LinkData{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Link:      base + resetPasswordPath + raw,
	})
	if err != nil {
		log.Error("failed to send reset email",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		if delErr := s.Store.Codes().DeleteCode(context.WithoutCancel(ctx), code.ID); delErr != nil {
			log.Error("failed to remove undelivered reset code", slog.Any("error", delErr))
		}
		return domain.Account{}, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	log.Info("password reset requested", slog.String("account_id", account.ID))
	return account, nil
}

// ResetPassword consumes a reset code and replaces the account's password.
func (s *AccountService) ResetPassword(ctx context.Context, rawCode, newPassword string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	rawCode = strings.TrimSpace(rawCode)
	if rawCode == "" {
		return domain.Account{}, ErrInvalidCode
	}
	if newPassword == "" {
		return domain.Account{}, ErrInvalidPassword
	}

	// 1. Hash outside the transaction; it is the slow part
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	now := s.now()
	var account domain.Account
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. Consume the code
		accountID, err := tx.Codes().ConsumeCode(ctx, cryptox.FingerprintToken(rawCode), domain.CodePurposePasswordReset, now)
		if err != nil {
			return err
		}

		// 3. Replace the hash
		account, err = tx.Accounts().UpdatePasswordHash(ctx, accountID, hash, now)
		if err != nil {
			return err
		}

		// 4. Invalidate other outstanding reset links
		_, err = tx.Codes().DeleteCodesForAccount(ctx, accountID, domain.CodePurposePasswordReset)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("password reset with invalid code")
			return domain.Account{}, ErrInvalidCode
		}
		log.Error("failed to reset password", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("password reset", slog.String("account_id", account.ID))
	return account, nil
}

// newCode returns the raw code to email and the record to store.
func (s *AccountService) newCode(
	accountID string,
	purpose domain.CodePurpose,
	now time.Time,
) (string, domain.OneTimeCode, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.OneTimeCode{}, err
	}

	ttl := s.ResetCodeTTL
	if ttl <= 0 {
		ttl = DefaultResetCodeTTL
	}
	if purpose == domain.CodePurposeVerification {
		ttl = s.VerificationCodeTTL
		if ttl <= 0 {
			ttl = DefaultVerificationCodeTTL
		}
	}

	return raw, domain.OneTimeCode{
		ID:        idx.NewAt(now).String(),
		CodeHash:  cryptox.FingerprintToken(raw),
		AccountID: accountID,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// frontendBase validates the base URL that emailed links point at and strips
// any trailing slash.
func (s *AccountService) frontendBase(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidBaseURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidBaseURL
	}
	if u.User != nil || u.RawQuery != "" || u.Fragment != "" {
		return "", ErrInvalidBaseURL
	}

	if len(s.AllowedOrigins) > 0 {
		origin := strings.ToLower(u.Scheme + "://" + u.Host)
		if !slices.ContainsFunc(s.AllowedOrigins, func(o string) bool {
			return strings.EqualFold(strings.TrimRight(o, "/"), origin)
		}) {
			return "", ErrInvalidBaseURL
		}
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// burnVerify spends the time of a real password check so that unknown
// accounts take as long to reject as wrong passwords.
func (s *AccountService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash(cryptox.MustGenerateToken(cryptox.TokenSize128))
	})
	_ = s.Hasher.Verify(password, s.dummyHash)
}
