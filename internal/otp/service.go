package otp

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wichananm65/mill-store-backend/internal/address"
	"github.com/wichananm65/mill-store-backend/internal/user"
)

var (
	ErrInvalidMobile   = errors.New("mobile must be a 10 digit number")
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found, please sign up")
	ErrNotRequested    = errors.New("no OTP requested for this number")
	ErrExpired         = errors.New("OTP expired, please request a new one")
	ErrInvalidOTP      = errors.New("invalid OTP")
	ErrTooManyAttempts = errors.New("too many attempts, please request a new OTP")
)

type Users interface {
	GetByMobile(ctx context.Context, mobile string) (user.User, error)
	Create(ctx context.Context, name, mobile string) (user.User, error)
	Profile(ctx context.Context, id int) (user.User, error)
	Delete(ctx context.Context, id int) error
}

type Addresses interface {
	Create(ctx context.Context, userID int, in address.Input) (address.Address, error)
}

type Tokens interface {
	Issue(userID int, mobile string) (string, error)
}

type Options struct {
	TTL         time.Duration
	Length      int
	MaxAttempts int
	// Expose returns the plain code in the issue response so development
	// clients can autofill it.
	Expose bool
}

// Issued describes a freshly sent code.
type Issued struct {
	Mobile    string    `json:"mobile"`
	ExpiresAt time.Time `json:"expiresAt"`
	OTP       string    `json:"otp,omitempty"`
}

type VerifyInput struct {
	Mobile  string            `json:"mobile"`
	OTP     string            `json:"otp"`
	Name    string            `json:"name"`
	Address *address.Envelope `json:"address"`
}

type Session struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

type Service struct {
	users     Users
	addresses Addresses
	store     Store
	tokens    Tokens
	opts      Options

	now      func() time.Time
	generate func(length int) (string, error)
	hashCost int
}

func NewService(users Users, addresses Addresses, store Store, tokens Tokens, opts Options) *Service {
	return &Service{
		users:     users,
		addresses: addresses,
		store:     store,
		tokens:    tokens,
		opts:      opts,
		now:       time.Now,
		generate:  generateCode,
		hashCost:  bcrypt.DefaultCost,
	}
}

// Signup sends a code to a number that has no account yet.
func (s *Service) Signup(ctx context.Context, mobile string) (Issued, error) {
	mobile, err := NormalizeMobile(mobile)
	if err != nil {
		return Issued{}, err
	}
	if _, err := s.users.GetByMobile(ctx, mobile); err == nil {
		return Issued{}, ErrUserExists
	} else if !errors.Is(err, user.ErrNotFound) {
		return Issued{}, err
	}
	return s.issue(ctx, mobile, PurposeSignup)
}

// Login sends a code to a registered number.
func (s *Service) Login(ctx context.Context, mobile string) (Issued, error) {
	mobile, err := NormalizeMobile(mobile)
	if err != nil {
		return Issued{}, err
	}
	if _, err := s.users.GetByMobile(ctx, mobile); errors.Is(err, user.ErrNotFound) {
		return Issued{}, ErrUserNotFound
	} else if err != nil {
		return Issued{}, err
	}
	return s.issue(ctx, mobile, PurposeLogin)
}

func (s *Service) issue(ctx context.Context, mobile string, purpose Purpose) (Issued, error) {
	plain, err := s.generate(s.opts.Length)
	if err != nil {
		return Issued{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.hashCost)
	if err != nil {
		return Issued{}, err
	}

	code := Code{
		Mobile:    mobile,
		Purpose:   purpose,
		Hash:      string(hash),
		ExpiresAt: s.now().Add(s.opts.TTL).UTC(),
	}
	if err := s.store.Save(ctx, code); err != nil {
		return Issued{}, err
	}

	out := Issued{Mobile: mobile, ExpiresAt: code.ExpiresAt}
	if s.opts.Expose {
		out.OTP = plain
	}
	return out, nil
}

// Verify checks the pending code and returns a session. A signup code also
// creates the account and, when given, its first address.
func (s *Service) Verify(ctx context.Context, in VerifyInput) (Session, error) {
	mobile, err := NormalizeMobile(in.Mobile)
	if err != nil {
		return Session{}, err
	}

	code, err := s.store.Get(ctx, mobile)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrNotRequested
	}
	if err != nil {
		return Session{}, err
	}

	if !s.now().Before(code.ExpiresAt) {
		_ = s.store.Delete(ctx, mobile)
		return Session{}, ErrExpired
	}
	if code.Attempts >= s.opts.MaxAttempts {
		_ = s.store.Delete(ctx, mobile)
		return Session{}, ErrTooManyAttempts
	}

	// signup details are checked before the code so a bad form does not burn it
	addr, err := signupDetails(code.Purpose, in)
	if err != nil {
		return Session{}, err
	}

	// the attempt is counted before the compare so concurrent guesses cannot
	// all slip under the limit
	reserved, err := s.store.ReserveAttempt(ctx, mobile)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrNotRequested
	}
	if err != nil {
		return Session{}, err
	}
	if reserved.Attempts > s.opts.MaxAttempts {
		_ = s.store.Delete(ctx, mobile)
		return Session{}, ErrTooManyAttempts
	}
	if reserved.Purpose != code.Purpose {
		if addr, err = signupDetails(reserved.Purpose, in); err != nil {
			return Session{}, err
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(reserved.Hash), []byte(strings.TrimSpace(in.OTP))) != nil {
		if reserved.Attempts >= s.opts.MaxAttempts {
			_ = s.store.Delete(ctx, mobile)
			return Session{}, ErrTooManyAttempts
		}
		return Session{}, ErrInvalidOTP
	}

	var u user.User
	switch reserved.Purpose {
	case PurposeSignup:
		u, err = s.createAccount(ctx, in.Name, mobile, addr)
		if err != nil {
			return Session{}, err
		}
		// the unique mobile already makes the signup single use
		if err := s.store.Consume(ctx, mobile, reserved.Hash); err != nil && !errors.Is(err, ErrNotFound) {
			return Session{}, err
		}
	default:
		if err := s.store.Consume(ctx, mobile, reserved.Hash); errors.Is(err, ErrNotFound) {
			return Session{}, ErrNotRequested
		} else if err != nil {
			return Session{}, err
		}
		u, err = s.users.GetByMobile(ctx, mobile)
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrUserNotFound
		}
		if err != nil {
			return Session{}, err
		}
	}

	profile, err := s.users.Profile(ctx, u.ID)
	if err != nil {
		return Session{}, err
	}
	token, err := s.tokens.Issue(profile.ID, profile.Mobile)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: profile}, nil
}

// createAccount adds the user and the optional first address. A failed
// address insert removes the user again so the code can be retried.
func (s *Service) createAccount(ctx context.Context, name, mobile string, addr *address.Input) (user.User, error) {
	u, err := s.users.Create(ctx, name, mobile)
	if errors.Is(err, user.ErrMobileExists) {
		return user.User{}, ErrUserExists
	}
	if err != nil {
		return user.User{}, err
	}
	if addr == nil {
		return u, nil
	}
	if _, err := s.addresses.Create(ctx, u.ID, *addr); err != nil {
		if derr := s.users.Delete(ctx, u.ID); derr != nil {
			return user.User{}, errors.Join(err, derr)
		}
		return user.User{}, err
	}
	return u, nil
}

func signupDetails(purpose Purpose, in VerifyInput) (*address.Input, error) {
	if purpose != PurposeSignup {
		return nil, nil
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, user.ErrNameRequired
	}
	if in.Address == nil || in.Address.ManualAddress == nil {
		return nil, nil
	}
	normalized := in.Address.ManualAddress.Normalize()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}
	normalized.IsDefault = true
	return &normalized, nil
}

// NormalizeMobile strips spaces and checks for exactly ten digits.
func NormalizeMobile(raw string) (string, error) {
	mobile := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if len(mobile) != 10 {
		return "", ErrInvalidMobile
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return "", ErrInvalidMobile
		}
	}
	return mobile, nil
}
