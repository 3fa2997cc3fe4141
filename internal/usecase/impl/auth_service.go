// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "sapa/internal/delivery/context"
	"sapa/internal/domain/entity"
	domainerrors "sapa/internal/domain/errors"
	"sapa/internal/domain/repository"
	"sapa/internal/domain/service"
	"sapa/internal/usecase"
	"sapa/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Storage keys. The account collection and the session pointer live under
// separate keys and are written independently; there is no transaction
// across the two.
const (
	usersStorageKey   = "sapa_umkm_users"
	sessionStorageKey = "sapa_umkm_session"
)

// authService implements the AuthUsecase interface. All registered
// profiles are held in memory; the key-value store is a write-through
// snapshot, not the read path. Writes are optimistic: memory mutates
// first and a failed persist keeps the in-memory state.
type authService struct {
	kvStore      repository.KeyValueStore
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger

	mu       sync.RWMutex
	profiles []*entity.BusinessProfile
	activeID string
	ready    bool
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	KVStore      repository.KeyValueStore
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		kvStore:      params.KVStore,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Bootstrap hydrates the account collection and the session pointer from
// storage. Unreadable or corrupt data degrades to an empty signed-out
// state; after Bootstrap returns, Ready reports true either way.
func (srv *authService) Bootstrap(ctx context.Context) error {
	profiles := srv.loadProfiles(ctx)
	activeID := srv.loadSessionPointer(ctx, profiles)

	srv.mu.Lock()
	srv.profiles = profiles
	srv.activeID = activeID
	srv.ready = true
	srv.mu.Unlock()

	srv.log(ctx).Info("Account store bootstrapped",
		slog.Int("profiles", len(profiles)),
		slog.Bool("activeSession", activeID != ""))

	return nil
}

func (srv *authService) loadProfiles(ctx context.Context) []*entity.BusinessProfile {
	raw, err := srv.kvStore.Get(ctx, usersStorageKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		srv.log(ctx).Warn("Failed to read persisted accounts, starting empty", slog.Any("error", err))

		return nil
	}

	var profiles []*entity.BusinessProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		srv.log(ctx).Warn("Persisted accounts are corrupt, starting empty", slog.Any("error", err))

		return nil
	}

	return profiles
}

func (srv *authService) loadSessionPointer(ctx context.Context, profiles []*entity.BusinessProfile) string {
	raw, err := srv.kvStore.Get(ctx, sessionStorageKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return ""
	}
	if err != nil {
		srv.log(ctx).Warn("Failed to read persisted session, starting signed out", slog.Any("error", err))

		return ""
	}

	// A pointer to a profile that no longer exists is treated as no session.
	activeID := strings.TrimSpace(string(raw))
	for _, profile := range profiles {
		if profile.ID == activeID {
			return activeID
		}
	}

	return ""
}

// Register creates a new business profile. It does not start a session;
// the new account still has to log in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := util.NormalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, domainerrors.ErrCredentialsRequired
	}

	phoneNumber := strings.TrimSpace(input.PhoneNumber)
	phoneDigits := util.NormalizePhoneDigits(phoneNumber)

	srv.mu.Lock()
	defer srv.mu.Unlock()

	for _, existing := range srv.profiles {
		if existing.Email == email {
			srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", email))

			return nil, domainerrors.ErrDuplicateEmail
		}
		if phoneDigits != "" && existing.PhoneDigits == phoneDigits {
			srv.log(ctx).Warn("Registration rejected, phone taken", slog.String("phoneDigits", phoneDigits))

			return nil, domainerrors.ErrDuplicatePhone
		}
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	profile := &entity.BusinessProfile{
		ID:               uuid.NewString(),
		BusinessName:     strings.TrimSpace(input.BusinessName),
		OwnerName:        strings.TrimSpace(input.OwnerName),
		BusinessCategory: strings.TrimSpace(input.BusinessCategory),
		PhoneNumber:      phoneNumber,
		PhoneDigits:      phoneDigits,
		Email:            email,
		BusinessAddress:  strings.TrimSpace(input.BusinessAddress),
		Description:      strings.TrimSpace(input.Description),
		Products:         strings.TrimSpace(input.Products),
		RegisteredAt:     time.Now(),
		PasswordHash:     passwordHash,
	}

	srv.profiles = append(srv.profiles, profile)

	if err := srv.persistProfilesLocked(ctx); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile registered", slog.String("profileID", profile.ID))

	return &usecase.RegisterOutput{
		Profile: profile.Clone(),
		Message: "Registrasi berhasil. Silakan login untuk melanjutkan.",
	}, nil
}

// Login resolves the identifier as an email first and as a phone number
// second, checks the password, and activates the session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, domainerrors.ErrCredentialsRequired
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	profile := srv.findByIdentifierLocked(identifier)
	if profile == nil {
		srv.log(ctx).Warn("Login failed, account not found")

		return nil, domainerrors.ErrAccountNotFound
	}

	if !srv.hasher.Check(input.Password, profile.PasswordHash) {
		srv.log(ctx).Warn("Login failed, wrong password", slog.String("profileID", profile.ID))

		return nil, domainerrors.ErrWrongPassword
	}

	accessToken, err := srv.tokenService.GenerateToken(profile.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate access token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.activeID = profile.ID

	if err := srv.persistSessionLocked(ctx); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile logged in", slog.String("profileID", profile.ID))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		Profile:     profile.Clone(),
		Message:     "Login berhasil.",
	}, nil
}

func (srv *authService) findByIdentifierLocked(identifier string) *entity.BusinessProfile {
	email := util.NormalizeEmail(identifier)
	for _, profile := range srv.profiles {
		if profile.Email == email {
			return profile
		}
	}

	digits := util.NormalizePhoneDigits(identifier)
	if digits == "" {
		return nil
	}
	for _, profile := range srv.profiles {
		if profile.PhoneDigits == digits {
			return profile
		}
	}

	return nil
}

// Logout clears the session pointer in memory and in storage.
func (srv *authService) Logout(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.activeID = ""

	if err := srv.kvStore.Delete(ctx, sessionStorageKey); err != nil {
		srv.log(ctx).Error("Failed to clear persisted session", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "failed to clear persisted session")
	}

	srv.log(ctx).Info("Session cleared")

	return nil
}

// UpdateProfile applies the settings form to one profile. Only supplied
// fields replace stored values, after trimming; a password that trims to
// nothing keeps the current credential.
func (srv *authService) UpdateProfile(ctx context.Context, profileID string, input *usecase.UpdateProfileInput) (*usecase.UpdateProfileOutput, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if profileID == "" {
		profileID = srv.activeID
	}
	if profileID == "" {
		return nil, domainerrors.ErrNoActiveSession
	}

	index := -1
	for i, profile := range srv.profiles {
		if profile.ID == profileID {
			index = i

			break
		}
	}
	if index == -1 {
		return nil, domainerrors.ErrAccountNotFound
	}
	current := srv.profiles[index]

	email := current.Email
	if input.Email != nil {
		email = util.NormalizeEmail(*input.Email)
	}
	if email == "" {
		return nil, domainerrors.ErrEmailRequired
	}

	phoneNumber := current.PhoneNumber
	if input.PhoneNumber != nil {
		phoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	phoneDigits := util.NormalizePhoneDigits(phoneNumber)
	if phoneDigits == "" {
		return nil, domainerrors.ErrPhoneRequired
	}

	for _, other := range srv.profiles {
		if other.ID == profileID {
			continue
		}
		if other.Email == email {
			return nil, domainerrors.ErrEmailInUse
		}
		if other.PhoneDigits == phoneDigits {
			return nil, domainerrors.ErrPhoneInUse
		}
	}

	passwordHash := current.PasswordHash
	if input.Password != nil {
		if password := strings.TrimSpace(*input.Password); password != "" {
			if len(password) < 6 {
				return nil, domainerrors.ErrWeakPassword
			}

			hashed, err := srv.hasher.Hash(password)
			if err != nil {
				srv.log(ctx).Error("Failed to hash password during profile update", slog.Any("error", err))

				return nil, domainerrors.ErrPasswordHashFailed
			}
			passwordHash = hashed
		}
	}

	updated := current.Clone()
	if input.BusinessName != nil {
		updated.BusinessName = strings.TrimSpace(*input.BusinessName)
	}
	if input.OwnerName != nil {
		updated.OwnerName = strings.TrimSpace(*input.OwnerName)
	}
	if input.BusinessCategory != nil {
		updated.BusinessCategory = strings.TrimSpace(*input.BusinessCategory)
	}
	if input.BusinessAddress != nil {
		updated.BusinessAddress = strings.TrimSpace(*input.BusinessAddress)
	}
	if input.Description != nil {
		updated.Description = strings.TrimSpace(*input.Description)
	}
	if input.Products != nil {
		updated.Products = strings.TrimSpace(*input.Products)
	}
	updated.PhoneNumber = phoneNumber
	updated.PhoneDigits = phoneDigits
	updated.Email = email
	updated.PasswordHash = passwordHash

	srv.profiles[index] = updated

	if err := srv.persistProfilesLocked(ctx); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile updated", slog.String("profileID", profileID))

	return &usecase.UpdateProfileOutput{
		Profile: updated.Clone(),
		Message: "Pengaturan akun berhasil diperbarui.",
	}, nil
}

// CurrentProfile returns the profile the session pointer refers to.
func (srv *authService) CurrentProfile(_ context.Context) (*entity.BusinessProfile, error) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if srv.activeID == "" {
		return nil, domainerrors.ErrNoActiveSession
	}
	for _, profile := range srv.profiles {
		if profile.ID == srv.activeID {
			return profile.Clone(), nil
		}
	}

	return nil, domainerrors.ErrNoActiveSession
}

// ProfileByID resolves a profile by its identifier.
func (srv *authService) ProfileByID(_ context.Context, profileID string) (*entity.BusinessProfile, error) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	for _, profile := range srv.profiles {
		if profile.ID == profileID {
			return profile.Clone(), nil
		}
	}

	return nil, domainerrors.ErrAccountNotFound
}

// Profiles returns a snapshot of every registered profile.
func (srv *authService) Profiles(_ context.Context) []*entity.BusinessProfile {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	out := make([]*entity.BusinessProfile, len(srv.profiles))
	for i, profile := range srv.profiles {
		out[i] = profile.Clone()
	}

	return out
}

// Ready reports whether Bootstrap has completed.
func (srv *authService) Ready() bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.ready
}

// persistProfilesLocked snapshots the account collection to storage. The
// in-memory mutation is kept even when the write fails; the returned
// error tells the caller the snapshot is stale.
func (srv *authService) persistProfilesLocked(ctx context.Context) error {
	raw, err := json.Marshal(srv.profiles)
	if err != nil {
		srv.log(ctx).Error("Failed to encode accounts", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "failed to encode accounts")
	}

	if err := srv.kvStore.Set(ctx, usersStorageKey, raw); err != nil {
		srv.log(ctx).Error("Failed to persist accounts", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "failed to persist accounts")
	}

	return nil
}

func (srv *authService) persistSessionLocked(ctx context.Context) error {
	if err := srv.kvStore.Set(ctx, sessionStorageKey, []byte(srv.activeID)); err != nil {
		srv.log(ctx).Error("Failed to persist session", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "failed to persist session")
	}

	return nil
}
