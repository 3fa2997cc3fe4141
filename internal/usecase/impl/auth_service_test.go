package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"sapa/config"
	domainerrors "sapa/internal/domain/errors"
	"sapa/internal/domain/repository"
	"sapa/internal/infra/auth"
	"sapa/internal/infra/kv"
	"sapa/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newAuthServiceOver builds a bootstrapped auth service on top of an
// existing key-value store, so tests can simulate app restarts.
func newAuthServiceOver(t *testing.T, store repository.KeyValueStore) usecase.AuthUsecase {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Hour}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	service := NewAuthService(AuthServiceParams{
		KVStore:      store,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Logger:       testLogger(),
	})
	require.NoError(t, service.Bootstrap(context.Background()))

	return service
}

func newTestAuthService(t *testing.T) (usecase.AuthUsecase, repository.KeyValueStore) {
	t.Helper()

	bucket := kv.OpenMemoryBucket()
	t.Cleanup(func() { _ = bucket.Close() })
	store := kv.NewBlobStore(bucket)

	return newAuthServiceOver(t, store), store
}

func warungInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		BusinessName:     "Warung Kopi Sederhana",
		OwnerName:        "Budi Santoso",
		BusinessCategory: "Kuliner",
		PhoneNumber:      "0812-3456-7890",
		Email:            "budi@warung.id",
		BusinessAddress:  "Jl. Merdeka 1, Bandung",
		Description:      "Kopi rumahan",
		Products:         "Kopi bubuk, dripbag",
		Password:         "rahasia123",
	}
}

func TestAuthService_Register(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	input := warungInput()
	input.Email = "  Budi@Warung.ID  "

	out, err := service.Register(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, out.Profile)
	assert.NotEmpty(t, out.Profile.ID)
	assert.Equal(t, "budi@warung.id", out.Profile.Email)
	assert.Equal(t, "081234567890", out.Profile.PhoneDigits)
	assert.Equal(t, "0812-3456-7890", out.Profile.PhoneNumber)
	assert.Equal(t, "Registrasi berhasil. Silakan login untuk melanjutkan.", out.Message)
	assert.NotEqual(t, "rahasia123", out.Profile.PasswordHash)
	assert.False(t, out.Profile.RegisteredAt.IsZero())

	// Registration must not start a session.
	current, err := service.CurrentProfile(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSession)
	assert.Nil(t, current)
}

func TestAuthService_Register_MissingCredentials(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	noEmail := warungInput()
	noEmail.Email = "   "
	_, err := service.Register(ctx, noEmail)
	assert.ErrorIs(t, err, domainerrors.ErrCredentialsRequired)

	noPassword := warungInput()
	noPassword.Password = ""
	_, err = service.Register(ctx, noPassword)
	assert.ErrorIs(t, err, domainerrors.ErrCredentialsRequired)

	// A password of only whitespace counts as missing.
	blankPassword := warungInput()
	blankPassword.Password = "   "
	_, err = service.Register(ctx, blankPassword)
	assert.ErrorIs(t, err, domainerrors.ErrCredentialsRequired)

	assert.Empty(t, service.Profiles(ctx))
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	dup := warungInput()
	dup.Email = "BUDI@warung.id"
	dup.PhoneNumber = "0899-0000-1111"
	_, err = service.Register(ctx, dup)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	assert.Len(t, service.Profiles(ctx), 1)
}

func TestAuthService_Register_DuplicatePhoneNormalized(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	// Same digits, different formatting.
	dup := warungInput()
	dup.Email = "lain@warung.id"
	dup.PhoneNumber = "0812 3456 7890"
	_, err = service.Register(ctx, dup)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicatePhone)
}

func TestAuthService_Login_ByEmailCaseInsensitive(t *testing.T) {
	service, store := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	out, err := service.Login(ctx, &usecase.LoginInput{Identifier: " BUDI@Warung.id ", Password: "rahasia123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, registered.Profile.ID, out.Profile.ID)
	assert.Equal(t, "Login berhasil.", out.Message)

	current, err := service.CurrentProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, registered.Profile.ID, current.ID)

	// The session pointer is persisted as the raw profile ID.
	raw, err := store.Get(ctx, "sapa_umkm_session")
	require.NoError(t, err)
	assert.Equal(t, registered.Profile.ID, string(raw))
}

func TestAuthService_Login_ByPhoneAnyFormatting(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	out, err := service.Login(ctx, &usecase.LoginInput{Identifier: "0812 3456 7890", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, registered.Profile.ID, out.Profile.ID)
}

func TestAuthService_Login_Failures(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "tidak@ada.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)

	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "salah"})
	assert.ErrorIs(t, err, domainerrors.ErrWrongPassword)

	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "", Password: "rahasia123"})
	assert.ErrorIs(t, err, domainerrors.ErrCredentialsRequired)

	// Failed logins never activate a session.
	_, err = service.CurrentProfile(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSession)
}

func TestAuthService_LogoutClearsPersistedSession(t *testing.T) {
	service, store := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, warungInput())
	require.NoError(t, err)
	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "rahasia123"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx))

	_, err = service.CurrentProfile(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSession)

	// A fresh service over the same store starts signed out.
	restarted := newAuthServiceOver(t, store)
	_, err = restarted.CurrentProfile(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSession)

	// Logout without a session is a no-op.
	assert.NoError(t, service.Logout(ctx))
}

func TestAuthService_BootstrapRestoresProfilesAndSession(t *testing.T) {
	service, store := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, warungInput())
	require.NoError(t, err)
	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "rahasia123"})
	require.NoError(t, err)

	restarted := newAuthServiceOver(t, store)
	assert.True(t, restarted.Ready())

	profiles := restarted.Profiles(ctx)
	require.Len(t, profiles, 1)
	assert.Equal(t, registered.Profile.ID, profiles[0].ID)

	current, err := restarted.CurrentProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, registered.Profile.ID, current.ID)

	// The restored credential still verifies.
	_, err = restarted.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "rahasia123"})
	assert.NoError(t, err)
}

func TestAuthService_BootstrapWithCorruptDataStartsEmpty(t *testing.T) {
	bucket := kv.OpenMemoryBucket()
	t.Cleanup(func() { _ = bucket.Close() })
	store := kv.NewBlobStore(bucket)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sapa_umkm_users", []byte("{not json")))
	require.NoError(t, store.Set(ctx, "sapa_umkm_session", []byte("dangling-id")))

	service := newAuthServiceOver(t, store)
	assert.True(t, service.Ready())
	assert.Empty(t, service.Profiles(ctx))

	_, err := service.CurrentProfile(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSession)
}

func TestAuthService_BootstrapDropsDanglingSessionPointer(t *testing.T) {
	service, store := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, warungInput())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "sapa_umkm_session", []byte("no-such-profile")))

	restarted := newAuthServiceOver(t, store)
	_, err = restarted.CurrentProfile(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSession)
}

func strPtr(s string) *string {
	return &s
}

func updateInputFrom(in *usecase.RegisterInput) *usecase.UpdateProfileInput {
	return &usecase.UpdateProfileInput{
		BusinessName:     strPtr(in.BusinessName),
		OwnerName:        strPtr(in.OwnerName),
		BusinessCategory: strPtr(in.BusinessCategory),
		PhoneNumber:      strPtr(in.PhoneNumber),
		Email:            strPtr(in.Email),
		BusinessAddress:  strPtr(in.BusinessAddress),
		Description:      strPtr(in.Description),
		Products:         strPtr(in.Products),
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	update := updateInputFrom(warungInput())
	update.BusinessName = strPtr("  Warung Kopi Modern  ")
	update.Email = strPtr("Budi.Baru@Warung.ID")
	update.PhoneNumber = strPtr("0813-0000-2222")

	out, err := service.UpdateProfile(ctx, registered.Profile.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Warung Kopi Modern", out.Profile.BusinessName)
	assert.Equal(t, "budi.baru@warung.id", out.Profile.Email)
	assert.Equal(t, "081300002222", out.Profile.PhoneDigits)
	assert.Equal(t, "Pengaturan akun berhasil diperbarui.", out.Message)

	// Empty password keeps the existing credential.
	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi.baru@warung.id", Password: "rahasia123"})
	assert.NoError(t, err)
}

func TestAuthService_UpdateProfile_OmittedFieldsKeepValues(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	out, err := service.UpdateProfile(ctx, registered.Profile.ID, &usecase.UpdateProfileInput{
		BusinessName: strPtr("Warung Kopi Modern"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Warung Kopi Modern", out.Profile.BusinessName)
	assert.Equal(t, "Budi Santoso", out.Profile.OwnerName)
	assert.Equal(t, "budi@warung.id", out.Profile.Email)
	assert.Equal(t, "081234567890", out.Profile.PhoneDigits)
	assert.Equal(t, "Kopi rumahan", out.Profile.Description)
	assert.Equal(t, "Jl. Merdeka 1, Bandung", out.Profile.BusinessAddress)

	// Same with everything omitted, the update is a no-op.
	out, err = service.UpdateProfile(ctx, registered.Profile.ID, &usecase.UpdateProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, "Warung Kopi Modern", out.Profile.BusinessName)
	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "rahasia123"})
	assert.NoError(t, err)
}

func TestAuthService_UpdateProfile_PasswordRules(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	short := updateInputFrom(warungInput())
	short.Password = strPtr("12345")
	_, err = service.UpdateProfile(ctx, registered.Profile.ID, short)
	assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)

	// The length rule applies to the trimmed form.
	padded := updateInputFrom(warungInput())
	padded.Password = strPtr(" abc  ")
	_, err = service.UpdateProfile(ctx, registered.Profile.ID, padded)
	assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)

	// The rejected updates must not have touched the credential.
	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "rahasia123"})
	require.NoError(t, err)

	// A password of only whitespace keeps the current credential.
	blank := updateInputFrom(warungInput())
	blank.Password = strPtr("   ")
	_, err = service.UpdateProfile(ctx, registered.Profile.ID, blank)
	require.NoError(t, err)
	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "rahasia123"})
	require.NoError(t, err)

	// A new password is stored in its trimmed form.
	change := updateInputFrom(warungInput())
	change.Password = strPtr("  baru-rahasia  ")
	_, err = service.UpdateProfile(ctx, registered.Profile.ID, change)
	require.NoError(t, err)

	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, domainerrors.ErrWrongPassword)
	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "baru-rahasia"})
	assert.NoError(t, err)
}

func TestAuthService_UpdateProfile_UniquenessExcludesSelf(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	first, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	second := warungInput()
	second.Email = "siti@batik.id"
	second.PhoneNumber = "0899-1111-2222"
	other, err := service.Register(ctx, second)
	require.NoError(t, err)

	// Re-saving your own contact data is fine.
	_, err = service.UpdateProfile(ctx, first.Profile.ID, updateInputFrom(warungInput()))
	assert.NoError(t, err)

	takenEmail := updateInputFrom(warungInput())
	takenEmail.Email = strPtr("SITI@batik.id")
	_, err = service.UpdateProfile(ctx, first.Profile.ID, takenEmail)
	assert.ErrorIs(t, err, domainerrors.ErrEmailInUse)

	takenPhone := updateInputFrom(warungInput())
	takenPhone.PhoneNumber = strPtr("0899 1111 2222")
	_, err = service.UpdateProfile(ctx, first.Profile.ID, takenPhone)
	assert.ErrorIs(t, err, domainerrors.ErrPhoneInUse)

	_ = other
}

func TestAuthService_UpdateProfile_RequiredFields(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, warungInput())
	require.NoError(t, err)

	noEmail := updateInputFrom(warungInput())
	noEmail.Email = strPtr("   ")
	_, err = service.UpdateProfile(ctx, registered.Profile.ID, noEmail)
	assert.ErrorIs(t, err, domainerrors.ErrEmailRequired)

	noPhone := updateInputFrom(warungInput())
	noPhone.PhoneNumber = strPtr("tanpa nomor")
	_, err = service.UpdateProfile(ctx, registered.Profile.ID, noPhone)
	assert.ErrorIs(t, err, domainerrors.ErrPhoneRequired)
}

func TestAuthService_UpdateProfile_NoSession(t *testing.T) {
	service, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := service.UpdateProfile(ctx, "", updateInputFrom(warungInput()))
	assert.ErrorIs(t, err, domainerrors.ErrNoActiveSession)

	_, err = service.UpdateProfile(ctx, "no-such-profile", updateInputFrom(warungInput()))
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAuthService_PersistFailureKeepsMemoryState(t *testing.T) {
	bucket := kv.OpenMemoryBucket()
	store := kv.NewBlobStore(bucket)
	service := newAuthServiceOver(t, store)
	ctx := context.Background()

	// Closing the bucket makes every write fail from now on.
	require.NoError(t, bucket.Close())

	out, err := service.Register(ctx, warungInput())
	assert.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PERSISTENCE_FAILED", appErr.ErrorCode())

	// The write is optimistic: the profile stays usable in memory.
	require.Len(t, service.Profiles(ctx), 1)
	_, err = service.Login(ctx, &usecase.LoginInput{Identifier: "budi@warung.id", Password: "rahasia123"})
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
}
