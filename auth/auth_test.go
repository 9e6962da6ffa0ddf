package auth

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sangle2000/final-project-backend/apperr"
	"github.com/sangle2000/final-project-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func TestSignUpThenLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)

	_, created, err := SignUp(db, "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	token, user, err := Login(db, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims["sub"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "0", claims["wallet"])
	assert.NotNil(t, claims["exp"], "tokens expire by default")
}

func TestSignUpCreatesCart(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)

	_, user, err := SignUp(db, "bob@example.com", "secret123")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)

	_, _, err := SignUp(db, "carol@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = SignUp(db, "carol@example.com", "another456")
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count, "a rejected sign-up must not mutate storage")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)

	_, _, err := SignUp(db, "dave@example.com", "secret123")
	require.NoError(t, err)

	_, _, wrongPass := Login(db, "dave@example.com", "wrong-password")
	_, _, unknownEmail := Login(db, "nobody@example.com", "secret123")

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(wrongPass))
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(unknownEmail))
	assert.Equal(t, apperr.ClientMessage(wrongPass), apperr.ClientMessage(unknownEmail))
}

func TestUpdateProfileRefreshesClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)

	_, user, err := SignUp(db, "erin@example.com", "secret123")
	require.NoError(t, err)

	name := "Erin"
	phone := "0901234567"
	token, updated, err := UpdateProfile(db, user.ID, &name, &phone, nil)
	require.NoError(t, err)
	assert.Equal(t, "Erin", updated.Name)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Erin", claims["name"])
	assert.Equal(t, "0901234567", claims["phone"])
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)

	name := "Ghost"
	_, _, err := UpdateProfile(db, "no-such-id", &name, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestTokenTTLOptOut(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL_HOURS", "0")

	token, err := IssueToken(&models.User{ID: "u1", Email: "x@example.com"})
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	_, hasExp := claims["exp"]
	assert.False(t, hasExp, "JWT_TTL_HOURS=0 opts into non-expiring tokens")
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := IssueToken(&models.User{ID: "u1", Email: "x@example.com"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}
