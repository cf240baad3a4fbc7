package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgechef/internal/apperr"
	"fridgechef/internal/user"
)

func newTestService() (*Service, *user.MemoryStore) {
	users := user.NewMemoryStore()
	return NewService(users, NewTokenManager("test-secret", time.Hour)), users
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	sess, err := svc.Register(ctx, " Cook@Example.com ", "pw", "Cook")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "cook@example.com", sess.User.Email)

	claims, err := svc.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID)
	assert.Equal(t, "Cook", claims.Name)
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newTestService()

	for _, in := range [][3]string{{"", "pw", "n"}, {"a@b.c", "", "n"}, {"a@b.c", "pw", "  "}} {
		_, err := svc.Register(context.Background(), in[0], in[1], in[2])
		assert.True(t, apperr.Is(err, apperr.KindValidation), "%v", in)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users := newTestService()
	ctx := context.Background()

	first, err := svc.Register(ctx, "cook@example.com", "pw", "First")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "COOK@example.com", "other", "Second")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	u, err := users.GetByID(ctx, first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", u.Name)
	assert.NoError(t, CheckPassword(u.PasswordHash, "pw"))
}

func TestLoginGenericFailure(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Register(ctx, "cook@example.com", "pw", "Cook")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "cook@example.com", "nope")
	_, unknownEmail := svc.Login(ctx, "ghost@example.com", "pw")

	for _, err := range []error{wrongPassword, unknownEmail} {
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, apperr.KindAuth, e.Kind)
		assert.Equal(t, MsgBadCredentials, e.Message)
	}

	sess, err := svc.Login(ctx, "cook@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Cook", sess.User.Name)
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Login(context.Background(), "cook@example.com", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestVerifyKinds(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Verify("")
	assert.True(t, apperr.Is(err, apperr.KindAuth))

	_, err = svc.Verify("garbage")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	sess, err := svc.Register(ctx, "cook@example.com", "pw", "Cook")
	require.NoError(t, err)
	id := sess.User.ID

	prefs := user.Preferences{Diet: "vegetarian", Allergies: []string{"egg"}, Cuisines: []string{"한식"}}
	u, err := svc.UpdateProfile(ctx, id, ProfileUpdate{Preferences: &prefs})
	require.NoError(t, err)
	assert.Equal(t, "Cook", u.Name)
	assert.Equal(t, prefs, u.Preferences)

	name := "Chef"
	u, err = svc.UpdateProfile(ctx, id, ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Chef", u.Name)
	assert.Equal(t, prefs, u.Preferences)

	// preferences are replaced, not merged
	replacement := user.Preferences{Diet: "keto"}
	u, err = svc.UpdateProfile(ctx, id, ProfileUpdate{Preferences: &replacement})
	require.NoError(t, err)
	assert.Equal(t, "keto", u.Preferences.Diet)
	assert.Empty(t, u.Preferences.Allergies)
}

func TestProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Profile(context.Background(), 99)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
