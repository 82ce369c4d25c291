package services

import (
	"context"
	"testing"

	"ecohub/internal/config"
	"ecohub/internal/dto"
	"ecohub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	authSvc := env.svc.Auth

	user, err := authSvc.Register(ctx, dto.RegisterRequest{Username: "alice", Email: "Alice@Example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.Password)

	_, err = authSvc.Register(ctx, dto.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "hunter22"})
	requireKind(t, err, KindConflict)
	_, err = authSvc.Register(ctx, dto.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "hunter22"})
	requireKind(t, err, KindConflict)
	_, err = authSvc.Register(ctx, dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "123"})
	requireKind(t, err, KindBadRequest)

	_, err = authSvc.Login(ctx, dto.LoginRequest{Identifier: "alice", Password: "wrong"})
	requireKind(t, err, KindUnauthorized)
	_, err = authSvc.Login(ctx, dto.LoginRequest{Identifier: "nobody", Password: "hunter22"})
	requireKind(t, err, KindUnauthorized)

	tok, err := authSvc.Login(ctx, dto.LoginRequest{Identifier: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	authed, claims, err := authSvc.Authenticate(ctx, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	require.NoError(t, authSvc.Logout(ctx, claims))
	_, _, err = authSvc.Authenticate(ctx, tok.Token)
	requireKind(t, err, KindUnauthorized)
}

func TestSeedAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.Auth.SeedAdmin(ctx, &config.AdminConfig{}))
	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)

	cfg := &config.AdminConfig{Username: "admin", Email: "admin@example.com", Password: "changeme"}
	require.NoError(t, env.svc.Auth.SeedAdmin(ctx, cfg))
	require.NoError(t, env.svc.Auth.SeedAdmin(ctx, cfg))

	var admin models.User
	require.NoError(t, env.db.First(&admin, "email = ?", "admin@example.com").Error)
	assert.True(t, admin.IsAdmin())

	tok, err := env.svc.Auth.Login(ctx, dto.LoginRequest{Identifier: "admin", Password: "changeme"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
}

func TestUserEntitiesAndRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	env.organization(t, alice, "Solar Collective")

	grouped, err := env.svc.Users.Entities(ctx, alice.ID)
	require.NoError(t, err)
	orgs := grouped["organization"].([]models.Organization)
	assert.Len(t, orgs, 1)
	assert.Empty(t, grouped["event"])

	promoted, err := env.svc.Users.SetRole(ctx, alice.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	_, err = env.svc.Users.SetRole(ctx, alice.ID, "overlord")
	requireKind(t, err, KindBadRequest)
	_, err = env.svc.Users.SetRole(ctx, "missing", models.RoleUser)
	requireKind(t, err, KindNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	org := env.organization(t, alice, "Solar Collective")
	bobOrg := env.organization(t, bob, "Wind Works")
	pic, err := env.svc.Organizations.AddPicture(ctx, org.ID, pngUpload("a.png"), alice)
	require.NoError(t, err)
	_, err = env.svc.Organizations.Like(ctx, org.ID, bob)
	require.NoError(t, err)
	_, err = env.svc.Organizations.Rate(ctx, bobOrg.ID, dto.RateRequest{Rating: 5}, alice)
	require.NoError(t, err)
	_, err = env.svc.Organizations.Bookmark(ctx, bobOrg.ID, alice)
	require.NoError(t, err)

	_, err = env.svc.Users.Delete(ctx, alice.ID, bob)
	requireKind(t, err, KindForbidden)

	msg, err := env.svc.Users.Delete(ctx, alice.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", msg)

	_, err = env.svc.Organizations.FindByID(ctx, org.ID)
	requireKind(t, err, KindNotFound)
	assert.Zero(t, countRows(t, env, &models.Picture{}))
	assert.False(t, env.storage.has(pic.ObjectKey))

	var likes int64
	require.NoError(t, env.db.Model(&models.Like{}).Where("entity_id = ?", org.ID).Count(&likes).Error)
	assert.Zero(t, likes)

	// 对他人实体的评分保留，收藏删除
	kept, err := env.svc.Organizations.FindByID(ctx, bobOrg.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, kept.RatingsCount)
	assert.Zero(t, countRows(t, env, &models.Bookmark{}))

	_, err = env.svc.Users.FindByID(ctx, alice.ID)
	requireKind(t, err, KindNotFound)
	_, err = env.svc.Users.Delete(ctx, alice.ID, env.admin(t))
	requireKind(t, err, KindNotFound)
}
