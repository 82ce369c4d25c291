package services

import (
	"context"
	"testing"
	"time"

	"ecohub/internal/dto"
	"ecohub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateThenFindByIDRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")

	when := time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)
	created, err := env.svc.Events.Create(ctx, &dto.CreateEventRequest{
		Title:      "Green Tech Meetup",
		AboutEvent: "Talks on climate tech",
		Type:       "meetup",
		DateTime:   when,
		Location:   "Lisbon",
		Organizer:  "EcoHub",
		Category:   "climate",
		Price:      12.5,
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, owner.ID, created.UserID)

	found, err := env.svc.Events.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Tech Meetup", found.Title)
	assert.Equal(t, "Talks on climate tech", found.AboutEvent)
	assert.Equal(t, "meetup", found.Type)
	assert.True(t, when.Equal(found.DateTime))
	assert.Equal(t, "Lisbon", found.Location)
	assert.Equal(t, "EcoHub", found.Organizer)
	assert.Equal(t, "climate", found.Category)
	assert.Equal(t, 12.5, found.Price)
	assert.NotNil(t, found.Pictures)
}

func TestCreateStoresTextVerbatim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")

	org, err := env.svc.Organizations.Create(ctx, &dto.CreateOrganizationRequest{
		Name:        "  Acme  ",
		Description: "Costs dropped when x<y held; growth 2<3x & <b>more</b>",
	}, owner)
	require.NoError(t, err)

	found, err := env.svc.Organizations.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "  Acme  ", found.Name)
	assert.Equal(t, "Costs dropped when x<y held; growth 2<3x & <b>more</b>", found.Description)

	updated, err := env.svc.Organizations.UpdateStatus(ctx, org.ID, dto.StatusUpdateRequest{
		Status: "rejected", AdminComment: "needs a<b ratio",
	})
	require.NoError(t, err)
	assert.Equal(t, "needs a<b ratio", updated.AdminComment)
}

func TestFindByIDNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Startups.FindByID(context.Background(), "missing")
	requireKind(t, err, KindNotFound)
	assert.Equal(t, "startup not found", PublicMessage(err))
}

func TestFindAllSearchAndStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")

	a := env.organization(t, owner, "Solar Collective")
	env.organization(t, owner, "Wind Works")
	_, err := env.svc.Organizations.UpdateStatus(ctx, a.ID, dto.StatusUpdateRequest{Status: "approved"})
	require.NoError(t, err)

	all, err := env.svc.Organizations.FindAll(ctx, dto.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	hits, err := env.svc.Organizations.FindAll(ctx, dto.ListFilter{Search: "SOLAR"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Solar Collective", hits[0].Name)

	approved, err := env.svc.Organizations.FindAll(ctx, dto.ListFilter{Status: "approved"})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, a.ID, approved[0].ID)

	none, err := env.svc.Organizations.FindAll(ctx, dto.ListFilter{Search: "hydro"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateAppliesOnlyProvidedFieldsAndKeepsStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")
	org := env.organization(t, owner, "Solar Collective")

	_, err := env.svc.Organizations.UpdateStatus(ctx, org.ID, dto.StatusUpdateRequest{Status: "approved", AdminComment: "ok"})
	require.NoError(t, err)

	updated, err := env.svc.Organizations.Update(ctx, org.ID, &dto.UpdateOrganizationRequest{
		Location: strPtr("Hamburg"),
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Hamburg", updated.Location)
	assert.Equal(t, "Solar Collective", updated.Name)
	assert.Equal(t, "A climate organization", updated.Description)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, "ok", updated.AdminComment)
	assert.Equal(t, owner.ID, updated.UserID)
}

func TestUpdateByNonOwnerIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")
	other := env.user(t, "bob")
	org := env.organization(t, owner, "Solar Collective")

	_, err := env.svc.Organizations.Update(ctx, org.ID, &dto.UpdateOrganizationRequest{Name: strPtr("Hijacked")}, other)
	requireKind(t, err, KindNotFound)

	found, err := env.svc.Organizations.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solar Collective", found.Name)
}

func TestUpdateStatusAllowedSets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")

	article, err := env.svc.NewsArticles.Create(ctx, &dto.CreateNewsArticleRequest{
		Title: "Heat pumps", Content: "# Heat pumps\n\nThey **work**.",
	}, owner)
	require.NoError(t, err)

	_, err = env.svc.NewsArticles.UpdateStatus(ctx, article.ID, dto.StatusUpdateRequest{Status: "approved"})
	requireKind(t, err, KindBadRequest)

	published, err := env.svc.NewsArticles.UpdateStatus(ctx, article.ID, dto.StatusUpdateRequest{Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, published.Status)
	assert.Contains(t, published.ContentHTML, "<strong>work</strong>")

	org := env.organization(t, owner, "Solar Collective")
	_, err = env.svc.Organizations.UpdateStatus(ctx, org.ID, dto.StatusUpdateRequest{Status: "published"})
	requireKind(t, err, KindBadRequest)

	_, err = env.svc.Organizations.UpdateStatus(ctx, "missing", dto.StatusUpdateRequest{Status: "approved"})
	requireKind(t, err, KindNotFound)
}

func TestDeleteScopedToOwnerWithAdminBypass(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")
	other := env.user(t, "bob")
	admin := env.admin(t)

	first := env.organization(t, owner, "One")
	second := env.organization(t, owner, "Two")

	_, err := env.svc.Organizations.Delete(ctx, first.ID, other)
	requireKind(t, err, KindNotFound)

	msg, err := env.svc.Organizations.Delete(ctx, first.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Organization deleted successfully", msg)

	_, err = env.svc.Organizations.Delete(ctx, first.ID, owner)
	requireKind(t, err, KindNotFound)

	msg, err = env.svc.Organizations.Delete(ctx, second.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, "Organization deleted successfully", msg)
}

func TestDeleteCleansUpDependents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")
	fan := env.user(t, "bob")

	org := env.organization(t, owner, "Solar Collective")
	other := env.organization(t, owner, "Wind Works")

	_, err := env.svc.Organizations.Rate(ctx, org.ID, dto.RateRequest{Rating: 4}, fan)
	require.NoError(t, err)
	_, err = env.svc.Organizations.Like(ctx, org.ID, fan)
	require.NoError(t, err)
	_, err = env.svc.Organizations.Bookmark(ctx, org.ID, fan)
	require.NoError(t, err)
	pic, err := env.svc.Organizations.SetCoverPicture(ctx, org.ID, pngUpload("logo.png"), owner)
	require.NoError(t, err)
	_, err = env.svc.Relationships.Create(ctx, dto.CreateRelationshipRequest{
		PrimaryEntityID: other.ID, PrimaryEntityType: "organization",
		RelatedEntityID: org.ID, RelatedEntityType: "organization",
	})
	require.NoError(t, err)

	_, err = env.svc.Organizations.Delete(ctx, org.ID, owner)
	require.NoError(t, err)

	for _, m := range []interface{}{&models.Rating{}, &models.Like{}, &models.Bookmark{}, &models.Picture{}} {
		var count int64
		require.NoError(t, env.db.Model(m).Where("entity_id = ?", org.ID).Count(&count).Error)
		assert.Zero(t, count, "%T rows left behind", m)
	}
	rels, err := env.svc.Relationships.GetRelated(ctx, other.ID, models.EntityTypeOrganization)
	require.NoError(t, err)
	assert.Empty(t, rels)

	assert.Contains(t, env.storage.removed, pic.ObjectKey)
	assert.False(t, env.storage.has(pic.ObjectKey))
}

func TestFindByOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	env.organization(t, alice, "One")
	env.organization(t, alice, "Two")
	env.organization(t, bob, "Three")

	mine, err := env.svc.Organizations.FindByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestFindAllSearchEscapesWildcards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "alice")

	env.organization(t, owner, "Solar Collective")
	discount := env.organization(t, owner, "100% Renewable")
	underscore := env.organization(t, owner, "green_tech")

	for _, tt := range []struct {
		search string
		want   []string
	}{
		{"%", []string{discount.ID}},
		{"_", []string{underscore.ID}},
		{"0% r", []string{discount.ID}},
	} {
		t.Run(tt.search, func(t *testing.T) {
			list, err := env.svc.Organizations.FindAll(ctx, dto.ListFilter{Search: tt.search})
			require.NoError(t, err)
			ids := make([]string, 0, len(list))
			for _, o := range list {
				ids = append(ids, o.ID)
			}
			assert.ElementsMatch(t, tt.want, ids)
		})
	}
}
