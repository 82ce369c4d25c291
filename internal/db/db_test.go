package db

import (
	"errors"
	"testing"

	"ecohub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenMemoryMigrates(t *testing.T) {
	gdb, err := OpenMemory()
	require.NoError(t, err)
	defer Close(gdb)

	for _, m := range []interface{}{
		&models.User{}, &models.Organization{}, &models.Event{}, &models.UnifiedEntity{},
		&models.EntityRelationship{}, &models.Rating{}, &models.Like{}, &models.Bookmark{}, &models.Picture{},
	} {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
}

func TestUniqueIndexTranslatesToDuplicatedKey(t *testing.T) {
	gdb, err := OpenMemory()
	require.NoError(t, err)
	defer Close(gdb)

	like := models.Like{EntityType: models.EntityTypeEvent, EntityID: "e-1", UserID: "u-1"}
	require.NoError(t, gdb.Create(&like).Error)

	dup := models.Like{EntityType: models.EntityTypeEvent, EntityID: "e-1", UserID: "u-1"}
	err = gdb.Create(&dup).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestEntityDefaults(t *testing.T) {
	gdb, err := OpenMemory()
	require.NoError(t, err)
	defer Close(gdb)

	org := models.Organization{Name: "Acme"}
	org.UserID = "u-1"
	require.NoError(t, gdb.Create(&org).Error)
	assert.Len(t, org.ID, 36)

	var loaded models.Organization
	require.NoError(t, gdb.First(&loaded, "id = ?", org.ID).Error)
	assert.Equal(t, models.StatusPending, loaded.Status)
	assert.Zero(t, loaded.RatingsCount)

	rel := models.EntityRelationship{PrimaryEntityID: "a", PrimaryEntityType: models.EntityTypeStartup, RelatedEntityID: "b", RelatedEntityType: models.EntityTypeEvent}
	require.NoError(t, gdb.Create(&rel).Error)
	assert.Equal(t, models.DefaultRelationshipType, rel.RelationshipType)
}
