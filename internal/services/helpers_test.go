package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"ecohub/internal/auth"
	"ecohub/internal/config"
	"ecohub/internal/db"
	"ecohub/internal/dto"
	"ecohub/internal/models"
	"ecohub/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStorage 记录上传与删除的对象
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
	failPut bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if f.failPut {
		return "", errors.New("storage unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "http://objects.test/" + key, nil
}

func (f *fakeStorage) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeStorage) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

type testEnv struct {
	db      *gorm.DB
	svc     *Services
	storage *fakeStorage
	cache   *utils.Cache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(gdb) })

	cache, err := utils.NewCache(128, time.Minute)
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager(&config.JWTConfig{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	store := newFakeStorage()
	svc := New(Deps{
		DB:        gdb,
		Storage:   store,
		Cache:     cache,
		Tokens:    tokens,
		Denylist:  auth.NewMemoryDenylist(),
		MaxUpload: 1 << 20,
	})
	return &testEnv{db: gdb, svc: svc, storage: store, cache: cache}
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) admin(t *testing.T) *models.User {
	t.Helper()
	u := &models.User{Username: "root", Email: "root@example.com", Password: "x", Role: models.RoleAdmin}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) organization(t *testing.T, owner *models.User, name string) *models.Organization {
	t.Helper()
	org, err := e.svc.Organizations.Create(context.Background(), &dto.CreateOrganizationRequest{
		Name:        name,
		Description: "A climate organization",
		Location:    "Berlin",
		Category:    "climate",
	}, owner)
	require.NoError(t, err)
	return org
}

func pngUpload(name string) *dto.FileUpload {
	data := []byte("\x89PNG fake image")
	return &dto.FileUpload{Filename: name, ContentType: "image/png", Size: int64(len(data)), Reader: bytes.NewReader(data)}
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
