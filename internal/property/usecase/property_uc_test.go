package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alanya-estates/property-service/internal/platform/logger"
	"github.com/alanya-estates/property-service/internal/property/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	properties  map[string]*domain.Property
	nextID      int
	createCalls int
	updateCalls int
	deleteCalls int
	findCalls   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{properties: make(map[string]*domain.Property)}
}

func (r *fakeRepo) Create(ctx context.Context, p *domain.Property) error {
	r.createCalls++
	r.nextID++
	p.ID = fmt.Sprintf("prop-%d", r.nextID)
	stored := *p
	r.properties[p.ID] = &stored
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, p *domain.Property) error {
	r.updateCalls++
	if _, ok := r.properties[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	stored := *p
	r.properties[p.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.deleteCalls++
	if _, ok := r.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	r.findCalls++
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	found := *p
	return &found, nil
}

func (r *fakeRepo) FindAll(ctx context.Context, filter domain.Filter) ([]*domain.Property, error) {
	var result []*domain.Property
	for _, p := range r.properties {
		if filter.Featured != nil && p.IsFeatured != *filter.Featured {
			continue
		}
		found := *p
		result = append(result, &found)
	}
	return result, nil
}

type fakeStorage struct {
	uploads   []string
	removed   []string
	counter   int
	removeErr error
}

func (s *fakeStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	s.counter++
	s.uploads = append(s.uploads, originalFileName)
	return fmt.Sprintf("/uploads/stored-%d.jpg", s.counter), nil
}

func (s *fakeStorage) Remove(ctx context.Context, fileURL string) error {
	if !s.Owns(fileURL) {
		return nil
	}
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, fileURL)
	return nil
}

func (s *fakeStorage) Owns(fileURL string) bool {
	return strings.HasPrefix(fileURL, "/uploads/")
}

type fakeCache struct {
	entries  map[string]*domain.Property
	getCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Property)}
}

func (c *fakeCache) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	c.getCalls++
	return c.entries[id], nil
}

func (c *fakeCache) SetProperty(ctx context.Context, p *domain.Property) error {
	c.entries[p.ID] = p
	return nil
}

func (c *fakeCache) DeleteProperty(ctx context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

type fakePublisher struct {
	subjects []string
}

func (p *fakePublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

type fakeMailer struct {
	wasCalled bool
	to        string
}

func (m *fakeMailer) SendPropertyCreated(toEmail, nameKey string) error {
	m.wasCalled = true
	m.to = toEmail
	return nil
}

type testEnv struct {
	uc        *PropertyUsecase
	repo      *fakeRepo
	storage   *fakeStorage
	cache     *fakeCache
	publisher *fakePublisher
	mailer    *fakeMailer
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:      newFakeRepo(),
		storage:   &fakeStorage{},
		cache:     newFakeCache(),
		publisher: &fakePublisher{},
		mailer:    &fakeMailer{},
	}
	env.uc = NewPropertyUsecase(env.repo, env.storage, env.cache, env.publisher, env.mailer, "admin@example.com", logger.NewLogger())
	return env
}

func ptr[T any](v T) *T { return &v }

func validInput() PropertyInput {
	return PropertyInput{
		NameKey:  "villa_x",
		Location: "Alanya",
		Type:     "apartment",
	}
}

func TestCreateProperty_NoImages(t *testing.T) {
	env := newTestEnv()

	created, err := env.uc.CreateProperty(context.Background(), validInput(), nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "", created.ImageURL)
	assert.NotNil(t, created.GalleryImages)
	assert.Empty(t, created.GalleryImages)
	assert.Equal(t, domain.StatusAvailable, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, 1, env.repo.createCalls)
	assert.Equal(t, []string{SubjectPropertyCreated}, env.publisher.subjects)
	assert.True(t, env.mailer.wasCalled)
	assert.Equal(t, "admin@example.com", env.mailer.to)
}

func TestCreateProperty_WithMainImage(t *testing.T) {
	env := newTestEnv()

	created, err := env.uc.CreateProperty(context.Background(), validInput(),
		&FileUpload{Filename: "villa.jpg", Data: []byte("img")}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ImageURL)
	assert.NotEqual(t, "villa.jpg", created.ImageURL)
	assert.Equal(t, []string{"villa.jpg"}, env.storage.uploads)
}

func TestCreateProperty_GalleryOrder(t *testing.T) {
	env := newTestEnv()

	created, err := env.uc.CreateProperty(context.Background(), validInput(), nil, []FileUpload{
		{Filename: "one.jpg", Data: []byte("1")},
		{Filename: "two.jpg", Data: []byte("2")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/uploads/stored-1.jpg", "/uploads/stored-2.jpg"}, created.GalleryImages)
}

func TestCreateProperty_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		input PropertyInput
	}{
		{"missing nameKey", PropertyInput{Location: "Alanya", Type: "apartment"}},
		{"missing location", PropertyInput{NameKey: "villa_x", Type: "apartment"}},
		{"missing type", PropertyInput{NameKey: "villa_x", Location: "Alanya"}},
		{"unknown type", PropertyInput{NameKey: "villa_x", Location: "Alanya", Type: "castle"}},
		{"unknown status", PropertyInput{NameKey: "villa_x", Location: "Alanya", Type: "land", Status: "pending"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			_, err := env.uc.CreateProperty(context.Background(), tt.input, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, env.repo.createCalls)
			assert.Empty(t, env.storage.uploads)
		})
	}
}

func TestCreateProperty_TypeDependentFieldClearing(t *testing.T) {
	env := newTestEnv()

	landInput := validInput()
	landInput.Type = "land"
	landInput.Bedrooms = ptr(3)
	landInput.Bathrooms = ptr(2)
	landInput.BlockNumber = ptr("12")
	landInput.ParcelNumber = ptr("7")

	land, err := env.uc.CreateProperty(context.Background(), landInput, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, land.Bedrooms)
	assert.Nil(t, land.Bathrooms)
	assert.Equal(t, ptr("12"), land.BlockNumber)
	assert.Equal(t, ptr("7"), land.ParcelNumber)

	aptInput := validInput()
	aptInput.Bedrooms = ptr(3)
	aptInput.BlockNumber = ptr("12")
	aptInput.ParcelNumber = ptr("7")

	apt, err := env.uc.CreateProperty(context.Background(), aptInput, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, apt.BlockNumber)
	assert.Nil(t, apt.ParcelNumber)
	assert.Equal(t, ptr(3), apt.Bedrooms)
}

func TestCreateProperty_OutOfRangeCoordinatesDropped(t *testing.T) {
	env := newTestEnv()

	in := validInput()
	in.Latitude = ptr(95.0)
	in.Longitude = ptr(31.0)

	created, err := env.uc.CreateProperty(context.Background(), in, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, created.Latitude)
	assert.Equal(t, ptr(31.0), created.Longitude)
}

func TestUpdateProperty_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.UpdateProperty(context.Background(), "missing", validInput(), nil, nil)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Equal(t, 0, env.repo.updateCalls)
}

func TestUpdateProperty_GalleryReconciliation(t *testing.T) {
	env := newTestEnv()
	created, err := env.uc.CreateProperty(context.Background(), validInput(), nil, []FileUpload{
		{Filename: "a.jpg", Data: []byte("a")},
		{Filename: "b.jpg", Data: []byte("b")},
	})
	require.NoError(t, err)
	retainedRef := created.GalleryImages[0]

	in := validInput()
	in.ExistingGalleryImages = []string{retainedRef, "https://evil.example.com/spoof.jpg"}

	updated, err := env.uc.UpdateProperty(context.Background(), created.ID, in,
		nil, []FileUpload{{Filename: "c.jpg", Data: []byte("c")}})
	require.NoError(t, err)

	require.Len(t, updated.GalleryImages, 2)
	assert.Equal(t, retainedRef, updated.GalleryImages[0])
	assert.NotEqual(t, "c.jpg", updated.GalleryImages[1])
	// Dropped gallery images stay in storage; only an explicit delete or a
	// main-image replacement removes assets.
	assert.Empty(t, env.storage.removed)
}

func TestUpdateProperty_ReplacesMainImage(t *testing.T) {
	env := newTestEnv()
	created, err := env.uc.CreateProperty(context.Background(), validInput(),
		&FileUpload{Filename: "old.jpg", Data: []byte("old")}, nil)
	require.NoError(t, err)
	oldRef := created.ImageURL

	updated, err := env.uc.UpdateProperty(context.Background(), created.ID, validInput(),
		&FileUpload{Filename: "new.jpg", Data: []byte("new")}, nil)
	require.NoError(t, err)

	assert.NotEqual(t, oldRef, updated.ImageURL)
	assert.NotEmpty(t, updated.ImageURL)
	assert.Equal(t, []string{oldRef}, env.storage.removed)
}

func TestUpdateProperty_KeepsMainImageWithoutNewFile(t *testing.T) {
	env := newTestEnv()
	created, err := env.uc.CreateProperty(context.Background(), validInput(),
		&FileUpload{Filename: "old.jpg", Data: []byte("old")}, nil)
	require.NoError(t, err)

	updated, err := env.uc.UpdateProperty(context.Background(), created.ID, validInput(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.Empty(t, env.storage.removed)
}

func TestDeleteProperty_RemovesDocumentAndAssets(t *testing.T) {
	env := newTestEnv()
	created, err := env.uc.CreateProperty(context.Background(), validInput(),
		&FileUpload{Filename: "main.jpg", Data: []byte("m")},
		[]FileUpload{{Filename: "g1.jpg", Data: []byte("1")}, {Filename: "g2.jpg", Data: []byte("2")}})
	require.NoError(t, err)

	require.NoError(t, env.uc.DeleteProperty(context.Background(), created.ID))

	assert.Len(t, env.storage.removed, 3)
	assert.Equal(t, 1, env.repo.deleteCalls)
	assert.Contains(t, env.publisher.subjects, SubjectPropertyDeleted)

	_, err = env.uc.GetProperty(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestDeleteProperty_SucceedsWhenAssetRemovalFails(t *testing.T) {
	env := newTestEnv()
	created, err := env.uc.CreateProperty(context.Background(), validInput(),
		&FileUpload{Filename: "main.jpg", Data: []byte("m")}, nil)
	require.NoError(t, err)

	env.storage.removeErr = errors.New("storage unavailable")

	require.NoError(t, env.uc.DeleteProperty(context.Background(), created.ID))
	assert.Equal(t, 1, env.repo.deleteCalls)
}

func TestDeleteProperty_NotFound(t *testing.T) {
	env := newTestEnv()

	err := env.uc.DeleteProperty(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Equal(t, 0, env.repo.deleteCalls)
}

func TestGetProperty_ReadThroughCache(t *testing.T) {
	env := newTestEnv()
	created, err := env.uc.CreateProperty(context.Background(), validInput(), nil, nil)
	require.NoError(t, err)

	first, err := env.uc.GetProperty(context.Background(), created.ID)
	require.NoError(t, err)
	findsAfterFirst := env.repo.findCalls

	second, err := env.uc.GetProperty(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, findsAfterFirst, env.repo.findCalls, "second read should be served from cache")
}

func TestListProperties_FeaturedFilter(t *testing.T) {
	env := newTestEnv()
	for i := 0; i < 5; i++ {
		in := validInput()
		in.NameKey = fmt.Sprintf("villa_%d", i)
		in.IsFeatured = i < 2
		_, err := env.uc.CreateProperty(context.Background(), in, nil, nil)
		require.NoError(t, err)
	}

	featured, err := env.uc.ListProperties(context.Background(), domain.Filter{Featured: ptr(true)})
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	all, err := env.uc.ListProperties(context.Background(), domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
