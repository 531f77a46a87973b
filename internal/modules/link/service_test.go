package link

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"snaplink/internal/modules/provider"
)

type MockRepository struct {
	mock.Mock
	stored map[string]*Link
}

func newMockRepository() *MockRepository {
	return &MockRepository{stored: make(map[string]*Link)}
}

func (m *MockRepository) Create(ctx context.Context, l *Link) error {
	args := m.Called(ctx, l)
	if args.Error(0) == nil {
		m.stored[l.Token] = l
	}
	return args.Error(0)
}

func (m *MockRepository) GetByToken(ctx context.Context, token string) (*Link, error) {
	m.Called(ctx, token)
	if l, ok := m.stored[token]; ok {
		return l, nil
	}
	return nil, ErrNotFound
}

func (m *MockRepository) List(ctx context.Context) ([]*Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Link), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	if args.Error(0) == nil {
		delete(m.stored, token)
	}
	return args.Error(0)
}

func (m *MockRepository) BumpStats(ctx context.Context, token string, at time.Time) error {
	args := m.Called(ctx, token, at)
	return args.Error(0)
}

type MockConfigResolver struct {
	mock.Mock
}

func (m *MockConfigResolver) GetByID(ctx context.Context, id uint) (*provider.Config, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Config), args.Error(1)
}

type MockCaptureCleaner struct {
	mock.Mock
}

func (m *MockCaptureCleaner) DeleteByLink(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestService_CreateThenResolve_Roundtrip(t *testing.T) {
	repo := newMockRepository()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetByToken", mock.Anything, mock.Anything).Return(nil, nil)

	configs := new(MockConfigResolver)
	configID := uint(3)
	configs.On("GetByID", mock.Anything, configID).Return(&provider.Config{ID: configID, Kind: provider.KindCDNMedia}, nil)

	service := NewService(repo, configs, nil)

	created, err := service.Create(context.Background(), CreateLinkRequest{
		DestinationURL: "https://example.com/landing",
		Name:           "Campaign",
		ConfigID:       &configID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Token)

	resolved, err := service.Resolve(context.Background(), created.Token)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/landing", resolved.DestinationURL)
	require.NotNil(t, resolved.ConfigID)
	assert.Equal(t, configID, *resolved.ConfigID)
}

func TestService_Create_InvalidDestination(t *testing.T) {
	repo := newMockRepository()
	configs := new(MockConfigResolver)
	service := NewService(repo, configs, nil)

	for _, dest := range []string{"", "not a url", "ftp://example.com/x", "/relative/path", "example.com"} {
		_, err := service.Create(context.Background(), CreateLinkRequest{DestinationURL: dest})
		assert.ErrorIs(t, err, ErrValidation, "destination %q", dest)
	}
	repo.AssertNotCalled(t, "Create")
}

func TestService_Create_UnknownConfigRef(t *testing.T) {
	repo := newMockRepository()
	configs := new(MockConfigResolver)
	configID := uint(99)
	configs.On("GetByID", mock.Anything, configID).Return(nil, provider.ErrNotFound)

	service := NewService(repo, configs, nil)

	_, err := service.Create(context.Background(), CreateLinkRequest{
		DestinationURL: "https://example.com",
		ConfigID:       &configID,
	})

	assert.ErrorIs(t, err, ErrInvalidConfigRef)
	repo.AssertNotCalled(t, "Create")
}

func TestService_Resolve_UnknownToken(t *testing.T) {
	repo := newMockRepository()
	repo.On("GetByToken", mock.Anything, "ghost").Return(nil, nil)

	service := NewService(repo, new(MockConfigResolver), nil)

	_, err := service.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_CascadesCaptures(t *testing.T) {
	repo := newMockRepository()
	repo.stored["tok1"] = &Link{Token: "tok1", DestinationURL: "https://example.com"}
	repo.On("GetByToken", mock.Anything, "tok1").Return(nil, nil)
	repo.On("Delete", mock.Anything, "tok1").Return(nil)

	cleaner := new(MockCaptureCleaner)
	cleaner.On("DeleteByLink", mock.Anything, "tok1").Return(nil)

	service := NewService(repo, new(MockConfigResolver), cleaner)

	err := service.Delete(context.Background(), "tok1")
	assert.NoError(t, err)
	cleaner.AssertCalled(t, "DeleteByLink", mock.Anything, "tok1")
	repo.AssertCalled(t, "Delete", mock.Anything, "tok1")
}

func TestService_Create_RetriesOnTokenCollision(t *testing.T) {
	repo := newMockRepository()
	var tokens []string
	record := func(args mock.Arguments) {
		tokens = append(tokens, args.Get(1).(*Link).Token)
	}
	repo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("constraint failed: UNIQUE constraint failed: links.token")).
		Run(record).Once()
	repo.On("Create", mock.Anything, mock.Anything).
		Return(nil).
		Run(record)

	service := NewService(repo, new(MockConfigResolver), nil)

	created, err := service.Create(context.Background(), CreateLinkRequest{
		DestinationURL: "https://example.com",
	})

	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.NotEqual(t, tokens[0], tokens[1], "a collision must produce a fresh token")
	assert.Equal(t, tokens[1], created.Token)
}

func TestService_Create_DoesNotRetryOtherErrors(t *testing.T) {
	repo := newMockRepository()
	cause := errors.New("disk I/O error")
	repo.On("Create", mock.Anything, mock.Anything).Return(cause)

	service := NewService(repo, new(MockConfigResolver), nil)

	_, err := service.Create(context.Background(), CreateLinkRequest{
		DestinationURL: "https://example.com",
	})

	assert.ErrorIs(t, err, cause)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: links.token")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("disk I/O error")))
}

func TestNewToken_UniqueAndURLSafe(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := NewToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "token collision: %s", token)
		seen[token] = true
		assert.Len(t, token, 22) // 16 bytes base64url, no padding
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")
	}
}
