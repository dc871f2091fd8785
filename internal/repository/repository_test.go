package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SibartechCompany/eWash-Backend/internal/apperrors"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/pagination"
)

// setupTestDB initializes an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(models.All()...)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func newTestClientRepo(db *gorm.DB) *Repository[models.Client] {
	return New[models.Client](db, Options{Name: "Client", TenantScoped: true, SoftDelete: true})
}

func seedClient(t *testing.T, repo *Repository[models.Client], orgID uuid.UUID, name, phone string) *models.Client {
	client := &models.Client{
		FullName:       name,
		Phone:          phone,
		OrganizationID: orgID,
	}
	require.NoError(t, repo.Create(context.Background(), client))
	return client
}

func TestGetNotFound(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))

	_, err := repo.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "Client not found", apperrors.MessageOf(err))
}

func TestGetIgnoresActiveFlag(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))
	ctx := context.Background()

	client := seedClient(t, repo, uuid.New(), "Maria Lopez", "3001234567")
	_, err := repo.Remove(ctx, client.ID)
	require.NoError(t, err)

	// Soft-deleted rows stay reachable by id.
	got, err := repo.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestRemoveIsIdempotent(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))
	ctx := context.Background()

	client := seedClient(t, repo, uuid.New(), "Maria Lopez", "3001234567")

	first, err := repo.Remove(ctx, client.ID)
	require.NoError(t, err)
	assert.False(t, first.IsActive)

	second, err := repo.Remove(ctx, client.ID)
	require.NoError(t, err, "removing an already-removed record is a no-op")
	assert.False(t, second.IsActive)
	assert.Equal(t, client.ID, second.ID)
}

func TestListScopesToTenant(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))
	ctx := context.Background()

	orgA := uuid.New()
	orgB := uuid.New()
	seedClient(t, repo, orgA, "Maria Lopez", "3001")
	seedClient(t, repo, orgA, "Juan Perez", "3002")
	seedClient(t, repo, orgB, "Carlos Ruiz", "3003")

	q := Query{TenantID: orgA, Params: pagination.Clamp(0, 10)}
	clients, err := repo.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
	for _, c := range clients {
		assert.Equal(t, orgA, c.OrganizationID)
	}

	total, err := repo.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestListExcludesSoftDeleted(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))
	ctx := context.Background()

	orgID := uuid.New()
	keep := seedClient(t, repo, orgID, "Maria Lopez", "3001")
	gone := seedClient(t, repo, orgID, "Juan Perez", "3002")
	_, err := repo.Remove(ctx, gone.ID)
	require.NoError(t, err)

	q := Query{TenantID: orgID, Params: pagination.Clamp(0, 10)}
	clients, err := repo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, keep.ID, clients[0].ID)

	total, err := repo.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "count must mirror the list predicate")
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))
	ctx := context.Background()

	orgID := uuid.New()
	seedClient(t, repo, orgID, "Maria Lopez", "3001")
	seedClient(t, repo, orgID, "Juan Perez", "3002")

	q := Query{
		TenantID:      orgID,
		Search:        "MARIA",
		SearchColumns: []string{"full_name", "phone", "email"},
		Params:        pagination.Clamp(0, 10),
	}
	clients, err := repo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Maria Lopez", clients[0].FullName)

	// Search across the OR-chain: phone match.
	q.Search = "3002"
	clients, err = repo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Juan Perez", clients[0].FullName)
}

func TestListBlankSearchIsNoop(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))
	ctx := context.Background()

	orgID := uuid.New()
	seedClient(t, repo, orgID, "Maria Lopez", "3001")
	seedClient(t, repo, orgID, "Juan Perez", "3002")

	q := Query{
		TenantID:      orgID,
		Search:        "   ",
		SearchColumns: []string{"full_name"},
		Params:        pagination.Clamp(0, 10),
	}
	clients, err := repo.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestListExactFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := New[models.Employee](db, Options{Name: "Employee", TenantScoped: true, SoftDelete: true})
	ctx := context.Background()

	orgID := uuid.New()
	active := &models.Employee{
		FullName: "Ana", DocumentType: models.DocumentTypeCC, DocumentNumber: "1",
		Phone: "300", Position: "washer", Status: models.EmployeeStatusActive,
		OrganizationID: orgID,
	}
	inactive := &models.Employee{
		FullName: "Luis", DocumentType: models.DocumentTypeCC, DocumentNumber: "2",
		Phone: "301", Position: "washer", Status: models.EmployeeStatusInactive,
		OrganizationID: orgID,
	}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	q := Query{
		TenantID: orgID,
		Filters:  map[string]interface{}{"status": models.EmployeeStatusInactive},
		Params:   pagination.Clamp(0, 10),
	}
	employees, err := repo.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Luis", employees[0].FullName)
}

func TestCreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := New[models.User](db, Options{Name: "User", TenantScoped: true, SoftDelete: true})
	ctx := context.Background()

	orgID := uuid.New()
	first := &models.User{
		Email: "admin@ewash.co", HashedPassword: "x", FullName: "Admin",
		Role: models.RoleAdmin, OrganizationID: orgID,
	}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.User{
		Email: "admin@ewash.co", HashedPassword: "x", FullName: "Admin Again",
		Role: models.RoleAdmin, OrganizationID: orgID,
	}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicate, apperrors.KindOf(err))
}

func TestUpdatePersistsPatch(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))
	ctx := context.Background()

	client := seedClient(t, repo, uuid.New(), "Maria Lopez", "3001")
	client.FullName = "Maria Gomez"
	require.NoError(t, repo.Update(ctx, client))

	got, err := repo.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Gomez", got.FullName)
	assert.Equal(t, "3001", got.Phone, "untouched fields keep their values")
}

func TestExistsActiveIgnoresSoftDeleted(t *testing.T) {
	repo := newTestClientRepo(setupTestDB(t))
	ctx := context.Background()

	orgID := uuid.New()
	client := seedClient(t, repo, orgID, "Maria Lopez", "3001")

	exists, err := repo.ExistsActive(ctx, "phone = ? AND organization_id = ?", "3001", orgID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Remove(ctx, client.ID)
	require.NoError(t, err)

	exists, err = repo.ExistsActive(ctx, "phone = ? AND organization_id = ?", "3001", orgID)
	require.NoError(t, err)
	assert.False(t, exists, "soft-deleted rows do not block reuse")
}
