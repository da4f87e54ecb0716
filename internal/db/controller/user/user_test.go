package user

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/db/models"
)

const address = "0x52908400098527886e0f7030069857d2e4169ee7"

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestResolveOrRegister(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		address       string
		calls         int
		expectedError error
		expectedCount int64
	}{
		{name: "nil database", address: address, calls: 1, expectedError: ErrDBNil},
		{name: "empty address", dbParam: db, calls: 1, expectedError: ErrAddressEmpty},
		{name: "first sight registers", dbParam: db, address: address, calls: 1, expectedCount: 1},
		{name: "second call is idempotent", dbParam: db, address: address, calls: 2, expectedCount: 1},
		{
			name:          "mixed case resolves to one user",
			dbParam:       db,
			address:       "0x52908400098527886E0F7030069857D2E4169EE7",
			calls:         3,
			expectedCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db.Exec("DELETE FROM users")

			var (
				user *models.User
				err  error
			)
			for range tc.calls {
				user, err = ResolveOrRegister(tc.dbParam, tc.address)
			}

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, address, user.Address)

			count, err := Count(db)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCount, count)
		})
	}
}

func TestResolveOrRegisterKeepsCreatedAt(t *testing.T) {
	db := setupTestDB(t)

	first, err := ResolveOrRegister(db, address)
	require.NoError(t, err)

	second, err := ResolveOrRegister(db, address)
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestResolveOrRegisterConcurrent(t *testing.T) {
	db := setupTestDB(t)

	// a single connection keeps the in-memory database shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ResolveOrRegister(db, address)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(db, address)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = ResolveOrRegister(db, address)
	require.NoError(t, err)

	user, err := Get(db, address)
	require.NoError(t, err)
	assert.Equal(t, address, user.Address)

	_, err = Get(nil, address)
	require.ErrorIs(t, err, ErrDBNil)
}
