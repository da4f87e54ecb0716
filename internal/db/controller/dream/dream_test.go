package dream

import (
	"math"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/apperr"
	"github.com/dreamboard/dreamboard/internal/db/models"
)

const (
	creatorA = "0x1111111111111111111111111111111111111111"
	creatorB = "0x2222222222222222222222222222222222222222"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Dream{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedDreams inserts test data into the database and returns the stored rows.
func seedDreams(t *testing.T, db *gorm.DB, dreams []models.Dream) []models.Dream {
	t.Helper()

	for i := range dreams {
		err := db.Create(&dreams[i]).Error
		require.NoError(t, err, "failed to seed test data")
	}

	return dreams
}

func newDream(title string, goal float64) models.Dream {
	return models.Dream{
		Title:       title,
		Description: "a description",
		FundingGoal: goal,
		Creator:     creatorA,
		Telegram:    "@dreamer",
		ImageURL:    "/api/images/test.png",
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	valid := func() *models.Dream {
		d := newDream("Build a boat", 10)
		d.Creator = "0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD"
		d.CurrentFunding = 5
		d.Status = models.DreamStatusCompleted
		return &d
	}

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		dream         func() *models.Dream
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			dream:         valid,
			expectedError: ErrDBNil,
		},
		{
			name:          "nil dream",
			dbParam:       db,
			dream:         func() *models.Dream { return nil },
			expectedError: ErrMissingFields,
		},
		{
			name:    "missing title",
			dbParam: db,
			dream: func() *models.Dream {
				d := valid()
				d.Title = ""
				return d
			},
			expectedError: ErrMissingFields,
		},
		{
			name:    "missing telegram",
			dbParam: db,
			dream: func() *models.Dream {
				d := valid()
				d.Telegram = ""
				return d
			},
			expectedError: ErrMissingFields,
		},
		{
			name:    "zero funding goal",
			dbParam: db,
			dream: func() *models.Dream {
				d := valid()
				d.FundingGoal = 0
				return d
			},
			expectedError: ErrMissingFields,
		},
		{
			name:    "infinite funding goal",
			dbParam: db,
			dream: func() *models.Dream {
				d := valid()
				d.FundingGoal = math.Inf(1)
				return d
			},
			expectedError: ErrInvalidFundingGoal,
		},
		{
			name:    "successful create",
			dbParam: db,
			dream:   valid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db.Exec("DELETE FROM dreams")

			dream, err := Create(tc.dbParam, tc.dream())

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, dream)

				var count int64
				require.NoError(t, db.Model(&models.Dream{}).Count(&count).Error)
				assert.Zero(t, count)
				return
			}

			require.NoError(t, err)
			assert.NoError(t, uuid.Validate(dream.ID))
			assert.Equal(t, models.DreamStatusActive, dream.Status)
			assert.Zero(t, dream.CurrentFunding)
			assert.Equal(t, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd", dream.Creator)
			assert.False(t, dream.CreatedAt.IsZero())

			stored, err := GetByID(db, dream.ID)
			require.NoError(t, err)
			assert.Equal(t, dream.Creator, stored.Creator)
			assert.Equal(t, models.DreamStatusActive, stored.Status)
		})
	}
}

func TestMissingFieldsIsValidation(t *testing.T) {
	assert.ErrorIs(t, ErrMissingFields, apperr.ErrValidation)
	assert.ErrorIs(t, ErrDreamNotFound, apperr.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedDreams(t, db, []models.Dream{newDream("Learn to fly", 3)})

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		id            string
		expectedError error
	}{
		{name: "nil database", dbParam: nil, id: seeded[0].ID, expectedError: ErrDBNil},
		{name: "malformed id", dbParam: db, id: "not-a-uuid", expectedError: ErrDreamNotFound},
		{name: "unknown id", dbParam: db, id: uuid.NewString(), expectedError: ErrDreamNotFound},
		{name: "successful get", dbParam: db, id: seeded[0].ID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dream, err := GetByID(tc.dbParam, tc.id)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, dream)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Learn to fly", dream.Title)
		})
	}
}

func TestOwner(t *testing.T) {
	db := setupTestDB(t)

	d := newDream("Open a bakery", 7)
	d.Creator = creatorB
	seeded := seedDreams(t, db, []models.Dream{d})

	owner, err := Owner(db, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, creatorB, owner)

	_, err = Owner(db, uuid.NewString())
	require.ErrorIs(t, err, ErrDreamNotFound)
}

func TestUpdateByID(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		update        Update
		unknownID     bool
		expectedError error
		check         func(t *testing.T, before, after *models.Dream)
	}{
		{
			name:          "unknown id",
			unknownID:     true,
			update:        Update{Title: ptr("new")},
			expectedError: ErrDreamNotFound,
		},
		{
			name:          "invalid status",
			update:        Update{Status: ptr(models.DreamStatus("paused"))},
			expectedError: ErrInvalidStatus,
		},
		{
			name:          "infinite funding goal",
			update:        Update{FundingGoal: ptr(math.Inf(1))},
			expectedError: ErrInvalidFundingGoal,
		},
		{
			name: "applies present fields",
			update: Update{
				Title:       ptr("Sail around the world"),
				FundingGoal: ptr(42.5),
				Status:      ptr(models.DreamStatusFunded),
				ImageURL:    ptr("/api/images/boat.png"),
			},
			check: func(t *testing.T, before, after *models.Dream) {
				t.Helper()
				assert.Equal(t, "Sail around the world", after.Title)
				assert.InDelta(t, 42.5, after.FundingGoal, 0.0001)
				assert.Equal(t, models.DreamStatusFunded, after.Status)
				assert.Equal(t, "/api/images/boat.png", after.ImageURL)
				assert.Equal(t, before.Description, after.Description)
				assert.Equal(t, before.Telegram, after.Telegram)
			},
		},
		{
			name: "ignores empty strings and non positive goal",
			update: Update{
				Title:       ptr(""),
				Description: ptr(""),
				FundingGoal: ptr(-1.0),
				Status:      ptr(models.DreamStatus("")),
				ImageURL:    ptr(""),
			},
			check: func(t *testing.T, before, after *models.Dream) {
				t.Helper()
				assert.Equal(t, before.Title, after.Title)
				assert.Equal(t, before.Description, after.Description)
				assert.InDelta(t, before.FundingGoal, after.FundingGoal, 0.0001)
				assert.Equal(t, before.Status, after.Status)
				assert.Equal(t, before.ImageURL, after.ImageURL)
			},
		},
		{
			name:   "empty telegram clears the contact",
			update: Update{Telegram: ptr("")},
			check: func(t *testing.T, _, after *models.Dream) {
				t.Helper()
				assert.Empty(t, after.Telegram)
			},
		},
		{
			name:   "empty update refreshes updatedAt",
			update: Update{},
			check: func(t *testing.T, before, after *models.Dream) {
				t.Helper()
				assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
				assert.Equal(t, before.Title, after.Title)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db.Exec("DELETE FROM dreams")

			d := newDream("Build a boat", 10)
			d.CreatedAt = time.Now().Add(-time.Hour)
			d.UpdatedAt = d.CreatedAt
			before := seedDreams(t, db, []models.Dream{d})[0]

			id := before.ID
			if tc.unknownID {
				id = uuid.NewString()
			}

			after, err := UpdateByID(db, id, tc.update)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, after)
				return
			}

			require.NoError(t, err)
			assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
			tc.check(t, &before, after)
		})
	}
}

func TestDeleteByID(t *testing.T) {
	db := setupTestDB(t)
	seeded := seedDreams(t, db, []models.Dream{newDream("Plant a forest", 100)})

	require.ErrorIs(t, DeleteByID(nil, seeded[0].ID), ErrDBNil)
	require.ErrorIs(t, DeleteByID(db, "garbage"), ErrDreamNotFound)

	require.NoError(t, DeleteByID(db, seeded[0].ID))
	require.ErrorIs(t, DeleteByID(db, seeded[0].ID), ErrDreamNotFound)

	_, err := GetByID(db, seeded[0].ID)
	require.ErrorIs(t, err, ErrDreamNotFound)
}

func TestList(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	dreams := make([]models.Dream, 0, 12)
	for i, goal := range []float64{5, 1, 3} {
		d := newDream("goal", goal)
		d.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		dreams = append(dreams, d)
	}
	for i := range 9 {
		d := newDream("filler", 50)
		d.CreatedAt = now.Add(-time.Duration(i+1) * time.Hour)
		dreams = append(dreams, d)
	}
	seedDreams(t, db, dreams)

	goals := func(dreams []models.Dream) []float64 {
		out := make([]float64, 0, len(dreams))
		for _, d := range dreams {
			out = append(out, d.FundingGoal)
		}
		return out
	}

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		opts          ListOptions
		expectedError error
		check         func(t *testing.T, dreams []models.Dream)
	}{
		{
			name:          "nil database",
			opts:          ListOptions{},
			expectedError: ErrDBNil,
		},
		{
			name:          "unknown sort field",
			dbParam:       db,
			opts:          ListOptions{SortBy: "creator"},
			expectedError: ErrInvalidSortField,
		},
		{
			name:    "funding goal ascending limited",
			dbParam: db,
			opts:    ListOptions{SortBy: "fundingGoal", Order: "asc", Limit: 2},
			check: func(t *testing.T, dreams []models.Dream) {
				t.Helper()
				assert.Equal(t, []float64{1, 3}, goals(dreams))
			},
		},
		{
			name:    "defaults to newest nine",
			dbParam: db,
			opts:    ListOptions{},
			check: func(t *testing.T, dreams []models.Dream) {
				t.Helper()
				require.Len(t, dreams, DefaultLimit)
				assert.Equal(t, []float64{3, 1, 5}, goals(dreams[:3]))
			},
		},
		{
			name:    "unknown order sorts descending",
			dbParam: db,
			opts:    ListOptions{SortBy: "fundingGoal", Order: "sideways", Limit: 1},
			check: func(t *testing.T, dreams []models.Dream) {
				t.Helper()
				assert.Equal(t, []float64{50}, goals(dreams))
			},
		},
		{
			name:    "negative limit falls back to default",
			dbParam: db,
			opts:    ListOptions{Limit: -3},
			check: func(t *testing.T, dreams []models.Dream) {
				t.Helper()
				assert.Len(t, dreams, DefaultLimit)
			},
		},
		{
			name:    "ties ordered by id",
			dbParam: db,
			opts:    ListOptions{SortBy: "fundingGoal", Limit: 9},
			check: func(t *testing.T, dreams []models.Dream) {
				t.Helper()
				for i := 1; i < len(dreams); i++ {
					assert.Less(t, dreams[i-1].ID, dreams[i].ID)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dreams, err := List(tc.dbParam, tc.opts)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, dreams)
				return
			}

			require.NoError(t, err)
			tc.check(t, dreams)
		})
	}
}

func TestListOptionsNormalize(t *testing.T) {
	opts, err := ListOptions{Order: "ASC", Limit: 500}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, ListOptions{SortBy: DefaultSortBy, Order: OrderAsc, Limit: MaxLimit}, opts)

	for _, field := range SortFields() {
		_, err = ListOptions{SortBy: field}.Normalize()
		assert.NoError(t, err, field)
	}
}
