package seed

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"comic_portfolio/database/dbtest"
	"comic_portfolio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	charactersJSON = `[
		{"page_id": "1678", "name": "peter PARKER", "sex": "M", "alive": true, "first_appearance": 1962},
		{"page_id": "1009", "name": " mary jane watson ", "sex": "F", "alive": true, "first_appearance": 1965}
	]`
	tagGroupsJSON = `[{"name": "genre", "description": "Story genre"}]`
	tagsJSON      = `[
		{"name": " tag one ", "description": "d"},
		{"name": "noir", "description": "Dark", "group": 1}
	]`
	artistsJSON = `[{"name": "jack kirby", "twitter": "@king"}]`
)

type fixtureSet map[string]string

func writeFixtures(t *testing.T, files fixtureSet) Fixtures {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return DefaultFixtures(dir)
}

func fullFixtures() fixtureSet {
	return fixtureSet{
		"characters.json": charactersJSON,
		"tag_groups.json": tagGroupsJSON,
		"tags.json":       tagsJSON,
		"artists.json":    artistsJSON,
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func assertEmpty(t *testing.T, db *gorm.DB) {
	t.Helper()
	assert.Zero(t, count(t, db, &models.Character{}))
	assert.Zero(t, count(t, db, &models.TagGroup{}))
	assert.Zero(t, count(t, db, &models.Tag{}))
	assert.Zero(t, count(t, db, &models.Artist{}))
}

func TestRunIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")
	fx := writeFixtures(t, fullFixtures())

	var out bytes.Buffer
	loader := &Loader{DB: db, Out: &out, Show: true}

	first, err := loader.Run(context.Background(), admin, fx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Created: 2}, first.Characters)
	assert.Equal(t, Counts{Created: 1}, first.TagGroups)
	assert.Equal(t, Counts{Created: 2}, first.Tags)
	assert.Equal(t, Counts{Created: 1}, first.Artists)

	second, err := loader.Run(context.Background(), admin, fx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Skipped: 2}, second.Characters)
	assert.Equal(t, Counts{Skipped: 2}, second.Tags)
	assert.Equal(t, Counts{Skipped: 1}, second.Artists)

	assert.EqualValues(t, 2, count(t, db, &models.Character{}))
	assert.EqualValues(t, 1, count(t, db, &models.TagGroup{}))
	assert.EqualValues(t, 2, count(t, db, &models.Tag{}))
	assert.EqualValues(t, 1, count(t, db, &models.Artist{}))

	assert.Contains(t, out.String(), "Creating Character Object: Peter Parker")
	assert.Contains(t, out.String(), "Character Peter Parker already exists, skipping creation...")
	assert.Contains(t, out.String(), "Seeding Finished!")
}

func TestRunNormalizesTagOnce(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")
	fx := writeFixtures(t, fixtureSet{
		"characters.json": `[]`,
		"tag_groups.json": `[]`,
		"tags.json":       `[{"name": " tag one ", "description": "d"}]`,
		"artists.json":    `[]`,
	})
	loader := &Loader{DB: db}

	for i := 0; i < 2; i++ {
		_, err := loader.Run(context.Background(), admin, fx)
		require.NoError(t, err)
	}

	var tags []models.Tag
	require.NoError(t, db.Find(&tags).Error)
	require.Len(t, tags, 1)
	assert.Equal(t, "Tag One", tags[0].Name)
	assert.Equal(t, admin.ID, tags[0].CreatedByID)
}

func TestRunQuietSkipsNotices(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")
	fx := writeFixtures(t, fullFixtures())

	_, err := (&Loader{DB: db}).Run(context.Background(), admin, fx)
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = (&Loader{DB: db, Out: &out}).Run(context.Background(), admin, fx)
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "already exists")
	assert.Contains(t, out.String(), "Finished seeding characters (0 created, 2 skipped).")
}

func TestRunPopulatesFields(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")
	fx := writeFixtures(t, fullFixtures())

	_, err := (&Loader{DB: db}).Run(context.Background(), admin, fx)
	require.NoError(t, err)

	var mj models.Character
	require.NoError(t, db.Where("name = ?", "Mary Jane Watson").First(&mj).Error)
	assert.Equal(t, "mary-jane-watson", mj.Slug)
	assert.Equal(t, models.SexFemale, mj.Sex)
	assert.Equal(t, "1965-01-01", mj.FirstAppearance.String())
	assert.Equal(t, admin.ID, mj.CreatedByID)

	var noir models.Tag
	require.NoError(t, db.Where("name = ?", "Noir").First(&noir).Error)
	require.NotNil(t, noir.GroupID)
	var group models.TagGroup
	require.NoError(t, db.First(&group, *noir.GroupID).Error)
	assert.Equal(t, "Genre", group.Name)

	var kirby models.Artist
	require.NoError(t, db.First(&kirby).Error)
	assert.Equal(t, "Jack Kirby", kirby.Name)
	assert.Equal(t, "jack-kirby", kirby.Slug)
	require.NotNil(t, kirby.Twitter)
	assert.Equal(t, "@king", *kirby.Twitter)
}

func TestRunWithoutAdminWritesNothing(t *testing.T) {
	db := dbtest.New(t)
	fx := writeFixtures(t, fullFixtures())

	admin, err := ResolveAdmin(context.Background(), db, "")
	assert.ErrorIs(t, err, ErrNoAdmin)

	_, err = (&Loader{DB: db}).Run(context.Background(), admin, fx)
	assert.ErrorIs(t, err, ErrNoAdmin)
	assertEmpty(t, db)
}

func TestRunWithNonAdminWritesNothing(t *testing.T) {
	db := dbtest.New(t)
	user := dbtest.CreateUser(t, db, "user@example.com")
	fx := writeFixtures(t, fullFixtures())

	resolved, err := ResolveAdmin(context.Background(), db, "user@example.com")
	require.NoError(t, err)

	_, err = (&Loader{DB: db}).Run(context.Background(), resolved, fx)
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.Equal(t, user.ID, resolved.ID)
	assertEmpty(t, db)
}

func TestRunMissingFixtureWritesNothing(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")
	files := fullFixtures()
	delete(files, "artists.json")
	fx := writeFixtures(t, files)

	_, err := (&Loader{DB: db}).Run(context.Background(), admin, fx)
	assert.ErrorIs(t, err, ErrFixtureMissing)
	assertEmpty(t, db)
}

func TestRunMalformedFixtureWritesNothing(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")
	files := fullFixtures()
	files["tags.json"] = `[{"name": "broken"`
	fx := writeFixtures(t, files)

	_, err := (&Loader{DB: db}).Run(context.Background(), admin, fx)
	assert.ErrorIs(t, err, ErrFixtureMalformed)
	assertEmpty(t, db)
}

func TestRunStopsAtBadRecord(t *testing.T) {
	tests := map[string]string{
		"unknown field":    `[{"name": "a", "sex": "M", "alive": true, "first_appearance": 1990}, {"name": "b", "sex": "M", "alive": true, "first_appearance": 1990, "power": "flight"}, {"name": "c", "sex": "M", "alive": true, "first_appearance": 1990}]`,
		"invalid sex":      `[{"name": "a", "sex": "M", "alive": true, "first_appearance": 1990}, {"name": "b", "sex": "X", "alive": true, "first_appearance": 1990}, {"name": "c", "sex": "M", "alive": true, "first_appearance": 1990}]`,
		"missing required": `[{"name": "a", "sex": "M", "alive": true, "first_appearance": 1990}, {"name": "b", "sex": "M"}, {"name": "c", "sex": "M", "alive": true, "first_appearance": 1990}]`,
	}
	for name, characters := range tests {
		t.Run(name, func(t *testing.T) {
			db := dbtest.New(t)
			admin := dbtest.CreateAdmin(t, db, "admin@example.com")
			files := fullFixtures()
			files["characters.json"] = characters
			fx := writeFixtures(t, files)

			_, err := (&Loader{DB: db}).Run(context.Background(), admin, fx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "characters record 1")

			var names []string
			require.NoError(t, db.Model(&models.Character{}).Order("id").Pluck("name", &names).Error)
			assert.Equal(t, []string{"A"}, names)
			assert.Zero(t, count(t, db, &models.Tag{}))
		})
	}
}

func TestRunRejectsBlankNames(t *testing.T) {
	tests := map[string]struct {
		file    string
		content string
		prefix  string
	}{
		"character": {"characters.json", `[{"name": "   ", "sex": "M", "alive": true, "first_appearance": 1990}]`, "characters record 0"},
		"tag group": {"tag_groups.json", `[{"name": " ", "description": "d"}]`, "tag groups record 0"},
		"tag":       {"tags.json", `[{"name": "noir", "description": "d"}, {"name": "   ", "description": "d"}]`, "tags record 1"},
		"artist":    {"artists.json", `[{"name": "\t"}]`, "artists record 0"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			db := dbtest.New(t)
			admin := dbtest.CreateAdmin(t, db, "admin@example.com")
			files := fullFixtures()
			files[tt.file] = tt.content
			fx := writeFixtures(t, files)

			_, err := (&Loader{DB: db}).Run(context.Background(), admin, fx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.prefix)
			assert.Contains(t, err.Error(), "name: may not be blank")

			var blank int64
			for _, model := range []any{&models.Character{}, &models.TagGroup{}, &models.Tag{}, &models.Artist{}} {
				require.NoError(t, db.Model(model).Where("name = ''").Count(&blank).Error)
				assert.Zero(t, blank)
			}
		})
	}
}

func TestRunRejectsLongTagName(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")
	files := fullFixtures()
	files["tags.json"] = `[{"name": "  twenty characters!!!  ", "description": "d"}, {"name": "twenty-one characters", "description": "d"}]`
	fx := writeFixtures(t, files)

	_, err := (&Loader{DB: db}).Run(context.Background(), admin, fx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tags record 1")
	assert.Contains(t, err.Error(), "must be at most 20 characters")
	assert.EqualValues(t, 1, count(t, db, &models.Tag{}))
}

func TestRunRejectsUnknownTagGroup(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")
	files := fullFixtures()
	files["tags.json"] = `[{"name": "noir", "description": "Dark", "group": 9}]`
	fx := writeFixtures(t, files)

	_, err := (&Loader{DB: db}).Run(context.Background(), admin, fx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag group 9 does not exist")
}

func TestResolveAdmin(t *testing.T) {
	db := dbtest.New(t)
	dbtest.CreateUser(t, db, "user@example.com")
	first := dbtest.CreateAdmin(t, db, "first@example.com")
	dbtest.CreateAdmin(t, db, "second@example.com")

	got, err := ResolveAdmin(context.Background(), db, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = ResolveAdmin(context.Background(), db, "second@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, "second@example.com", got.Email)

	_, err = ResolveAdmin(context.Background(), db, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNoAdmin)
}

func TestShippedFixturesLoad(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateAdmin(t, db, "admin@example.com")

	report, err := (&Loader{DB: db}).Run(context.Background(), admin, DefaultFixtures(filepath.Join("..", "seed_data")))
	require.NoError(t, err)
	assert.NotZero(t, report.Characters.Created)
	assert.NotZero(t, report.TagGroups.Created)
	assert.NotZero(t, report.Tags.Created)
	assert.NotZero(t, report.Artists.Created)
}
