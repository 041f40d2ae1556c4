// Package seed loads the reference characters, tag groups, tags and artists
// from JSON fixtures. Loading is idempotent: a record whose normalized name is
// already stored is skipped, so the loader can run on every deployment.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"comic_portfolio/database"
	"comic_portfolio/models"

	"gorm.io/gorm"
)

var (
	ErrNoAdmin          = errors.New("no administrator found")
	ErrNotAdmin         = errors.New("user is not an administrator")
	ErrFixtureMissing   = errors.New("fixture file missing")
	ErrFixtureMalformed = errors.New("fixture file malformed")
)

// Fixtures names the JSON file holding each category.
type Fixtures struct {
	Characters string
	TagGroups  string
	Tags       string
	Artists    string
}

// DefaultFixtures are the fixture files inside dir.
func DefaultFixtures(dir string) Fixtures {
	return Fixtures{
		Characters: filepath.Join(dir, "characters.json"),
		TagGroups:  filepath.Join(dir, "tag_groups.json"),
		Tags:       filepath.Join(dir, "tags.json"),
		Artists:    filepath.Join(dir, "artists.json"),
	}
}

// Counts tallies one category.
type Counts struct {
	Created int
	Skipped int
}

type Report struct {
	Characters Counts
	TagGroups  Counts
	Tags       Counts
	Artists    Counts
}

type Loader struct {
	DB *gorm.DB
	// Out receives the human-readable progress lines.
	Out io.Writer
	// Show prints a notice for every record that already exists.
	Show   bool
	Logger *slog.Logger
}

// Run loads every category in fx, attributing new rows to admin. Nothing is
// written unless admin is an administrator and every fixture parses as a JSON
// array. A bad record stops the run; rows stored before it remain.
func (l *Loader) Run(ctx context.Context, admin *models.User, fx Fixtures) (Report, error) {
	var report Report

	if admin == nil {
		return report, ErrNoAdmin
	}
	if !admin.IsAdmin() {
		return report, fmt.Errorf("%w: %s", ErrNotAdmin, admin.Email)
	}

	characters, err := readFixture(fx.Characters)
	if err != nil {
		return report, err
	}
	tagGroups, err := readFixture(fx.TagGroups)
	if err != nil {
		return report, err
	}
	tags, err := readFixture(fx.Tags)
	if err != nil {
		return report, err
	}
	artists, err := readFixture(fx.Artists)
	if err != nil {
		return report, err
	}

	db := l.DB.WithContext(ctx)

	if report.Characters, err = loadCategory[characterRecord, models.Character](l, db, admin, "Character", "characters", characters); err != nil {
		return report, err
	}
	if report.TagGroups, err = loadCategory[tagGroupRecord, models.TagGroup](l, db, admin, "Tag Group", "tag groups", tagGroups); err != nil {
		return report, err
	}
	if report.Tags, err = loadCategory[tagRecord, models.Tag](l, db, admin, "Tag", "tags", tags); err != nil {
		return report, err
	}
	if report.Artists, err = loadCategory[artistRecord, models.Artist](l, db, admin, "Artist", "artists", artists); err != nil {
		return report, err
	}

	l.printf("Seeding Finished!\n")
	return report, nil
}

func loadCategory[R record[T], T any](l *Loader, db *gorm.DB, admin *models.User, kind, plural string, raws []json.RawMessage) (Counts, error) {
	var counts Counts
	for i, raw := range raws {
		var rec R
		if err := decodeRecord(raw, &rec); err != nil {
			return counts, fmt.Errorf("%s record %d: %w", plural, i, err)
		}

		entity, key, err := rec.build(db, admin)
		if err != nil {
			return counts, fmt.Errorf("%s record %d: %w", plural, i, err)
		}

		_, outcome, err := database.FindOrCreate(db, entity, "name", key)
		if err != nil {
			return counts, fmt.Errorf("%s record %d (%s): %w", plural, i, key, err)
		}

		switch outcome {
		case database.Found:
			counts.Skipped++
			if l.Show {
				l.printf("%s %s already exists, skipping creation...\n", kind, key)
			}
		case database.Created:
			counts.Created++
			l.printf("Creating %s Object: %s\n", kind, key)
		}
	}

	l.printf("Finished seeding %s (%d created, %d skipped).\n", plural, counts.Created, counts.Skipped)
	if l.Logger != nil {
		l.Logger.Info("seeded category",
			slog.String("category", plural),
			slog.Int("created", counts.Created),
			slog.Int("skipped", counts.Skipped))
	}
	return counts, nil
}

func (l *Loader) printf(format string, args ...any) {
	if l.Out != nil {
		fmt.Fprintf(l.Out, format, args...)
	}
}

func readFixture(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFixtureMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFixtureMalformed, path, err)
	}
	return raws, nil
}

// ResolveAdmin finds the identity the seeded rows are attributed to: the user
// with the given email, or the first superuser when email is empty.
func ResolveAdmin(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	q := db.WithContext(ctx)
	if email != "" {
		q = q.Where("email = ?", models.NormalizeEmail(email))
	} else {
		q = q.Where("is_superuser = ?", true).Order("id")
	}

	var user models.User
	err := q.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoAdmin
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
