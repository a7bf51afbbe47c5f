package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	UsersSheet  = "Users"
	SkillsSheet = "Skills"
)

// Store is what seeding writes through.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateSkill(ctx context.Context, skill *models.Skill) error
}

// Result counts what a workbook added.
type Result struct {
	UserIDs []string
	Skills  int
	Skipped int
}

// LoadFile seeds store from the workbook at path.
func LoadFile(ctx context.Context, path string, store Store) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open seed workbook: %w", err)
	}
	defer f.Close()
	return load(ctx, f, store)
}

// LoadReader seeds store from a workbook stream.
func LoadReader(ctx context.Context, r io.Reader, store Store) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open seed workbook: %w", err)
	}
	defer f.Close()
	return load(ctx, f, store)
}

// load reads the Users sheet (ID, Name, Email, Bio, Location, Profile Picture)
// and the Skills sheet (User ID, Role, Category, Name, Experience Level,
// Description). Row 1 of each sheet is a header. Users that already exist are
// left alone together with their skill rows, so reseeding a durable store is
// a no-op.
func load(ctx context.Context, f *excelize.File, store Store) (*Result, error) {
	users, err := f.GetRows(UsersSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", UsersSheet, err)
	}

	res := &Result{}
	created := make(map[string]bool)
	for i, row := range users {
		if i == 0 || len(row) < 2 { // Skip header or invalid rows
			continue
		}

		id := strings.TrimSpace(row[0])
		if id == "" {
			logger.Warn("Skipping seed user without id", "row", i+1)
			res.Skipped++
			continue
		}
		if _, err := store.GetUser(ctx, id); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, errors.ErrCodeNotFound) {
			return nil, err
		}

		user := &models.User{
			ID:             id,
			Name:           strings.TrimSpace(row[1]),
			Email:          cell(row, 2),
			Bio:            cell(row, 3),
			Location:       cell(row, 4),
			ProfilePicture: cell(row, 5),
		}
		if err := store.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("seed user row %d: %w", i+1, err)
		}
		created[id] = true
		res.UserIDs = append(res.UserIDs, id)
	}

	skills, err := f.GetRows(SkillsSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", SkillsSheet, err)
	}
	for i, row := range skills {
		if i == 0 || len(row) < 4 {
			continue
		}

		userID := strings.TrimSpace(row[0])
		if !created[userID] {
			res.Skipped++
			continue
		}

		skill := &models.Skill{
			UserID:          userID,
			Role:            strings.ToLower(strings.TrimSpace(row[1])),
			Category:        strings.TrimSpace(row[2]),
			Name:            strings.TrimSpace(row[3]),
			ExperienceLevel: cell(row, 4),
			Description:     cell(row, 5),
		}
		if err := store.CreateSkill(ctx, skill); err != nil {
			return nil, fmt.Errorf("seed skill row %d: %w", i+1, err)
		}
		res.Skills++
	}

	logger.Info("Seed workbook loaded", "users", len(res.UserIDs), "skills", res.Skills, "skipped", res.Skipped)
	return res, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
