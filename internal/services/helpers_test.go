package services

import (
	"context"
	"testing"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/internal/repositories/memstore"
	"github.com/stretchr/testify/require"
)

type skillSeed struct {
	role     string
	category string
	name     string
}

func teaches(category, name string) skillSeed {
	return skillSeed{role: models.SkillRoleTeach, category: category, name: name}
}

func learns(category, name string) skillSeed {
	return skillSeed{role: models.SkillRoleLearn, category: category, name: name}
}

func addUser(t *testing.T, store *memstore.Store, name string, skills ...skillSeed) string {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Name: name, ProfilePicture: "https://img.example/" + name}
	require.NoError(t, store.CreateUser(ctx, user))
	for _, sk := range skills {
		require.NoError(t, store.CreateSkill(ctx, &models.Skill{
			UserID:   user.ID,
			Name:     sk.name,
			Category: sk.category,
			Role:     sk.role,
		}))
	}
	return user.ID
}

func userIDs(matches []PotentialMatch) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.UserID)
	}
	return ids
}
