package member_test

import (
	"context"
	"testing"
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/member"
	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_UsesInjectedSaver(t *testing.T) {
	// Given: a saver with its own clock and current-user lookup
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	saver := audit.NewSaver().WithClock(func() time.Time { return fixed })
	saver.CurrentUser = func(context.Context) (audit.Actor, bool) {
		return audit.Actor{ID: 99}, true
	}
	repository := member.NewMemberRepository(saver)

	// When
	m := model.NewMember("Injected", "injected@example.com", "010-1111-2222", "hashed")
	require.NoError(t, repository.Create(context.Background(), db, m))

	// Then
	stored, err := repository.FindByID(context.Background(), db, m.ID)
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(fixed))
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, uint32(99), *stored.CreatedBy)
}
