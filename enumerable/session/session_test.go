package session_test

import (
	"context"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/diff"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/session"
	. "github.com/AntonStoeckl/lazy-enumerable-go/testutil/observability/helper" //nolint:revive
)

func Test_Session_IsAnalyzedExactlyOnce(t *testing.T) {
	// arrange
	items := []any{"A"}
	raiser, _ := givenRaiser(t, &items)
	ctx := context.Background()
	require.NoError(t, raiser.SetEventRaising(ctx, false, false))
	s := raiser.Session()

	engine, err := diff.NewEngine()
	require.NoError(t, err)

	// act
	_, errBeforeFinish := s.Analyze(ctx, engine)
	s.Finish(diff.Snapshot{Items: []any{"A", "B"}})
	records, errFirst := s.Analyze(ctx, engine)
	_, errSecond := s.Analyze(ctx, engine)

	// assert
	assert.ErrorIs(t, errBeforeFinish, enumerable.ErrSessionNotFinished)
	require.NoError(t, errFirst)
	assert.Len(t, records, 1)
	assert.ErrorIs(t, errSecond, enumerable.ErrSessionAlreadyAnalyzed)
	assert.Equal(t, uuid.Version(7), s.ID.Version())
}

func Test_Session_CapturesContents(t *testing.T) {
	items := []any{map[string]int{"a": 1}}
	raiser, _ := givenRaiser(t, &items)
	require.NoError(t, raiser.SetEventRaising(context.Background(), false, false))

	assert.Equal(t, []any{`{"a":1}`}, raiser.Session().Before.Contents)
}

func Test_Session_UsesCustomContents(t *testing.T) {
	items := []any{"A"}
	raiser, _ := givenRaiser(t, &items, session.WithContents(func(item any) any { return "v1" }))
	require.NoError(t, raiser.SetEventRaising(context.Background(), false, false))

	assert.Equal(t, []any{"v1"}, raiser.Session().Before.Contents)
}

func Test_Session_ReplayRebuildsSuppressedState(t *testing.T) {
	testCases := []struct {
		name  string
		items func(t *testing.T) []any
	}{
		{
			name: "distinct strings",
			items: func(*testing.T) []any {
				return GivenItems(40)
			},
		},
		{
			name: "unique ids",
			items: func(t *testing.T) []any {
				ids := make([]any, 10)
				for i := range ids {
					ids[i] = GivenUniqueID(t)
				}

				return ids
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			items := tc.items(t)
			before := slices.Clone(items)
			raiser, rec := givenRaiser(t, &items)
			ctx := context.Background()
			require.NoError(t, raiser.SetEventRaising(ctx, false, false))

			// act
			slices.Reverse(items)
			items = slices.Delete(items, 1, 3)
			items = append(items, before[2])
			err := raiser.SetEventRaising(ctx, true, true)

			// assert
			require.NoError(t, err)

			replayed, err := diff.Apply(before, rec.records)
			require.NoError(t, err)
			assert.Equal(t, items, replayed)
		})
	}
}
