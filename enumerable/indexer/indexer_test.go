package indexer_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/indexer"
)

type book struct {
	Title  string
	Author string
	Tags   []string
	secret string
}

type shelf struct {
	books []any
	reads int
}

func (s *shelf) Len() int {
	return len(s.books)
}

func (s *shelf) At(position int) (any, error) {
	if err := enumerable.CheckPosition(position, len(s.books)); err != nil {
		return nil, err
	}

	s.reads++

	return s.books[position], nil
}

func (s *shelf) insert(position int, items ...any) {
	s.books = slices.Insert(s.books, position, items...)
}

func (s *shelf) delete(position, count int) {
	s.books = slices.Delete(s.books, position, position+count)
}

func givenShelf() *shelf {
	return &shelf{books: []any{
		book{Title: "Dune", Author: "Herbert"},
		book{Title: "Emma", Author: "Austen"},
		book{Title: "Persuasion", Author: "Austen"},
		book{Title: "Solaris", Author: "Lem"},
		book{Title: "Eden", Author: "Lem"},
		book{Title: "Sense and Sensibility", Author: "Austen"},
	}}
}

func givenIndexer(t *testing.T, source indexer.Sequence) *indexer.Indexer {
	t.Helper()

	ix, err := indexer.New(source)
	require.NoError(t, err)

	return ix
}

// assertMatchesRebuild compares every author bucket of ix with a freshly built index over the same source.
func assertMatchesRebuild(t *testing.T, ix *indexer.Indexer, source *shelf) {
	t.Helper()

	rebuilt := givenIndexer(t, source)

	for _, author := range []string{"Herbert", "Austen", "Lem", "Tolkien"} {
		expected, err := rebuilt.GetIndicesByValue("Author", author)
		require.NoError(t, err)

		actual, err := ix.GetIndicesByValue("Author", author)
		require.NoError(t, err)

		assert.Equal(t, expected, actual, "positions of %s", author)
	}
}

func Test_Indexer_Lookups(t *testing.T) {
	ix := givenIndexer(t, givenShelf())

	testCases := []struct {
		name    string
		value   any
		first   int
		indices []int
	}{
		{name: "several matches", value: "Austen", first: 1, indices: []int{1, 2, 5}},
		{name: "single match", value: "Herbert", first: 0, indices: []int{0}},
		{name: "no match", value: "Tolkien", first: -1, indices: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			first, err := ix.GetIndexByValue("Author", tc.value)
			require.NoError(t, err)
			indices, err := ix.GetIndicesByValue("Author", tc.value)
			require.NoError(t, err)

			assert.Equal(t, tc.first, first)
			assert.Equal(t, tc.indices, indices)
		})
	}
}

func Test_Indexer_BuildsOncePerProperty(t *testing.T) {
	source := givenShelf()
	ix := givenIndexer(t, source)

	_, err := ix.GetIndexByValue("Author", "Lem")
	require.NoError(t, err)
	_, err = ix.GetIndicesByValue("Author", "Austen")
	require.NoError(t, err)

	assert.Equal(t, len(source.books), source.reads)

	_, err = ix.GetIndexByValue("Title", "Eden")
	require.NoError(t, err)

	assert.Equal(t, 2*len(source.books), source.reads)
}

func Test_Indexer_LookupResultIsACopy(t *testing.T) {
	ix := givenIndexer(t, givenShelf())

	indices, err := ix.GetIndicesByValue("Author", "Lem")
	require.NoError(t, err)
	indices[0] = 99

	again, err := ix.GetIndicesByValue("Author", "Lem")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, again)
}

func Test_Indexer_CompositeValuesAreBucketedByContent(t *testing.T) {
	source := &shelf{books: []any{
		book{Title: "A", Tags: []string{"sf", "classic"}},
		book{Title: "B", Tags: []string{"romance"}},
		book{Title: "C", Tags: []string{"sf", "classic"}},
	}}
	ix := givenIndexer(t, source)

	indices, err := ix.GetIndicesByValue("Tags", []string{"sf", "classic"})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, indices)
}

func Test_Indexer_RemoveFromIndexMatchesRebuild(t *testing.T) {
	// arrange
	source := givenShelf()
	ix := givenIndexer(t, source)
	_, err := ix.GetIndicesByValue("Author", "Austen")
	require.NoError(t, err)

	// act
	source.delete(2, 1)
	err = ix.RemoveFromIndex(2, 1)

	// assert
	require.NoError(t, err)
	assertMatchesRebuild(t, ix, source)

	indices, err := ix.GetIndicesByValue("Author", "Austen")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, indices)
}

func Test_Indexer_InsertWithShiftAndUpdateMatchesRebuild(t *testing.T) {
	// arrange
	source := givenShelf()
	ix := givenIndexer(t, source)
	_, err := ix.GetIndicesByValue("Author", "Lem")
	require.NoError(t, err)
	oldLength := source.Len()

	// act
	source.insert(1, book{Title: "Fiasco", Author: "Lem"}, book{Title: "Hobbit", Author: "Tolkien"})
	require.NoError(t, ix.ShiftIndex(1, oldLength-1, 2))
	require.NoError(t, ix.UpdateIndex(1, 2))

	// assert
	assertMatchesRebuild(t, ix, source)

	indices, err := ix.GetIndicesByValue("Author", "Lem")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 6}, indices)
}

func Test_Indexer_UpdateIndexReplacesStalePositions(t *testing.T) {
	source := givenShelf()
	ix := givenIndexer(t, source)
	_, err := ix.GetIndicesByValue("Author", "Herbert")
	require.NoError(t, err)

	source.books[0] = book{Title: "Ubik", Author: "Dick"}
	require.NoError(t, ix.UpdateIndex(0, 1))

	first, err := ix.GetIndexByValue("Author", "Herbert")
	require.NoError(t, err)
	assert.Equal(t, -1, first)

	first, err = ix.GetIndexByValue("Author", "Dick")
	require.NoError(t, err)
	assert.Equal(t, 0, first)

	assertMatchesRebuild(t, ix, source)
}

func Test_Indexer_ShiftOnlyTouchesWindow(t *testing.T) {
	ix := givenIndexer(t, givenShelf())
	_, err := ix.GetIndicesByValue("Author", "Austen")
	require.NoError(t, err)

	require.NoError(t, ix.ShiftIndex(2, 2, 10))

	indices, err := ix.GetIndicesByValue("Author", "Austen")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 12}, indices)
}

func Test_Indexer_ResetIndexRebuildsOnNextLookup(t *testing.T) {
	source := givenShelf()
	ix := givenIndexer(t, source)
	_, err := ix.GetIndicesByValue("Author", "Lem")
	require.NoError(t, err)

	source.books = source.books[:2]
	ix.ResetIndex()

	indices, err := ix.GetIndicesByValue("Author", "Lem")
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func Test_Indexer_MaintenanceOnUnbuiltIndexIsCheap(t *testing.T) {
	source := givenShelf()
	ix := givenIndexer(t, source)

	require.NoError(t, ix.UpdateIndex(0, 2))

	assert.Zero(t, source.reads)
}

func Test_Indexer_InvalidWindows(t *testing.T) {
	ix := givenIndexer(t, givenShelf())

	testCases := []struct {
		name string
		run  func() error
	}{
		{name: "update past end", run: func() error { return ix.UpdateIndex(5, 2) }},
		{name: "update negative start", run: func() error { return ix.UpdateIndex(-1, 1) }},
		{name: "shift negative count", run: func() error { return ix.ShiftIndex(0, -1, 1) }},
		{name: "remove negative start", run: func() error { return ix.RemoveFromIndex(-2, 1) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), enumerable.ErrIndexOutOfBounds)
		})
	}
}

func Test_Indexer_SourceErrorsPropagate(t *testing.T) {
	errUnreadable := errors.New("unreadable")
	ix := givenIndexer(t, failingSequence{err: errUnreadable})

	_, err := ix.GetIndexByValue("Author", "Lem")

	assert.ErrorIs(t, err, errUnreadable)
}

func Test_New_Options(t *testing.T) {
	_, err := indexer.New(nil)
	assert.ErrorIs(t, err, enumerable.ErrNilSource)

	_, err = indexer.New(givenShelf(), indexer.WithPropertyGetter(nil))
	assert.ErrorIs(t, err, indexer.ErrNilPropertyGetter)

	byTitleLength := func(item any, _ string) any { return len(item.(book).Title) }
	ix, err := indexer.New(givenShelf(), indexer.WithPropertyGetter(byTitleLength))
	require.NoError(t, err)

	indices, err := ix.GetIndicesByValue("ignored", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4}, indices)
}

type failingSequence struct {
	err error
}

func (f failingSequence) Len() int            { return 1 }
func (f failingSequence) At(int) (any, error) { return nil, f.err }
