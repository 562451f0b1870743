package activity

import (
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)

func parse(t *testing.T, doc string) *Tree {
	t.Helper()
	tree := New()
	require.NoError(t, json.Unmarshal([]byte(doc), tree))
	return tree
}

func compact(t *testing.T, tree *Tree) string {
	t.Helper()
	b, err := json.Marshal(tree)
	require.NoError(t, err)
	return string(b)
}

func TestAddTimeRipplesUpward(t *testing.T) {
	tree := New()
	require.NoError(t, AddTime(tree, "linux/unixhndbk/chapter-1", 50, now))

	for _, path := range []string{"linux", "linux/unixhndbk", "linux/unixhndbk/chapter-1"} {
		n, ok := Find(tree, path)
		require.True(t, ok, path)
		assert.Equal(t, 50, n.Time(), path)
		assert.Equal(t, "2023-12-01T10:00:00Z", n.Timestamp(), path)
	}

	want := `{"linux":{"time":50,"timestamp":"2023-12-01T10:00:00Z",` +
		`"unixhndbk":{"time":50,"timestamp":"2023-12-01T10:00:00Z",` +
		`"chapter-1":{"time":50,"timestamp":"2023-12-01T10:00:00Z"}}}}`
	assert.Equal(t, want, compact(t, tree))
}

func TestAddTimeKeepsFirstTimestamp(t *testing.T) {
	tree := New()
	require.NoError(t, AddTime(tree, "test/activity", 15, now))
	require.NoError(t, AddTime(tree, "test/activity", 30, now.Add(2*time.Hour)))

	n, ok := Find(tree, "test/activity")
	require.True(t, ok)
	assert.Equal(t, 45, n.Time())
	assert.Equal(t, "2023-12-01T10:00:00Z", n.Timestamp())

	parent, _ := Find(tree, "test")
	assert.Equal(t, 45, parent.Time())
}

func TestAddTimeFillsEmptyTimestamp(t *testing.T) {
	tree := parse(t, `{"test":{"time":0,"timestamp":""}}`)
	require.NoError(t, AddTime(tree, "test", 5, now))
	assert.Equal(t, `{"test":{"time":5,"timestamp":"2023-12-01T10:00:00Z"}}`, compact(t, tree))
}

func TestAddTimeZeroMinutesCreatesNode(t *testing.T) {
	tree := New()
	require.NoError(t, AddTime(tree, "reading", 0, now))
	n, ok := Find(tree, "reading")
	require.True(t, ok)
	assert.Equal(t, 0, n.Time())
	assert.NotEmpty(t, n.Timestamp())
}

func TestAddTimeRejects(t *testing.T) {
	tests := map[string]struct {
		doc     string
		path    string
		minutes int
		want    error
	}{
		"negative":       {doc: `{}`, path: "a", minutes: -1, want: ErrNegativeMinutes},
		"empty path":     {doc: `{}`, path: "", minutes: 1, want: ErrInvalidPath},
		"empty segment":  {doc: `{}`, path: "a//b", minutes: 1, want: ErrInvalidPath},
		"trailing slash": {doc: `{}`, path: "a/", minutes: 1, want: ErrInvalidPath},
		"reserved":       {doc: `{}`, path: "a/time", minutes: 1, want: ErrInvalidPath},
		"scalar in way":  {doc: `{"a":{"b":"legacy"}}`, path: "a/b/c", minutes: 1, want: ErrInvalidPath},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tree := parse(t, tc.doc)
			before := compact(t, tree)
			err := AddTime(tree, tc.path, tc.minutes, now)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, compact(t, tree))
		})
	}
}

func TestDeleteSingleBranchPrunesEverything(t *testing.T) {
	tree := parse(t, `{"a":{"b":{"c":{"time":10}}}}`)

	d, err := Delete(tree, "a/b/c")
	require.NoError(t, err)
	assert.True(t, d.Removed)
	assert.Equal(t, []string{"a/b", "a"}, d.Pruned)
	assert.Equal(t, `{}`, compact(t, tree))
}

func TestDeleteKeepsSibling(t *testing.T) {
	tree := New()
	require.NoError(t, AddTime(tree, "a/b/c", 10, now))
	require.NoError(t, AddTime(tree, "a/b/d", 5, now))

	d, err := Delete(tree, "a/b/c")
	require.NoError(t, err)
	assert.Empty(t, d.Pruned)

	_, ok := Find(tree, "a/b/c")
	assert.False(t, ok)
	sibling, ok := Find(tree, "a/b/d")
	require.True(t, ok)
	assert.Equal(t, 5, sibling.Time())
	parent, _ := Find(tree, "a")
	assert.Equal(t, 15, parent.Time())
}

func TestDeleteMissingLeavesTreeUnchanged(t *testing.T) {
	doc := `{"a":{"time":1,"timestamp":"","b":{}},"c":{"time":2}}`
	for _, path := range []string{"x", "a/x", "x/y/z", "a/b/c"} {
		tree := parse(t, doc)
		_, err := Delete(tree, path)
		assert.ErrorIs(t, err, ErrNotFound, path)
		assert.Equal(t, doc, compact(t, tree), path)
	}
}

func TestDeleteThenSweep(t *testing.T) {
	tree := parse(t, `{"test":{"subactivity":{"time":15}}}`)
	_, err := Delete(tree, "test/subactivity")
	require.NoError(t, err)
	assert.Equal(t, `{}`, compact(t, tree))
}

func TestDeleteRemovesLegacyFlatKeys(t *testing.T) {
	tree := parse(t, `{
		"test": {"time": 0, "timestamp": "", "subactivity": {"time": 15, "timestamp": ""}},
		"test/subactivity": {"time": 15, "timestamp": ""}
	}`)

	d, err := Delete(tree, "test")
	require.NoError(t, err)
	assert.True(t, d.Removed)
	assert.Equal(t, []string{"test/subactivity"}, d.Legacy)
	assert.Equal(t, `{}`, compact(t, tree))
}

func TestDeleteLegacyFlatKeyOnly(t *testing.T) {
	tree := parse(t, `{"old/path":{"time":3},"keep":{"time":1}}`)
	d, err := Delete(tree, "old/path")
	require.NoError(t, err)
	assert.False(t, d.Removed)
	assert.Equal(t, `{"keep":{"time":1}}`, compact(t, tree))
}

func TestSweepRemovesNestedEmptyMappings(t *testing.T) {
	tree := parse(t, `{"a":{"b":{"c":{}}},"d":{"time":1,"e":{}}}`)
	assert.Equal(t, 4, Sweep(tree))
	assert.Equal(t, `{"d":{"time":1}}`, compact(t, tree))
}

func TestRender(t *testing.T) {
	tree := parse(t, `{
		"test": {"time": 0, "timestamp": "", "activity": {"time": 15, "timestamp": ""}},
		"music": {"time": 20, "piano": {"time": 20, "scales": {"time": 5}}},
		"legacy": "scalar"
	}`)

	got := slices.Collect(Render(tree))
	want := []string{
		"test (0 minutes)",
		"    activity (15 minutes)",
		"music (20 minutes)",
		"    piano (20 minutes)",
		"        scales (5 minutes)",
	}
	assert.Equal(t, want, got)
}

func TestRenderStopsEarly(t *testing.T) {
	tree := New()
	require.NoError(t, AddTime(tree, "a/b/c", 1, now))
	var got []string
	for line := range Render(tree) {
		got = append(got, line)
		break
	}
	assert.Equal(t, []string{"a (1 minutes)"}, got)
}

func TestPaths(t *testing.T) {
	tree := New()
	require.NoError(t, AddTime(tree, "a/b", 1, now))
	require.NoError(t, AddTime(tree, "c", 1, now))
	assert.Equal(t, []string{"a", "a/b", "c"}, Paths(tree))
}

func TestDeleteLeafKeepsLoggedAncestors(t *testing.T) {
	tree := New()
	require.NoError(t, AddTime(tree, "a/b", 10, now))

	d, err := Delete(tree, "a/b")
	require.NoError(t, err)
	assert.Empty(t, d.Pruned)
	a, ok := Find(tree, "a")
	require.True(t, ok)
	assert.Equal(t, 10, a.Time())
}

func TestAddTimeKeepsFractionalTime(t *testing.T) {
	doc := `{"a":{"time":1.5,"b":{"time":3}}}`
	for _, path := range []string{"a", "a/b", "a/c"} {
		tree := parse(t, doc)
		err := AddTime(tree, path, 2, now)
		assert.ErrorIs(t, err, ErrInvalidTime, path)
		assert.Equal(t, doc, compact(t, tree), path)
	}
}
