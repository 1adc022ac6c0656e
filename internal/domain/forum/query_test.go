// internal/domain/forum/query_test.go
package forum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryNormalizeDefaults(t *testing.T) {
	q, err := Query{TradespaceID: " ts1 "}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "ts1", q.TradespaceID)
	assert.Equal(t, "all", q.Category)
	assert.Equal(t, SortRecent, q.Sort)
	assert.Equal(t, FeedLimit, q.Limit)
}

func TestQueryNormalizeRejectsMissingTradespace(t *testing.T) {
	_, err := Query{}.Normalize()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestQueryNormalizeUnknownSortFallsBackToRecent(t *testing.T) {
	q, err := Query{TradespaceID: "ts1", Sort: Sort("newest")}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, SortRecent, q.Sort)
}

func TestQueryNormalizeClampsLimit(t *testing.T) {
	q, err := Query{TradespaceID: "ts1", Limit: 500}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, FeedLimit, q.Limit)

	q, err = Query{TradespaceID: "ts1", Limit: 10}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 10, q.Limit)
}

func TestQueryCategoryValue(t *testing.T) {
	cases := map[string]string{
		"discussion": CategoryDiscussion,
		"question":   CategoryQuestion,
		"story":      CategoryStory,
		"all":        "",
		"":           "",
	}
	for in, want := range cases {
		q, err := Query{TradespaceID: "ts1", Category: in}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, want, q.CategoryValue(), "category %q", in)
	}
}

func TestNewPostValidation(t *testing.T) {
	now := time.Now()

	p, err := NewPost("ts1", "Hello", "First post", "Ann Lee", "AL", CategoryDiscussion, nil, now)
	require.NoError(t, err)
	assert.Zero(t, p.Replies)
	assert.Zero(t, p.Views)
	assert.Zero(t, p.Likes)
	assert.NotNil(t, p.Tags)

	_, err = NewPost("ts1", "", "body", "Ann", "A", CategoryDiscussion, nil, now)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = NewPost("ts1", "t", "body", "Ann", "A", "Rant", nil, now)
	assert.ErrorIs(t, err, ErrInvalid)
}
