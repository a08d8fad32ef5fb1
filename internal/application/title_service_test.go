package application

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-api/pkg/apperr"
)

func intptr(i int) *int { return &i }

func TestTitleYearCeiling(t *testing.T) {
	svc := NewTitleService(newFakeTitleRepo(), nil, nil, nil, nil, 0)
	ctx := context.Background()
	thisYear := time.Now().Year()

	_, err := svc.Create(ctx, TitleInput{Name: strptr("Tomorrowland"), Year: intptr(thisYear + 1)})
	e, ok := apperr.As(err)
	require.True(t, ok, "next year must be rejected")
	assert.Contains(t, e.Fields, "year")

	got, err := svc.Create(ctx, TitleInput{Name: strptr("This Year"), Year: intptr(thisYear)})
	require.NoError(t, err, "the current year is accepted")
	require.NotNil(t, got.Year)
	assert.Equal(t, thisYear, *got.Year)

	_, err = svc.Create(ctx, TitleInput{Name: strptr("Undated")})
	assert.NoError(t, err, "year is optional")
}

func TestRatingCacheDisabledFallsThrough(t *testing.T) {
	c := ratingCache{}
	ctx := context.Background()

	_, hit := c.get(ctx, 1)
	assert.False(t, hit, "without redis every read is a miss")

	// writes and invalidation are no-ops, not panics
	v := 7.5
	c.put(ctx, 1, &v)
	c.drop(ctx, 1)

	assert.Equal(t, "title:rating:42", c.key(42))
}

func TestTitleCreateRequiresName(t *testing.T) {
	svc := NewTitleService(newFakeTitleRepo(), nil, nil, nil, nil, 0)
	_, err := svc.Create(context.Background(), TitleInput{})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Fields, "name")
}

func TestTitleUpdateYearValidatedToo(t *testing.T) {
	repo := newFakeTitleRepo()
	svc := NewTitleService(repo, nil, nil, nil, nil, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, TitleInput{Name: strptr("Updatable")})
	require.NoError(t, err)

	next := time.Now().Year() + 1
	_, err = svc.Update(ctx, created.ID, TitleInput{Year: &next})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Fields, "year",
		"update with year "+strconv.Itoa(next)+" must be rejected")
}
