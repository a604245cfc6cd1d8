package generic

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	assert := assert_.New(t)

	s := NewSet[string]()
	assert.Equal(0, s.Count())
	assert.False(s.Contains("mqdefault"))
	assert.True(s.Add("mqdefault"))
	assert.False(s.Add("mqdefault"))
	assert.Equal(1, s.Count())
	assert.True(s.Contains("mqdefault"))
	assert.True(s.Remove("mqdefault"))
	assert.False(s.Remove("mqdefault"))
	assert.Equal(0, s.Count())

	s2 := NewSet("sddefault", "default", "maxresdefault")
	assert.True(s2.Contains("default", "sddefault"))
	assert.False(s2.Contains("default", "hqdefault"))
	assert.Equal([]string{"default", "maxresdefault", "sddefault"}, SortedStrings(s2))
}

func TestResultOption(t *testing.T) {
	assert := assert_.New(t)

	ok := NewResult("dQw4w9WgXcQ", nil)
	assert.True(ok.IsOk())
	assert.Equal("dQw4w9WgXcQ", ok.Unwrap())

	failed := Err[string](assert_.AnError)
	assert.True(failed.IsErr())
	assert.Equal("fallback", failed.UnwrapOr("fallback"))
	assert.Panics(func() { failed.Unwrap() })
	_, err := failed.Parts()
	assert.ErrorIs(err, assert_.AnError)

	some := Some(3)
	assert.True(some.IsSome())
	assert.Equal(3, some.OkOr(assert_.AnError).Unwrap())
	none := None[int]()
	assert.True(none.IsNone())
	assert.Equal(7, none.UnwrapOr(7))
	noneResult := none.OkOr(assert_.AnError)
	assert.True(noneResult.IsErr())
	assert.Panics(func() { none.Expect("no value") })
}
