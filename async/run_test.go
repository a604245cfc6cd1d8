package async

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/yt-thumbnail/generic"
	"github.com/alanbriolat/yt-thumbnail/videoid"
)

func TestRun(t *testing.T) {
	assert := assert_.New(t)
	valid := <-Run(func() bool {
		return videoid.IsValid("https://youtu.be/dQw4w9WgXcQ")
	})
	assert.True(valid)
}

func TestRunResult(t *testing.T) {
	assert := assert_.New(t)
	inputs := []string{"https://youtu.be/dQw4w9WgXcQ", "https://vimeo.com/12345"}
	results := make([]<-chan generic.Result[videoid.VideoID], len(inputs))
	for i, input := range inputs {
		input := input
		results[i] = RunResult(func() (videoid.VideoID, error) {
			return videoid.Extract(input)
		})
	}

	ok := <-results[0]
	assert.True(ok.IsOk())
	assert.Equal(videoid.VideoID("dQw4w9WgXcQ"), ok.Value)
	failed := <-results[1]
	assert.True(failed.IsErr())
	assert.ErrorIs(failed.Error, videoid.ErrNotFound)
}
