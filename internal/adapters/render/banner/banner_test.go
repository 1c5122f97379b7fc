package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderContainsTitleAndTagline(t *testing.T) {
	t.Parallel()

	out := Render()
	assert.Contains(t, out, Title)
	assert.Contains(t, out, "Boost your Rebor balance with ease!")
	assert.Contains(t, out, "─")
}
