package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	// md5("someone@example.com")
	want := "https://www.gravatar.com/avatar/16d113840f999444259f73bac9ab8b10?s=200&r=pg&d=mm"

	assert.Equal(t, want, URL("someone@example.com"))
}

func TestURLNormalizesEmail(t *testing.T) {
	base := URL("someone@example.com")

	assert.Equal(t, base, URL("SOMEONE@example.com"))
	assert.Equal(t, base, URL("  someone@example.com  "))
}

func TestURLCarriesDefaultParams(t *testing.T) {
	url := URL("a@b.c")

	assert.Contains(t, url, "s=200")
	assert.Contains(t, url, "r=pg")
	assert.Contains(t, url, "d=mm")
}
