package geocode

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("https://example.com/?address=", "&format=json")
	g, ok := c.(*geocoder)
	require.True(t, ok)

	assert.Equal(t, "https://example.com/?address=", g.prefixURL)
	assert.Equal(t, "&format=json", g.suffixURL)
	assert.Equal(t, 30*time.Second, g.httpClient.Timeout)
	assert.Empty(t, g.userAgent)
}

func TestNewClientWithTimeout(t *testing.T) {
	c := NewClient("https://example.com/?address=", "", WithTimeout(5*time.Second))
	g := c.(*geocoder)
	assert.Equal(t, 5*time.Second, g.httpClient.Timeout)
}

func TestNewClientWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: 2 * time.Second}
	c := NewClient("https://example.com/?address=", "", WithHTTPClient(custom), WithTimeout(9*time.Second))
	g := c.(*geocoder)

	// A supplied client wins over WithTimeout.
	assert.Same(t, custom, g.httpClient)
	assert.Equal(t, 2*time.Second, g.httpClient.Timeout)
}
