package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    any
		wantErr bool
	}{
		{name: "http", url: "http://example.com/a.csv", want: &HTTPFetcher{}},
		{name: "https", url: "https://example.com/a.csv", want: &HTTPFetcher{}},
		{name: "ftp", url: "ftp://example.com/a.csv", want: &FTPFetcher{}},
		{name: "file scheme rejected", url: "file:///tmp/a.csv", wantErr: true},
		{name: "no scheme rejected", url: "example.com/a.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ForURL(tt.url, HTTPOptions{}, FTPOptions{})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}
