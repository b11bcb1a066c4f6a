package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	fabrics := c.Fabrics()
	require.Len(t, fabrics, 8)
	require.Equal(t, "cotton", fabrics[0].ID)
	require.Equal(t, "Premium Cotton", fabrics[0].DisplayName)
	require.NotEmpty(t, fabrics[0].PreviewImage)

	styles := c.Styles()
	require.Len(t, styles, 6)
	require.Equal(t, "tshirt", styles[0].ID)

	dress, ok := c.Style("dress")
	require.True(t, ok)
	require.Equal(t, "Summer Dress", dress.DisplayName)

	_, ok = c.Fabric("cashmere")
	require.False(t, ok)
}

func TestFabricsReturnsCopy(t *testing.T) {
	c := Default()
	fabrics := c.Fabrics()
	fabrics[0].DisplayName = "changed"

	again, ok := c.Fabric("cotton")
	require.True(t, ok)
	require.Equal(t, "Premium Cotton", again.DisplayName)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "ids derived from names",
			yaml: "fabrics:\n  - name: Organic Hemp\nstyles:\n  - name: Wrap Dress\n",
		},
		{
			name:    "missing styles",
			yaml:    "fabrics:\n  - name: Hemp\n",
			wantErr: "no style entries",
		},
		{
			name:    "nameless entry",
			yaml:    "fabrics:\n  - id: x\nstyles:\n  - name: Y\n",
			wantErr: "fabric 0 has no name",
		},
		{
			name:    "duplicate ids",
			yaml:    "fabrics:\n  - name: Hemp\n  - id: hemp\n    name: Other Hemp\nstyles:\n  - name: Y\n",
			wantErr: `duplicate fabric id "hemp"`,
		},
		{
			name:    "malformed yaml",
			yaml:    "fabrics: [",
			wantErr: "parsing catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			hemp, ok := c.Fabric("organic-hemp")
			require.True(t, ok)
			require.Equal(t, "Organic Hemp", hemp.DisplayName)
			_, ok = c.Style("wrap-dress")
			require.True(t, ok)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded catalog", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		require.Len(t, c.Fabrics(), 8)
	})

	t.Run("override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yml")
		require.NoError(t, os.WriteFile(path, []byte("fabrics:\n  - id: tweed\n    name: Harris Tweed\nstyles:\n  - id: vest\n    name: Waistcoat\n"), 0644))

		c, err := Load(path)
		require.NoError(t, err)
		require.Len(t, c.Fabrics(), 1)
		vest, ok := c.Style("vest")
		require.True(t, ok)
		require.Equal(t, "Waistcoat", vest.DisplayName)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.ErrorContains(t, err, "reading catalog file")
	})
}
