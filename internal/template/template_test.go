package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/stretchr/testify/require"
)

func scenarioRequest() design.Request {
	return design.Request{
		FabricName: "Premium Cotton",
		StyleName:  "Basic T-Shirt",
		Size:       "M",
		FitType:    "Regular Fit",
		Gender:     "Female",
		BustCm:     90,
		HipsCm:     95.5,
		FabricID:   "cotton",
		StyleID:    "tshirt",
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     Variables
		want     string
	}{
		{
			name:     "simple substitution",
			template: "{{style}} in {{fabric}}",
			vars:     Variables{Style: "Hoodie", Fabric: "Wool"},
			want:     "Hoodie in Wool",
		},
		{
			name:     "repeated placeholder",
			template: "{{size}}/{{size}}",
			vars:     Variables{Size: "XL"},
			want:     "XL/XL",
		},
		{
			name:     "empty values and surrounding space",
			template: "\n{{view}} {{view_instructions}}\n",
			vars:     Variables{View: "front view"},
			want:     "front view",
		},
		{
			name:     "unknown placeholder kept",
			template: "{{colour}} {{fit}}",
			vars:     Variables{Fit: "Tailored"},
			want:     "{{colour}} Tailored",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Render(tt.template, tt.vars))
		})
	}
}

func TestBuildPrompt_DefaultTemplate(t *testing.T) {
	req := scenarioRequest()

	prompts := make(map[View]string)
	for _, v := range Views() {
		p := BuildPrompt(DefaultTemplate, req, v)
		require.NotContains(t, p, "{{")
		require.Contains(t, p, "Basic T-Shirt made of Premium Cotton")
		require.Contains(t, p, "Regular Fit (Standard, comfortable cut)")
		require.Contains(t, p, "female form with 90 cm bust and 95.5 cm hips")
		require.Contains(t, p, string(v)+" view")
		prompts[v] = p
	}
	require.NotEqual(t, prompts[ViewFront], prompts[ViewSide])
	require.NotEqual(t, prompts[ViewSide], prompts[ViewBack])
}

func TestViews_FrontFirst(t *testing.T) {
	require.Equal(t, []View{ViewFront, ViewSide, ViewBack}, Views())
}

func TestGetTemplate(t *testing.T) {
	got, err := GetTemplate("")
	require.NoError(t, err)
	require.Equal(t, DefaultTemplate, got)

	dir := t.TempDir()
	custom := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(custom, []byte("{{fabric}} {{view}}"), 0o644))

	got, err = GetTemplate(custom)
	require.NoError(t, err)
	require.Equal(t, "Premium Cotton back view", BuildPrompt(got, scenarioRequest(), ViewBack))

	_, err = GetTemplate(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)

	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte("  \n"), 0o644))
	_, err = GetTemplate(blank)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "empty"))
}
