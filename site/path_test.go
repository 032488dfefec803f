package site

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ZacxDev/crank/content"
	"github.com/stretchr/testify/require"
)

func TestBuildPath(t *testing.T) {
	tests := []struct {
		name string
		conf content.Values
		want string
	}{
		{
			name: "no categories",
			conf: content.Values{"categories": content.Seq{}, "slug": content.String("hello")},
			want: filepath.Join("out", "hello", "index.html"),
		},
		{
			name: "nested categories",
			conf: content.Values{
				"categories": content.Seq{content.String("blog"), content.String("2024")},
				"slug":       content.String("post"),
			},
			want: filepath.Join("out", "blog", "2024", "post", "index.html"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildPath("out", tt.conf)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPath_MissingOrInvalidMetadata(t *testing.T) {
	tests := []struct {
		name  string
		conf  content.Values
		field string
	}{
		{"no categories", content.Values{"slug": content.String("x")}, "categories"},
		{"no slug", content.Values{"categories": content.Seq{}}, "slug"},
		{"categories not a list", content.Values{"categories": content.String("blog"), "slug": content.String("x")}, "categories"},
		{"slug not a string", content.Values{"categories": content.Seq{}, "slug": content.Int(3)}, "slug"},
		{"empty slug", content.Values{"categories": content.Seq{}, "slug": content.String("")}, "slug"},
		{"dot dot slug", content.Values{"categories": content.Seq{}, "slug": content.String("..")}, "slug"},
		{"slug with separator", content.Values{"categories": content.Seq{}, "slug": content.String("a/b")}, "slug"},
		{"category not a string", content.Values{"categories": content.Seq{content.Int(1)}, "slug": content.String("x")}, "categories[0]"},
		{"empty category", content.Values{"categories": content.Seq{content.String("a"), content.String("")}, "slug": content.String("x")}, "categories[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPath("out", tt.conf)
			require.Error(t, err)

			var metaErr *MissingOutputMetadataError
			require.True(t, errors.As(err, &metaErr))
			require.Equal(t, tt.field, metaErr.Field)
		})
	}
}
