package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Python", "python"},
		{"  SQL ", "sql"},
		{"Node.js", "node.js"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple list",
			input: "Python, SQL, React",
			want:  []string{"python", "sql", "react"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "only separators",
			input: " , ,, ",
			want:  []string{},
		},
		{
			name:  "drops empty tokens",
			input: "go,,  ,rust,",
			want:  []string{"go", "rust"},
		},
		{
			name:  "duplicates keep first position",
			input: "Go, python, GO, sql, Python",
			want:  []string{"go", "python", "sql"},
		},
		{
			name:  "multi-word skills survive",
			input: "machine learning, Data Engineering",
			want:  []string{"machine learning", "data engineering"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseList(tt.input))
		})
	}
}

func TestSet(t *testing.T) {
	set := NewSet([]string{"Python", "SQL", " Docker ", "", "python"})

	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Has("python"))
	assert.True(t, set.Has("PYTHON"))
	assert.True(t, set.Has("docker"))
	assert.False(t, set.Has("react"))
	assert.False(t, set.Has(""))

	assert.True(t, set.Overlaps([]string{"react", "sql"}))
	assert.False(t, set.Overlaps([]string{"react", "vue"}))
	assert.False(t, set.Overlaps(nil))
}

func TestNewSet_Nil(t *testing.T) {
	set := NewSet(nil)
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Has("go"))
}
