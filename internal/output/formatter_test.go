package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabledoc/internal/core"
)

func sampleSchema() *core.Schema {
	s := core.NewSchema()
	s.Put(&core.Table{
		Name:    "users",
		Comment: "User accounts",
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)", AutoIncrement: true, Comment: "PK"},
			{Name: "email", Type: "varchar(255)", Nullable: true, Default: "none"},
		},
		Indexes: []*core.Index{
			core.NewIndex(core.PrimaryKeyName, core.IndexKindPrimary, []string{"id"}),
			core.NewIndex("idx_email", core.IndexKindIndex, []string{"email"}),
		},
	})
	s.Put(&core.Table{
		Name: "order items",
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)"},
		},
		Partitions: []*core.Partition{
			{Name: "p0", Type: "HASH", Expression: "id", Value: "partition 0"},
		},
	})
	return s
}

var fixedMeta = IndexMeta{
	Database:    "shop",
	GeneratedAt: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
}

func TestNewFormatterDefaultsToHTML(t *testing.T) {
	f, err := NewFormatter("")
	require.NoError(t, err)
	_, ok := f.(htmlFormatter)
	assert.True(t, ok)
	assert.Equal(t, "html", f.Extension())
}

func TestNewFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		ext  string
	}{
		{"html", "html"},
		{"HTML", "html"},
		{"markdown", "md"},
		{"md", "md"},
		{" Markdown ", "md"},
		{"json", "json"},
		{"JSON", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, f.Extension())
		})
	}
}

func TestNewFormatterUnsupported(t *testing.T) {
	f, err := NewFormatter("pdf")
	assert.Nil(t, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: pdf")
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "users", SafeFileName("users"))
	assert.Equal(t, "order_items", SafeFileName("order items"))
	assert.Equal(t, "______etc_passwd", SafeFileName("../../etc/passwd"))
	assert.Equal(t, "a-b_c", SafeFileName("a-b_c"))
}

func TestPageName(t *testing.T) {
	assert.Equal(t, "order_items.md", PageName("order items", markdownFormatter{}))
	assert.Equal(t, "users.json", PageName("users", jsonFormatter{}))
}
