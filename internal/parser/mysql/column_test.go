package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabledoc/internal/core"
)

func TestParseColumnClauseAutoIncrementPK(t *testing.T) {
	col, ok := ParseColumnClause("`id` INT(11) NOT NULL AUTO_INCREMENT COMMENT 'PK',")
	require.True(t, ok)
	assert.Equal(t, &core.Column{
		Name:          "id",
		Type:          "INT(11)",
		Nullable:      false,
		Default:       "",
		AutoIncrement: true,
		Comment:       "PK",
	}, col)
}

func TestParseColumnClauseQuotedDefault(t *testing.T) {
	col, ok := ParseColumnClause("`status` varchar(20) NOT NULL DEFAULT 'foo',")
	require.True(t, ok)
	assert.Equal(t, "foo", col.Default)
	assert.False(t, col.Nullable)
	assert.Equal(t, "varchar(20)", col.Type)
}

func TestParseColumnClauseUnquotedDefault(t *testing.T) {
	col, ok := ParseColumnClause("`created_at` timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,")
	require.True(t, ok)
	assert.Equal(t, "CURRENT_TIMESTAMP", col.Default)
}

func TestParseColumnClauseDefaultVariants(t *testing.T) {
	tests := []struct {
		name   string
		clause string
		want   string
	}{
		{"double quoted", "`a` varchar(5) DEFAULT \"bar\"", "bar"},
		{"empty string", "`a` varchar(5) DEFAULT ''", ""},
		{"numeric", "`a` int(11) DEFAULT 0,", "0"},
		{"negative", "`a` int(11) DEFAULT -1,", "-1"},
		{"null", "`a` int(11) DEFAULT NULL,", "NULL"},
		{"fractional timestamp", "`a` datetime(6) DEFAULT CURRENT_TIMESTAMP(6),", "CURRENT_TIMESTAMP(6)"},
		{"decimal", "`a` decimal(10,2) NOT NULL DEFAULT '0.00',", "0.00"},
		{"bit literal", "`flag` bit(1) NOT NULL DEFAULT b'0',", "b'0'"},
		{"hex literal", "`a` varbinary(4) DEFAULT x'1F',", "x'1F'"},
		{"charset introducer", "`a` varchar(5) DEFAULT _utf8mb4'abc',", "_utf8mb4'abc'"},
		{"quote inside introduced literal", "`a` varchar(5) DEFAULT _utf8mb4'it''s',", "_utf8mb4'it''s'"},
		{"none", "`a` int(11) NOT NULL,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := ParseColumnClause(tt.clause)
			require.True(t, ok)
			assert.Equal(t, tt.want, col.Default)
		})
	}
}

func TestParseColumnClauseKeepsParenthesizedTypeWhole(t *testing.T) {
	col, ok := ParseColumnClause("`price` DECIMAL(10,2) NOT NULL COMMENT 'unit price',")
	require.True(t, ok)
	assert.Equal(t, "DECIMAL(10,2)", col.Type)
	assert.Equal(t, "unit price", col.Comment)
}

func TestParseColumnClauseEnumType(t *testing.T) {
	col, ok := ParseColumnClause("`size` enum('small','medium','large') DEFAULT 'medium',")
	require.True(t, ok)
	assert.Equal(t, "enum('small','medium','large')", col.Type)
	assert.Equal(t, "medium", col.Default)
}

func TestParseColumnClauseUnsignedIsPartOfType(t *testing.T) {
	col, ok := ParseColumnClause("`qty` INT(11) UNSIGNED NOT NULL DEFAULT '1',")
	require.True(t, ok)
	assert.Equal(t, "INT(11) UNSIGNED", col.Type)
	assert.False(t, col.Nullable)
	assert.Equal(t, "1", col.Default)
}

func TestParseColumnClauseNullableByDefault(t *testing.T) {
	col, ok := ParseColumnClause("`note` text,")
	require.True(t, ok)
	assert.True(t, col.Nullable)
	assert.False(t, col.AutoIncrement)
	assert.Empty(t, col.Comment)
	assert.Equal(t, "text", col.Type)
}

func TestParseColumnClauseCommentDecoding(t *testing.T) {
	t.Run("html entities", func(t *testing.T) {
		col, ok := ParseColumnClause("`a` int(11) COMMENT 'Tom &amp; Jerry',")
		require.True(t, ok)
		assert.Equal(t, "Tom & Jerry", col.Comment)
	})

	t.Run("escaped quote", func(t *testing.T) {
		col, ok := ParseColumnClause("`a` int(11) COMMENT 'it''s here',")
		require.True(t, ok)
		assert.Equal(t, "it's here", col.Comment)
	})

	t.Run("keywords inside comment are ignored", func(t *testing.T) {
		col, ok := ParseColumnClause("`a` int(11) COMMENT 'NOT NULL, DEFAULT 5, AUTO_INCREMENT',")
		require.True(t, ok)
		assert.True(t, col.Nullable)
		assert.Empty(t, col.Default)
		assert.False(t, col.AutoIncrement)
		assert.Equal(t, "NOT NULL, DEFAULT 5, AUTO_INCREMENT", col.Comment)
	})
}

func TestParseColumnClauseRejectsNonColumns(t *testing.T) {
	clauses := []string{
		"",
		"   ",
		"PRIMARY KEY (`id`),",
		"UNIQUE KEY `email` (`email`),",
		"KEY `idx_name` (`name`)",
		"CONSTRAINT `fk_user` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`)",
		"`broken`",
		"`nospace`int(11)",
		"`` int(11)",
		"`a` (11)",
	}
	for _, clause := range clauses {
		t.Run(clause, func(t *testing.T) {
			col, ok := ParseColumnClause(clause)
			assert.False(t, ok)
			assert.Nil(t, col)
		})
	}
}
