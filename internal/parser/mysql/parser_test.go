package mysql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabledoc/internal/core"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModePattern, false},
		{"pattern", ModePattern, false},
		{"AST", ModeAST, false},
		{" ast ", ModeAST, false},
		{"regex", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported parse mode")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParserPatternMode(t *testing.T) {
	p := NewParser(ModePattern)
	assert.Equal(t, ModePattern, p.Mode())

	st := p.Parse(usersSQL)
	assert.Len(t, st.Columns, 5)
	assert.Len(t, st.Indexes, 3)
	assert.Empty(t, st.Warnings)
}

func TestParserASTMode(t *testing.T) {
	p := NewParser(ModeAST)
	assert.Equal(t, ModeAST, p.Mode())

	st := p.Parse(usersSQL)
	require.Empty(t, st.Warnings)
	require.Len(t, st.Columns, 5)

	id := st.Columns[0]
	assert.Equal(t, "id", id.Name)
	assert.True(t, strings.HasPrefix(strings.ToLower(id.Type), "int"))
	assert.False(t, id.Nullable)
	assert.True(t, id.AutoIncrement)
	assert.Equal(t, "PK", id.Comment)

	name := st.Columns[2]
	assert.True(t, name.Nullable)
	assert.Equal(t, "Display name", name.Comment)

	balance := st.Columns[3]
	assert.Equal(t, "0.00", balance.Default)

	created := st.Columns[4]
	assert.Equal(t, "CURRENT_TIMESTAMP", strings.ToUpper(created.Default))

	require.Len(t, st.Indexes, 3)
	assert.Equal(t, core.IndexKindPrimary, st.Indexes[0].Kind)
	assert.Equal(t, core.PrimaryKeyName, st.Indexes[0].Name)
	assert.Equal(t, []string{"id"}, st.Indexes[0].Columns)
	assert.Equal(t, "email", st.Indexes[1].Name)
	assert.Equal(t, core.IndexKindUnique, st.Indexes[1].Kind)
	assert.Equal(t, "idx_name", st.Indexes[2].Name)

	assert.Equal(t, "User accounts & profiles", st.Comment)
}

func TestParserASTModeInlinePrimaryKey(t *testing.T) {
	p := NewParser(ModeAST)
	st := p.Parse("CREATE TABLE t (id INT PRIMARY KEY, code VARCHAR(10) UNIQUE) ENGINE=InnoDB")
	require.Empty(t, st.Warnings)
	require.Len(t, st.Indexes, 2)
	assert.Equal(t, core.IndexKindPrimary, st.Indexes[0].Kind)
	assert.Equal(t, []string{"id"}, st.Indexes[0].Columns)
	assert.False(t, st.Columns[0].Nullable)
	assert.Equal(t, core.IndexKindUnique, st.Indexes[1].Kind)
	assert.Equal(t, []string{"code"}, st.Indexes[1].Columns)
}

func TestParserASTModePartitions(t *testing.T) {
	p := NewParser(ModeAST)

	t.Run("range", func(t *testing.T) {
		st := p.Parse("CREATE TABLE t (id INT, yr INT) ENGINE=InnoDB " +
			"PARTITION BY RANGE (yr) (PARTITION p2020 VALUES LESS THAN (2021), PARTITION p2021 VALUES LESS THAN (2022))")
		require.Empty(t, st.Warnings)
		require.Len(t, st.Partitions, 2)
		assert.Equal(t, "p2020", st.Partitions[0].Name)
		assert.Equal(t, "2021", st.Partitions[0].Value)
		assert.Equal(t, "RANGE", st.Partitions[0].Type)
		assert.Equal(t, "p2021", st.Partitions[1].Name)
		assert.Equal(t, "2022", st.Partitions[1].Value)
	})

	t.Run("hash", func(t *testing.T) {
		st := p.Parse("CREATE TABLE t (id INT) ENGINE=InnoDB PARTITION BY HASH (id) PARTITIONS 4")
		require.Empty(t, st.Warnings)
		require.Len(t, st.Partitions, 4)
		assert.Equal(t, "p0", st.Partitions[0].Name)
		assert.Equal(t, "p3", st.Partitions[3].Name)
		assert.Equal(t, PartitionPlaceholder(3), st.Partitions[3].Value)
	})

	t.Run("count above limit", func(t *testing.T) {
		var st *Statement
		require.NotPanics(t, func() {
			st = p.Parse("CREATE TABLE t (id INT) ENGINE=InnoDB PARTITION BY HASH (id) PARTITIONS 100000")
		})
		assert.Len(t, st.Columns, 1)
		assert.Empty(t, st.Partitions)
	})
}

func TestParserASTModeFallsBack(t *testing.T) {
	p := NewParser(ModeAST)
	st := p.Parse("CREATE TABLE `t` (`id` int(11) NOT NULL, PRIMARY KEY (`id`)) ENGINE=InnoDB PARTITION BY HASH (id) (PARTITIONS 2)")

	require.Len(t, st.Warnings, 1)
	assert.Contains(t, st.Warnings[0], "falling back to pattern rules")
	assert.Len(t, st.Columns, 1)
	assert.Len(t, st.Indexes, 1)
	assert.Len(t, st.Partitions, 2)
}

func TestASTParserNoCreateTable(t *testing.T) {
	_, err := NewASTParser().Parse("SELECT 1")
	require.ErrorIs(t, err, errNoCreateTable)
}

func TestColumnTypeStripsCharset(t *testing.T) {
	assert.Equal(t, "varchar(10)", columnType("varchar(10) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"))
	assert.Equal(t, "text", columnType("text COLLATE utf8mb4_bin"))
	assert.Equal(t, "int(11)", columnType("int(11)"))
}
