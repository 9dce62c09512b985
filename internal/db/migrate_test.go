package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"quests", "comments", "quest_templates", "resources"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// Running the full migration list again must be a no-op.
	require.NoError(t, Migrate(database))
}

func TestOpenDB_EnforcesStatusCheck(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO quests (id, title, creator, status, created_at, updated_at)
		VALUES ('q1', 'Test', 'alice', 'Bogus', '2024-01-01 00:00:00', '2024-01-01 00:00:00')`)
	require.Error(t, err, "status outside the four literals must be rejected")
}

func TestOpenDB_CommentCascadesOnQuestDelete(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO quests (id, title, creator, created_at, updated_at)
		VALUES ('q1', 'Test', 'alice', '2024-01-01 00:00:00', '2024-01-01 00:00:00')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO comments (id, quest_id, author, content, created_at)
		VALUES ('c1', 'q1', 'alice', 'note', '2024-01-01 00:00:00')`)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM quests WHERE id = 'q1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&count))
	assert.Equal(t, 0, count)
}
