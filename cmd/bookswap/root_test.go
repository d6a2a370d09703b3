package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RootCommand_RegistersSubcommands(t *testing.T) {
	// act
	root := newRootCommand()

	// assert
	for _, name := range []string{"serve", "migrate", "loadgen"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func Test_MigrateCommand_RejectsTheMemoryAdapter(t *testing.T) {
	// arrange
	t.Setenv("ADAPTER_TYPE", "memory")
	t.Setenv("BOOKSWAP_JWT_SECRET", "test-secret")
	root := newRootCommand()
	root.SetArgs([]string{"migrate"})
	root.SilenceErrors = true

	// act
	err := root.Execute()

	// assert
	assert.ErrorIs(t, err, errMigrateNeedsPostgres)
}

func Test_LoadgenCommand_ValidatesFlags(t *testing.T) {
	// arrange
	root := newRootCommand()
	root.SetArgs([]string{"loadgen", "--users", "1"})
	root.SilenceErrors = true

	// act
	err := root.Execute()

	// assert
	assert.ErrorIs(t, err, errInvalidLoadConfig)
}
