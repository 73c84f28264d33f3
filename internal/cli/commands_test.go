package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

func writeDatasets(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, foodetl.DefaultUsersFile, strings.Join([]string{
		"user_id,first name,last name,sex,email,job title,date_of_birth,phone,encoded_id",
		"1,Ann,Lee,F,A@B.com,Chef,1990-01-01,555-0,a1",
		"1,Ann,Lee,F,A@B.com,Chef,1990-01-01,555-0,a1",
		"2,Bo,,M,bo@x.com,Cook,1985-03-04,555-1,b2",
	}, "\n")+"\n")
	writeFile(t, dir, foodetl.DefaultRecipesFile, strings.Join([]string{
		"name,id,minutes,contributor_id,submitted,tags,nutrition,n_steps,steps,description,ingredients,n_ingredients",
		"toast,10,5,99,2020-01-01,['quick'],[1.0],3,['toast it'],crisp,['bread'],3",
	}, "\n")+"\n")
	writeFile(t, dir, foodetl.DefaultInteractionsFile, strings.Join([]string{
		"user_id,recipe_id,date,rating,review",
		"1,10,2021-01-02,2,meh",
	}, "\n")+"\n")
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FOODETL_NON_INTERACTIVE", "1")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmd_TooManyArgs(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{"a", "b"})

	require.Error(t, err)
	assert.Equal(t, foodetl.ExitUsageError, foodetl.ExitCodeForError(err))
}

func TestRootCmd_HostShorthand(t *testing.T) {
	flag := rootCmd.Flags().ShorthandLookup("h")

	require.NotNil(t, flag)
	assert.Equal(t, "host", flag.Name)
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"schema", "inspect", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestInspectCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeDatasets(t, dir)

	out, err := execute(t, "inspect", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Inspected 3 datasets")
	assert.Contains(t, out, foodetl.DefaultUsersFile)
	assert.Contains(t, out, "interactions")
	assert.NotContains(t, out, "Appended")
}

func TestInspectCommand_MissingInput(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, foodetl.DefaultUsersFile, "user_id\n1\n")

	_, err := execute(t, "inspect", dir)

	require.Error(t, err)
	assert.Equal(t, foodetl.ExitInputError, foodetl.ExitCodeForError(err))
}

// A missing input is reported before any connection attempt, so no server
// needs to listen on the given address.
func TestLoadCommand_MissingInputBeforeConnecting(t *testing.T) {
	clearConnectionEnv(t)
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, foodetl.DefaultUsersFile, "user_id\n1\n")

	out, err := execute(t, dir, "--connection", "postgresql://etl@127.0.0.1:1/food")

	require.Error(t, err)
	assert.ErrorIs(t, err, foodetl.ErrInputNotFound)
	assert.True(t, strings.HasPrefix(out, "Load failed after "), out)
	assert.NotContains(t, out, "Loaded")
	assert.NotContains(t, out, "Dataset", "no table when nothing was staged")
}

func TestInspectCommand_FailureSummary(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeDatasets(t, dir)
	writeFile(t, dir, foodetl.DefaultRecipesFile, "name,id\ntoast,10,extra\n")

	out, err := execute(t, "inspect", dir)

	require.ErrorIs(t, err, foodetl.ErrMalformedInput)
	assert.True(t, strings.HasPrefix(out, "Inspect failed after "), out)
	assert.NotContains(t, out, "Inspected")
}

func TestFailureMessage(t *testing.T) {
	err := errors.New("boom")

	tests := []struct {
		cmd  *cobra.Command
		want string
	}{
		{rootCmd, "load failed: boom"},
		{schemaCmd, "schema failed: boom"},
		{inspectCmd, "inspect failed: boom"},
		{versionCmd, "error: boom"},
		{nil, "error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, failureMessage(tt.cmd, err))
		})
	}
}

func TestLoadCommand_InvalidTimeout(t *testing.T) {
	clearConnectionEnv(t)
	t.Chdir(t.TempDir())

	_, err := execute(t, t.TempDir(), "--timeout", "0s")
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("timeout", foodetl.DefaultTimeout.String()) })

	require.Error(t, err)
	assert.Equal(t, foodetl.ExitConfigError, foodetl.ExitCodeForError(err))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "foodetl "), out)
}

func TestResolveVersionInfo_LdflagsOverride(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	v, _, _ := resolveVersionInfo()
	assert.Equal(t, "1.2.3", v)
}
