package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/support-radar/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"jobs", "sites", "merge", "export", "run"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "support-radar", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestJobsCommand_Flags(t *testing.T) {
	flag := jobsCmd.Flags().Lookup("input")
	require.NotNil(t, flag, "jobs command should have --input flag")

	out := jobsCmd.Flags().Lookup("output")
	require.NotNil(t, out, "jobs command should have --output flag")
	assert.Equal(t, "jobs_analysis.csv", out.DefValue)
}

func TestSitesCommand_Flags(t *testing.T) {
	out := sitesCmd.Flags().Lookup("output")
	require.NotNil(t, out, "sites command should have --output flag")
	assert.Equal(t, "sites_analysis.csv", out.DefValue)
}

func TestMergeCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"jobs", "sites", "output"} {
		flag := mergeCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "merge should have --%s flag", flagName)
	}
}

func TestRunCommand_Flags(t *testing.T) {
	flag := runCmd.Flags().Lookup("out-dir")
	require.NotNil(t, flag, "run command should have --out-dir flag")
	assert.Equal(t, "data", flag.DefValue)
}

func TestScoreConfig_Overrides(t *testing.T) {
	c := &config.Config{}
	c.Score.MinTeamSize = 15
	c.Score.MaxDirectSize = 300

	sc := scoreConfig(c)
	assert.Equal(t, 15, sc.MinTeamSize)
	assert.Equal(t, 300, sc.MaxDirectSize)
}

func TestScoreConfig_Defaults(t *testing.T) {
	sc := scoreConfig(&config.Config{})
	assert.Equal(t, 10, sc.MinTeamSize)
	assert.Equal(t, 500, sc.MaxDirectSize)
}
