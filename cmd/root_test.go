package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "outbreak-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag, "root command should have --config flag")
	assert.Equal(t, "", flag.DefValue)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"run", "etl", "map", "report"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestETLCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range etlCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"run", "extract", "transform", "load"} {
		assert.True(t, names[name], "etl should have subcommand %q", name)
	}
}

func TestMapCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range mapCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"srs", "style", "query", "extent", "info", "export"} {
		assert.True(t, names[name], "map should have subcommand %q", name)
	}
}

func TestRunCommand_Flags(t *testing.T) {
	flag := runCmd.Flags().Lookup("subtitle")
	require.NotNil(t, flag, "run command should have --subtitle flag")
	assert.Equal(t, "", flag.DefValue)
}

func TestMapExportCommand_Flags(t *testing.T) {
	for _, name := range []string{"subtitle", "out"} {
		flag := mapExportCmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "map export should have --%s flag", name)
	}
}

func TestMapStyleCommand_Flags(t *testing.T) {
	flag := mapStyleCmd.Flags().Lookup("transparency")
	require.NotNil(t, flag, "map style should have --transparency flag")
	assert.Equal(t, "50", flag.DefValue)
}

func TestMapSRSCommand_Flags(t *testing.T) {
	flag := mapSRSCmd.Flags().Lookup("wkid")
	require.NotNil(t, flag, "map srs should have --wkid flag")
	assert.Equal(t, "0", flag.DefValue)
}
