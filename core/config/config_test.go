package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	alphaID = uuid.MustParse("a0000000-0000-0000-0000-00000000000a")
	betaID  = uuid.MustParse("b0000000-0000-0000-0000-00000000000b")
)

func expectedConfig() *Extensibility {
	return &Extensibility{
		PluginDirectory: "plugins",
		SegmentedContracts: []Contract{
			{
				Name: "SegmentedContract",
				RoutablePlugins: []RoutablePlugin{
					{ID: alphaID, Primary: true},
					{ID: betaID, MethodClaims: []string{"SomeOtherMethod"}},
				},
			},
		},
	}
}

func TestLoadFormatsNormalizeToSameModel(t *testing.T) {
	for _, file := range []string{
		"extensibility.json",
		"extensibility.yaml",
		"extensibility.toml",
		"extensibility.xml",
	} {
		t.Run(file, func(t *testing.T) {
			cfg, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)
			require.Equal(t, expectedConfig(), cfg)
			require.NoError(t, cfg.Validate())
		})
	}
}

func TestLoadPluginDirectoryFromEnv(t *testing.T) {
	t.Setenv(EnvPluginDirectory, "/opt/plugins")

	for _, file := range []string{"extensibility.json", "extensibility.xml"} {
		t.Run(file, func(t *testing.T) {
			cfg, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)
			require.Equal(t, "/opt/plugins", cfg.PluginDirectory)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "extensibility.ini"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)

	_, err = Load(filepath.Join("testdata", "missing.xml"))
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	for _, file := range []string{
		"extensibility.json",
		"extensibility.yaml",
		"extensibility.xml",
	} {
		t.Run(file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", file))
			require.NoError(t, err)

			cfg, err := Parse(data)
			require.NoError(t, err)
			require.Equal(t, expectedConfig(), cfg)
		})
	}

	_, err := Parse([]byte("  \n"))
	require.ErrorIs(t, err, ErrCfgBytesEmpty)
}

func TestFromXMLInvalidID(t *testing.T) {
	data := []byte(`<extensibility><segmentedContracts><contract name="C"><routablePlugins>` +
		`<plugin id="not-a-guid" primary="true"/></routablePlugins></contract></segmentedContracts></extensibility>`)

	_, err := FromXML(data)
	require.ErrorIs(t, err, ErrInvalidPluginID)
}

func TestFromBytesEmpty(t *testing.T) {
	_, err := FromJSON(nil)
	require.ErrorIs(t, err, ErrCfgBytesEmpty)

	_, err = FromYAML(nil)
	require.ErrorIs(t, err, ErrCfgBytesEmpty)

	_, err = FromXML(nil)
	require.ErrorIs(t, err, ErrCfgBytesEmpty)
}

func TestFromJSONDefaults(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"segmentedContracts":[{"name":"C","routablePlugins":[` +
		`{"id":"a0000000-0000-0000-0000-00000000000a"},{"id":"b0000000-0000-0000-0000-00000000000b","methodClaims":[]}]}]}`))
	require.NoError(t, err)

	plugins := cfg.SegmentedContracts[0].RoutablePlugins
	require.False(t, plugins[0].Primary)
	require.Nil(t, plugins[0].MethodClaims)
	require.Nil(t, plugins[1].MethodClaims)
	require.Empty(t, cfg.PluginDirectory)
}

func TestContractLookup(t *testing.T) {
	cfg := expectedConfig()

	c, err := cfg.Contract("SegmentedContract")
	require.NoError(t, err)
	require.Equal(t, "SegmentedContract", c.Name)

	_, err = cfg.Contract("SegmentedContrac")
	require.ErrorIs(t, err, ErrContractNotConfigured)
	require.Contains(t, err.Error(), "did you mean 'SegmentedContract'")

	_, err = cfg.Contract("Unrelated")
	require.ErrorIs(t, err, ErrContractNotConfigured)
	require.NotContains(t, err.Error(), "did you mean")

	_, err = new(Extensibility).Contract("SegmentedContract")
	require.ErrorIs(t, err, ErrContractNotConfigured)

	require.Equal(t, []string{"SegmentedContract"}, cfg.ContractNames())
}

func TestPluginPath(t *testing.T) {
	base := t.TempDir()

	t.Run("default directory missing falls back to base", func(t *testing.T) {
		path, err := (&Extensibility{}).PluginPath(base)
		require.NoError(t, err)
		require.Equal(t, base, path)
	})

	t.Run("default directory present", func(t *testing.T) {
		dir := filepath.Join(base, DefaultPluginDirectory)
		require.NoError(t, os.Mkdir(dir, 0o755))
		t.Cleanup(func() { _ = os.Remove(dir) })

		path, err := (&Extensibility{}).PluginPath(base)
		require.NoError(t, err)
		require.Equal(t, dir, path)
	})

	t.Run("explicit relative directory", func(t *testing.T) {
		dir := filepath.Join(base, "custom")
		require.NoError(t, os.Mkdir(dir, 0o755))

		path, err := (&Extensibility{PluginDirectory: "custom"}).PluginPath(base)
		require.NoError(t, err)
		require.Equal(t, dir, path)
	})

	t.Run("explicit directory missing", func(t *testing.T) {
		_, err := (&Extensibility{PluginDirectory: "absent"}).PluginPath(base)
		require.ErrorIs(t, err, ErrPluginDirectoryNotFound)
	})
}
