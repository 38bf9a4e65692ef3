package mux_test

import (
	"testing"

	"github.com/anoideaopen/pluginhost/core/catalog"
	"github.com/anoideaopen/pluginhost/core/config"
	"github.com/anoideaopen/pluginhost/core/routing"
	"github.com/anoideaopen/pluginhost/core/routing/mux"
	"github.com/anoideaopen/pluginhost/mock/segmented"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wide is a contract with enough methods to check coverage and fallback.
type Wide interface {
	A() string
	B() string
	C() string
	D() string
}

type wideImpl struct {
	name string
}

func (w wideImpl) A() string { return w.name }
func (w wideImpl) B() string { return w.name }
func (w wideImpl) C() string { return w.name }
func (w wideImpl) D() string { return w.name }

var (
	primaryID = uuid.MustParse("10000000-0000-0000-0000-000000000001")
	leftID    = uuid.MustParse("20000000-0000-0000-0000-000000000002")
	rightID   = uuid.MustParse("30000000-0000-0000-0000-000000000003")
)

func wideCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c := catalog.New()
	require.NoError(t, c.Add(primaryID, wideImpl{name: "primary"}))
	require.NoError(t, c.Add(leftID, wideImpl{name: "left"}))
	require.NoError(t, c.Add(rightID, wideImpl{name: "right"}))

	return c
}

func wideConfig() config.Contract {
	return config.Contract{
		Name: "Wide",
		RoutablePlugins: []config.RoutablePlugin{
			{ID: leftID, MethodClaims: []string{"A"}},
			{ID: primaryID, Primary: true},
			{ID: rightID, MethodClaims: []string{"C", "D"}},
		},
	}
}

func wideContract(t *testing.T) routing.Contract {
	t.Helper()

	contract, err := routing.ContractOf[Wide]()
	require.NoError(t, err)

	return contract
}

func TestBuildCoverageAndPrecedence(t *testing.T) {
	contract := wideContract(t)

	table, err := mux.Build[Wide](wideConfig(), wideCatalog(t), contract)
	require.NoError(t, err)
	require.Equal(t, len(contract.Methods), table.Len())

	expected := map[string]uuid.UUID{
		"A": leftID,
		"B": primaryID,
		"C": rightID,
		"D": rightID,
	}
	assert.Equal(t, expected, table.Assignments())

	for method, id := range expected {
		impl, plugin, ok := table.Lookup(method)
		require.True(t, ok, method)
		assert.Equal(t, id, plugin)
		assert.NotNil(t, impl)
	}
}

func TestBuildPrimaryOnly(t *testing.T) {
	cfg := config.Contract{
		Name:            "Wide",
		RoutablePlugins: []config.RoutablePlugin{{ID: primaryID, Primary: true}},
	}

	router, err := mux.NewRouter[Wide](cfg, wideCatalog(t), wideContract(t))
	require.NoError(t, err)

	for _, method := range []string{"A", "B", "C", "D"} {
		impl, err := router.Route(method)
		require.NoError(t, err)
		assert.Equal(t, "primary", impl.A())
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	c := wideCatalog(t)
	contract := wideContract(t)

	first, err := mux.Build[Wide](wideConfig(), c, contract)
	require.NoError(t, err)

	second, err := mux.Build[Wide](wideConfig(), c, contract)
	require.NoError(t, err)

	assert.Equal(t, first.Assignments(), second.Assignments())
}

func TestBuildErrors(t *testing.T) {
	contract := wideContract(t)

	tests := []struct {
		name    string
		cfg     config.Contract
		catalog routing.Catalog
		wantErr error
	}{
		{
			name: "missing primary",
			cfg: config.Contract{Name: "Wide", RoutablePlugins: []config.RoutablePlugin{
				{ID: leftID, MethodClaims: []string{"A"}},
			}},
			catalog: wideCatalog(t),
			wantErr: config.ErrMissingPrimaryPlugin,
		},
		{
			name: "multiple primaries",
			cfg: config.Contract{Name: "Wide", RoutablePlugins: []config.RoutablePlugin{
				{ID: leftID, Primary: true},
				{ID: rightID, Primary: true},
			}},
			catalog: wideCatalog(t),
			wantErr: config.ErrMultiplePrimaryPlugins,
		},
		{
			name: "method claimed twice",
			cfg: config.Contract{Name: "Wide", RoutablePlugins: []config.RoutablePlugin{
				{ID: primaryID, Primary: true},
				{ID: leftID, MethodClaims: []string{"A"}},
				{ID: rightID, MethodClaims: []string{"A"}},
			}},
			catalog: wideCatalog(t),
			wantErr: config.ErrMethodClaimedByMultiplePlugins,
		},
		{
			name:    "primary not in catalog",
			cfg:     wideConfig(),
			catalog: routing.CatalogFunc(func(uuid.UUID) (routing.AdapterEntry, bool) { return routing.AdapterEntry{}, false }),
			wantErr: routing.ErrPluginNotFound,
		},
		{
			name: "claiming plugin not in catalog",
			cfg: config.Contract{Name: "Wide", RoutablePlugins: []config.RoutablePlugin{
				{ID: primaryID, Primary: true},
				{ID: segmented.BetaID, MethodClaims: []string{"A"}},
			}},
			catalog: wideCatalog(t),
			wantErr: routing.ErrPluginNotFound,
		},
		{
			name: "unknown claim",
			cfg: config.Contract{Name: "Wide", RoutablePlugins: []config.RoutablePlugin{
				{ID: primaryID, Primary: true},
				{ID: leftID, MethodClaims: []string{"E"}},
			}},
			catalog: wideCatalog(t),
			wantErr: routing.ErrUnknownMethodClaim,
		},
		{
			name: "instance does not implement contract",
			cfg: config.Contract{Name: "Wide", RoutablePlugins: []config.RoutablePlugin{
				{ID: segmented.AlphaID, Primary: true},
			}},
			catalog: func() routing.Catalog {
				c := catalog.New()
				require.NoError(t, c.Export(segmented.First{}))
				return c
			}(),
			wantErr: routing.ErrPluginContractMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := mux.Build[Wide](tt.cfg, tt.catalog, contract)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, table)
		})
	}
}

func TestContractMismatchNamesMissingMethods(t *testing.T) {
	plugins := catalog.New()
	require.NoError(t, plugins.Export(segmented.First{}))

	cfg := config.Contract{Name: "Wide", RoutablePlugins: []config.RoutablePlugin{{ID: segmented.AlphaID, Primary: true}}}

	_, err := mux.Build[Wide](cfg, plugins, wideContract(t))
	require.ErrorIs(t, err, routing.ErrPluginContractMismatch)
	assert.Contains(t, err.Error(), "missing methods [A B C D]")
}

func TestUnknownClaimSuggestsMethod(t *testing.T) {
	contract, err := routing.ContractOf[segmented.SegmentedContract]()
	require.NoError(t, err)

	cfg := segmented.Configuration()
	cfg.RoutablePlugins[1].MethodClaims = []string{"SomeOthrMethod"}

	_, err = mux.Plan(cfg, contract)
	require.ErrorIs(t, err, routing.ErrUnknownMethodClaim)
	assert.Contains(t, err.Error(), "did you mean 'SomeOtherMethod'?")
}

func TestPlan(t *testing.T) {
	contract, err := routing.ContractOf[segmented.SegmentedContract]()
	require.NoError(t, err)

	assignments, err := mux.Plan(segmented.Configuration(), contract)
	require.NoError(t, err)
	assert.Equal(t, map[string]uuid.UUID{
		"SomeMethod":      segmented.AlphaID,
		"SomeOtherMethod": segmented.BetaID,
	}, assignments)
}

func TestRouter(t *testing.T) {
	plugins := catalog.New()
	require.NoError(t, plugins.Export(segmented.First{}, segmented.Second{}))

	contract, err := routing.ContractOf[segmented.SegmentedContract]()
	require.NoError(t, err)

	router, err := mux.NewRouter[segmented.SegmentedContract](segmented.Configuration(), plugins, contract)
	require.NoError(t, err)

	assert.Equal(t, contract, router.Contract())
	assert.Equal(t, 2, router.Table().Len())

	impl, err := router.Route("SomeMethod")
	require.NoError(t, err)
	assert.Equal(t, "first-some", impl.SomeMethod())

	impl, err = router.Route("SomeOtherMethod")
	require.NoError(t, err)
	assert.Equal(t, "second-other", impl.SomeOtherMethod())

	untyped, err := router.Resolve("SomeOtherMethod")
	require.NoError(t, err)
	assert.Equal(t, segmented.Second{}, untyped)

	id, ok := router.Plugin("SomeOtherMethod")
	require.True(t, ok)
	assert.Equal(t, segmented.BetaID, id)

	_, err = router.Route("Missing")
	require.ErrorIs(t, err, routing.ErrUnregisteredMethod)

	_, err = router.Resolve("Missing")
	require.ErrorIs(t, err, routing.ErrUnregisteredMethod)

	_, ok = router.Plugin("Missing")
	assert.False(t, ok)

	methods := router.Methods()
	delete(methods, "SomeMethod")
	assert.Len(t, router.Methods(), 2)
}
