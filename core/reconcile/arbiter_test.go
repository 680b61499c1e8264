package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArbitrate_CurrentOwnerKeepsAddress(t *testing.T) {
	desired := lists(
		list("DNA_alpha-IPL", []string{"184.5.2.10", "10.0.0.1"}),
		list("DNA_beta-IPL", []string{"184.5.2.10"}),
	)
	owners := map[string]string{"184.5.2.10": "DNA_beta-IPL"}

	out, events := Arbitrate(desired, owners, DefaultEnvPreference)

	assert.Equal(t, []string{"10.0.0.1"}, out["DNA_alpha-IPL"].Addresses.Sorted())
	assert.Equal(t, []string{"184.5.2.10"}, out["DNA_beta-IPL"].Addresses.Sorted())
	require.Len(t, events, 1)
	assert.Equal(t, ChangeEvent{
		Kind:        EventReassigned,
		Name:        "DNA_beta-IPL",
		Address:     "184.5.2.10",
		RemovedFrom: "DNA_alpha-IPL",
	}, events[0])

	// input untouched
	assert.Len(t, desired["DNA_alpha-IPL"].Addresses, 2)
}

func TestArbitrate_EnvironmentPreference(t *testing.T) {
	desired := lists(
		list("DNA_service-dev-IPL", []string{"192.168.1.1"}),
		list("DNA_service-prd-IPL", []string{"192.168.1.1"}),
	)

	out, events := Arbitrate(desired, nil, DefaultEnvPreference)

	assert.Equal(t, []string{"192.168.1.1"}, out["DNA_service-prd-IPL"].Addresses.Sorted())
	assert.Empty(t, out["DNA_service-dev-IPL"].Addresses)
	require.Len(t, events, 1)
	assert.Equal(t, "DNA_service-prd-IPL", events[0].Name)
	assert.Equal(t, "DNA_service-dev-IPL", events[0].RemovedFrom)
}

func TestArbitrate_FallbackOrdersLosersByName(t *testing.T) {
	desired := lists(
		list("DNA_service-uat-IPL", []string{"192.168.1.1"}),
		list("DNA_service-dev-IPL", []string{"192.168.1.1"}),
		list("DNA_service-prd-IPL", []string{"192.168.1.1"}),
	)
	owners := map[string]string{"192.168.1.1": "DNA_unrelated-IPL"}

	_, events := Arbitrate(desired, owners, DefaultEnvPreference)

	require.Len(t, events, 2)
	assert.Equal(t, "DNA_service-dev-IPL", events[0].RemovedFrom)
	assert.Equal(t, "DNA_service-uat-IPL", events[1].RemovedFrom)
	for _, e := range events {
		assert.Equal(t, "DNA_service-prd-IPL", e.Name)
	}
}

func TestArbitrate_UnrankedNamesFallBackToLexicographic(t *testing.T) {
	desired := lists(
		list("DNA_zeta-IPL", []string{"10.0.0.1"}),
		list("DNA_alpha-IPL", []string{"10.0.0.1"}),
	)

	out, _ := Arbitrate(desired, nil, DefaultEnvPreference)

	assert.True(t, out["DNA_alpha-IPL"].Addresses.Has("10.0.0.1"))
	assert.False(t, out["DNA_zeta-IPL"].Addresses.Has("10.0.0.1"))
}

func TestArbitrate_ConfigurablePreference(t *testing.T) {
	desired := lists(
		list("DNA_service-dev-IPL", []string{"10.0.0.1"}),
		list("DNA_service-prd-IPL", []string{"10.0.0.1"}),
	)

	out, _ := Arbitrate(desired, nil, []string{"dev", "prd"})

	assert.True(t, out["DNA_service-dev-IPL"].Addresses.Has("10.0.0.1"))
}

func TestArbitrate_IdempotentAndUnique(t *testing.T) {
	desired := lists(
		list("DNA_a-dev-IPL", []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}),
		list("DNA_a-prd-IPL", []string{"10.0.0.2", "10.0.0.4"}),
		list("DNA_b-IPL", []string{"10.0.0.3", "10.0.0.4", "10.0.0.5"}),
		list("DNA_c-uat-IPL", []string{"10.0.0.1", "10.0.0.5"}),
	)
	owners := map[string]string{"10.0.0.5": "DNA_c-uat-IPL"}

	first, events := Arbitrate(desired, owners, DefaultEnvPreference)
	require.NotEmpty(t, events)
	require.NoError(t, VerifyUniqueOwnership(first))

	second, again := Arbitrate(first, owners, DefaultEnvPreference)
	assert.Empty(t, again)
	assert.Equal(t, first, second)
}

func TestVerifyUniqueOwnership(t *testing.T) {
	err := VerifyUniqueOwnership(lists(
		list("DNA_a-IPL", []string{"10.0.0.1"}),
		list("DNA_b-IPL", []string{"10.0.0.1"}),
	))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.Contains(t, err.Error(), "10.0.0.1")
}

func TestOwnershipMap(t *testing.T) {
	owners := OwnershipMap(lists(
		list("DNA_b-IPL", []string{"10.0.0.1", "10.0.0.2"}),
		list("DNA_a-IPL", []string{"10.0.0.2"}),
	))

	assert.Equal(t, map[string]string{
		"10.0.0.1": "DNA_b-IPL",
		"10.0.0.2": "DNA_a-IPL",
	}, owners)
}

func TestDuplicateAddresses(t *testing.T) {
	dups := DuplicateAddresses(lists(
		list("DNA_a-IPL", []string{"10.0.0.2", "10.0.0.1"}),
		list("DNA_b-IPL", []string{"10.0.0.2"}),
		list("DNA_c-IPL", []string{"10.0.0.1", "10.0.0.2"}),
	))

	assert.Equal(t, []Duplicate{
		{Address: "10.0.0.1", Lists: []string{"DNA_a-IPL", "DNA_c-IPL"}},
		{Address: "10.0.0.2", Lists: []string{"DNA_a-IPL", "DNA_b-IPL", "DNA_c-IPL"}},
	}, dups)
}

func TestEnvRank(t *testing.T) {
	assert.Equal(t, 0, envRank("DNA_service-prd-IPL", DefaultEnvPreference))
	assert.Equal(t, 7, envRank("DNA_service-dev-IPL", DefaultEnvPreference))
	assert.Equal(t, len(DefaultEnvPreference), envRank("DNA_service-IPL", DefaultEnvPreference))
	// "production" matches as a token, "prdx" does not
	assert.Equal(t, 2, envRank("DNA_production.example-IPL", DefaultEnvPreference))
	assert.Equal(t, len(DefaultEnvPreference), envRank("DNA_prdx-IPL", DefaultEnvPreference))
}
