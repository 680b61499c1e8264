package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZones = []string{"eu-fr-paris", "eu-fr-north", "hk-hongkong", "sg-singapore"}

func TestAggregate_SkipsMalformedFlows(t *testing.T) {
	flows := []ObservedFlow{
		{Hostname: "", Address: "10.0.0.1"},
		{Hostname: "   ", Address: "10.0.0.2"},
		{Hostname: "login.example.com", Address: ""},
		{Hostname: "login.example.com", Address: "not-an-ip"},
		{Hostname: "Login.Example.com", Address: "10.0.0.3"},
	}

	groups := Aggregate(context.Background(), flows, nil, nil)

	require.Len(t, groups, 1)
	g := groups["login"]
	assert.Equal(t, "login", g.Key)
	assert.Equal(t, []string{"10.0.0.3"}, g.Addresses.Sorted())
	assert.Equal(t, []string{"login.example.com"}, g.Hostnames.Sorted())
}

func TestAggregate_CanonicalAddresses(t *testing.T) {
	flows := []ObservedFlow{
		{Hostname: "svc.example.com", Address: " 10.0.0.1 "},
		{Hostname: "svc.example.com", Address: "::ffff:10.0.0.1"},
	}

	groups := Aggregate(context.Background(), flows, nil, nil)

	assert.Equal(t, []string{"10.0.0.1"}, groups["svc"].Addresses.Sorted())
}

func TestAggregate_ExpandsAvailabilityZones(t *testing.T) {
	r := newStaticResolver(map[string][]string{
		"api.slb.eu-fr-north.cloud.socgen":  {"10.1.0.2"},
		"api.slb.sg-singapore.cloud.socgen": {"10.1.0.4", "bogus"},
	})
	flows := []ObservedFlow{
		{Hostname: "api.slb.eu-fr-paris.cloud.socgen", Address: "10.1.0.1"},
		{Hostname: "api.slb.eu-fr-paris.cloud.socgen", Address: "10.1.0.1"},
	}

	groups := Aggregate(context.Background(), flows, testZones, r)

	require.Len(t, groups, 1)
	g := groups["api.slb"]
	assert.Equal(t, []string{"10.1.0.1", "10.1.0.2", "10.1.0.4"}, g.Addresses.Sorted())
	assert.Equal(t, []string{
		"api.slb.eu-fr-north.cloud.socgen",
		"api.slb.eu-fr-paris.cloud.socgen",
		"api.slb.sg-singapore.cloud.socgen",
	}, g.Hostnames.Sorted())

	// each sibling is resolved once even though the hostname was seen twice
	assert.Equal(t, 1, r.calls["api.slb.eu-fr-north.cloud.socgen"])
	assert.Equal(t, 1, r.calls["api.slb.hk-hongkong.cloud.socgen"])
	assert.Zero(t, r.calls["api.slb.eu-fr-paris.cloud.socgen"])
}

func TestAggregate_NoZoneTokenNoLookup(t *testing.T) {
	r := newStaticResolver(nil)
	flows := []ObservedFlow{{Hostname: "login.example.com", Address: "10.0.0.1"}}

	Aggregate(context.Background(), flows, testZones, r)

	assert.Empty(t, r.calls)
}

func TestSiblingHostnames(t *testing.T) {
	assert.Equal(t, []string{
		"a.eu-fr-north.x",
		"a.hk-hongkong.x",
		"a.sg-singapore.x",
	}, siblingHostnames("a.eu-fr-paris.x", testZones))

	assert.Empty(t, siblingHostnames("a.b.c", testZones))
}
