package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		want     string
	}{
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"root only", ".", ""},
		{"shared monitoring dev", "0c60359b1d9f40cd84bf7add3a6b4bf7.ece.sgmonitoring.dev.euw.gbis.sg-azure.com", "sgmonitoring.dev"},
		{"shared monitoring prd", "0c60359b1d9f40cd84bf7add3a6b4bf7.ece.sgmonitoring.prd.euw.gbis.sg-azure.com", "sgmonitoring.prd"},
		{"federated dev", "kfkdev-1-fed.fed.kafka.dev.euw.gbis.sg-azure.com", "kafka.dev"},
		{"federated prd", "kfkprd-6-fed.fed.kafka.prd.euw.gbis.sg-azure.com", "kafka.prd"},
		{"gateway account", "api.account.cloud.socgen", "api.account"},
		{"gateway group", "api.group.socgen", "api.group"},
		{"gateway intra", "api.intra.transactis.fr", "api.intra"},
		{"gateway sgdocs", "api.sgdocs.prd.euw.gbis.sg-azure.com", "api.sgdocs"},
		{"gateway paris", "api.slb.eu-fr-paris.cloud.socgen", "api.slb"},
		{"gateway north", "api.slb.eu-fr-north.cloud.socgen", "api.slb"},
		{"gateway hongkong", "api.slb.hk-hongkong.cloud.socgen", "api.slb"},
		{"gateway singapore", "api.slb.sg-singapore.cloud.socgen", "api.slb"},
		{"bare gateway label", "api", "api"},
		{"default first label", "pkumar2.fr.world.socgen", "pkumar2"},
		{"default lower-cased", "Login.Example.COM", "login"},
		{"trailing dot", "login.example.com.", "login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupKey(tt.hostname))
		})
	}
}

func TestGroupKey_SameRuleSameEnvironment(t *testing.T) {
	pairs := [][2]string{
		{"aa11.ece.sgmonitoring.dev.euw.example.com", "ff00.ece.sgmonitoring.dev.use.example.com"},
		{"kfkdev-1-fed.fed.kafka.dev.euw.example.com", "kfkdev-9-fed.fed.kafka.dev.use.example.com"},
		{"api.slb.eu-fr-paris.cloud.socgen", "api.slb.sg-singapore.cloud.socgen"},
	}
	for _, p := range pairs {
		assert.Equal(t, GroupKey(p[0]), GroupKey(p[1]), "%s vs %s", p[0], p[1])
	}

	assert.NotEqual(t,
		GroupKey("aa11.ece.sgmonitoring.dev.euw.example.com"),
		GroupKey("aa11.ece.sgmonitoring.prd.euw.example.com"))
}

func TestNaming(t *testing.T) {
	n := DefaultNaming()

	assert.Equal(t, "DNA_pkumar2.fr.world.socgen-IPL", n.ListName("pkumar2.fr.world.socgen"))
	assert.Equal(t, "DNA_a.b.c-IPL", n.ListName("a_b c"))
	assert.Equal(t, "DNA_api.slb.eu-fr-paris.cloud.socgen-2-IPL", n.ListName("api.slb.eu-fr-paris.cloud.socgen-2"))

	assert.True(t, n.Managed("DNA_x-IPL"))
	assert.False(t, n.Managed("OTHER_x"))

	assert.Equal(t, "pkumar2.fr.world.socgen", n.Short("DNA_pkumar2.fr.world.socgen-IPL"))
	assert.Equal(t, "OTHER_x", n.Short("OTHER_x"))
}
