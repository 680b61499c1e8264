package reconcile

import (
	"regexp"
	"strings"
)

// gatewayLabel is the first label of API gateway hostnames. Gateways are
// published per region, so the region label must not split the group.
const gatewayLabel = "api"

var (
	// <hex id>.ece.<service>.<env>.<...>, e.g. shared monitoring deployments.
	sharedServicePattern = regexp.MustCompile(`^[0-9a-f]+\.ece\.([a-z0-9-]+)\.([a-z0-9]+)\.`)

	// <node>-<n>-fed.fed.<backbone>.<env>.<...>, e.g. federated kafka clusters.
	federatedPattern = regexp.MustCompile(`^[a-z0-9]+-\d+-fed\.fed\.([a-z0-9-]+)\.([a-z0-9]+)\.`)
)

// GroupKey maps a hostname to the key its addresses are grouped under.
// It returns "" for input that cannot be grouped.
func GroupKey(hostname string) string {
	host := normalizeHostname(hostname)
	if host == "" {
		return ""
	}

	if m := sharedServicePattern.FindStringSubmatch(host); m != nil {
		return m[1] + "." + m[2]
	}
	if m := federatedPattern.FindStringSubmatch(host); m != nil {
		return m[1] + "." + m[2]
	}

	labels := strings.Split(host, ".")
	if labels[0] == gatewayLabel && len(labels) > 1 && labels[1] != "" {
		return labels[0] + "." + labels[1]
	}
	return labels[0]
}

// normalizeHostname lower-cases and trims a hostname, dropping the root dot.
func normalizeHostname(hostname string) string {
	host := strings.ToLower(strings.TrimSpace(hostname))
	return strings.TrimSuffix(host, ".")
}
