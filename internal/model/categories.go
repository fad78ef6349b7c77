package model

import "strings"

// categoryPattern maps an image or name substring to a category.
type categoryPattern struct {
	match    string
	category string
}

// categoryPatterns is checked in order; the first match wins, so more
// specific patterns come before the generic ones they contain.
var categoryPatterns = []categoryPattern{
	// Databases
	{"postgres", "database"},
	{"mysql", "database"},
	{"mariadb", "database"},
	{"mongo", "database"},
	{"couchdb", "database"},
	{"clickhouse", "database"},
	{"influxdb", "database"},

	// Caches and queues
	{"redis", "cache"},
	{"memcached", "cache"},
	{"valkey", "cache"},
	{"rabbitmq", "queue"},
	{"kafka", "queue"},
	{"nats", "queue"},

	// Proxies
	{"nginx-proxy-manager", "proxy"},
	{"traefik", "proxy"},
	{"nginx", "proxy"},
	{"caddy", "proxy"},
	{"haproxy", "proxy"},
	{"envoy", "proxy"},

	// Monitoring
	{"prometheus", "monitoring"},
	{"grafana", "monitoring"},
	{"netdata", "monitoring"},
	{"uptime-kuma", "monitoring"},
	{"cadvisor", "monitoring"},
	{"loki", "monitoring"},

	// Container tooling
	{"portainer", "tooling"},
	{"watchtower", "tooling"},
	{"registry", "tooling"},
}

// Categorize returns the category of a container based on its name and
// image, or "" when nothing matches.
func Categorize(name, image string) string {
	img := strings.ToLower(image)
	// Judge the repository path only: drop the registry host and the tag.
	if host, rest, ok := strings.Cut(img, "/"); ok && (strings.ContainsAny(host, ".:") || host == "localhost") {
		img = rest
	}
	if i := strings.LastIndex(img, ":"); i > strings.LastIndex(img, "/") {
		img = img[:i]
	}
	lower := strings.ToLower(name) + " " + img

	for _, p := range categoryPatterns {
		if strings.Contains(lower, p.match) {
			return p.category
		}
	}
	return ""
}

// Category returns the category of the container.
func (c *Container) Category() string {
	return Categorize(c.Name, c.Image)
}
