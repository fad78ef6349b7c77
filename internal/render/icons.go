package render

import "strings"

const (
	terrastruct = "https://icons.terrastruct.com"
	selfhst     = "https://cdn.jsdelivr.net/gh/selfhst/icons/svg"
)

type iconEntry struct {
	match string
	url   string
}

// imageIcons is checked in order against the lowercased image reference.
var imageIcons = []iconEntry{
	{"postgres", terrastruct + "/dev/postgresql.svg"},
	{"mysql", terrastruct + "/dev/mysql.svg"},
	{"mariadb", selfhst + "/mariadb.svg"},
	{"mongo", selfhst + "/mongodb.svg"},
	{"redis", terrastruct + "/dev/redis.svg"},
	{"rabbitmq", selfhst + "/rabbitmq.svg"},
	{"nginx-proxy-manager", selfhst + "/nginx-proxy-manager.svg"},
	{"nginx", terrastruct + "/dev/nginx.svg"},
	{"traefik", selfhst + "/traefik.svg"},
	{"caddy", selfhst + "/caddy.svg"},
	{"grafana", selfhst + "/grafana.svg"},
	{"prometheus", selfhst + "/prometheus.svg"},
	{"netdata", selfhst + "/netdata.svg"},
	{"uptime-kuma", selfhst + "/uptime-kuma.svg"},
	{"portainer", selfhst + "/portainer.svg"},
	{"node", terrastruct + "/dev/nodejs.svg"},
	{"python", terrastruct + "/dev/python.svg"},
	{"golang", selfhst + "/golang.svg"},
}

// categoryIcons is the fallback when no image pattern matches.
var categoryIcons = map[string]string{
	"database": terrastruct + "/essentials/117-database.svg",
	"proxy":    terrastruct + "/essentials/092-network.svg",
	"tooling":  terrastruct + "/dev/docker.svg",
}

// LookupIcon returns the icon URL for a container image, falling back to
// its category, or "" when neither is known.
func LookupIcon(image, category string) string {
	img := strings.ToLower(image)
	if img != "" {
		for _, e := range imageIcons {
			if strings.Contains(img, e.match) {
				return e.url
			}
		}
	}
	return categoryIcons[category]
}
