package crawler

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// robotsGate answers whether a URL may be crawled under the site's
// robots.txt. Robots data is fetched once per host and cached; the crawl
// loop is single-threaded, so a plain map suffices. Fetch or parse failures
// fall open: the URL is allowed.
type robotsGate struct {
	client *http.Client
	agent  string
	ignore bool
	cache  map[string]*robotstxt.RobotsData
}

func newRobotsGate(client *http.Client, agent string, ignore bool) *robotsGate {
	return &robotsGate{
		client: client,
		agent:  agent,
		ignore: ignore,
		cache:  make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether the crawler may fetch the URL.
func (g *robotsGate) Allowed(rawURL string) bool {
	if g.ignore {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	robots, ok := g.cache[u.Host]
	if !ok {
		robots = g.fetch(u.Scheme, u.Host)
		g.cache[u.Host] = robots
	}
	if robots == nil {
		return true
	}
	return robots.TestAgent(u.Path, g.agent)
}

// fetch retrieves and parses a host's robots.txt, returning nil when the
// host has none or it cannot be read.
func (g *robotsGate) fetch(scheme, host string) *robotstxt.RobotsData {
	resp, err := g.client.Get(fmt.Sprintf("%s://%s/robots.txt", scheme, host))
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil
	}
	return robots
}
