package tramline

import (
	"bytes"

	"github.com/bluele/gcache"

	"github.com/theoremus-urban-solutions/tramline/routing"
)

const defaultJourneyCacheSize = 512

// journeyCache memoizes station-to-station journeys. The network is
// immutable for the lifetime of a Service, so entries never expire.
type journeyCache struct {
	cache gcache.Cache
}

func newJourneyCache(size int) *journeyCache {
	if size <= 0 {
		size = defaultJourneyCacheSize
	}
	return &journeyCache{cache: gcache.New(size).LRU().Build()}
}

func (c *journeyCache) get(key string) (*routing.Journey, bool) {
	v, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	j, ok := v.(*routing.Journey)
	return j, ok
}

func (c *journeyCache) set(key string, j *routing.Journey) {
	_ = c.cache.Set(key, j)
}

func memoKey(args ...string) string {
	var b bytes.Buffer
	for i, a := range args {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(a)
	}
	return b.String()
}
