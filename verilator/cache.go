package verilator

import (
	"path/filepath"

	"github.com/golang/glog"

	"github.com/ethanuppal/marlin/internal/dlopen"
)

// libraryKey canonicalizes the (module name, source path) pair a built
// library is cached under, so that two CreateModel calls for the same
// module built from equivalent-but-differently-spelled paths hit the same
// cache entry.
type libraryKey struct {
	name       string
	sourcePath string
}

func newLibraryKey(name, sourcePath string) (libraryKey, error) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return libraryKey{}, err
	}
	return libraryKey{name: name, sourcePath: filepath.Clean(abs)}, nil
}

// libraryCache is a process-local, never-evicted cache of built and
// loaded libraries, one per (module, source) pair. It is not
// synchronized: the runtime is documented single-threaded, matching the
// teacher's own unsynchronized Display.proxies map.
type libraryCache struct {
	entries map[libraryKey]*dlopen.Library
	verbose bool
}

func newLibraryCache(verbose bool) *libraryCache {
	return &libraryCache{
		entries: make(map[libraryKey]*dlopen.Library),
		verbose: verbose,
	}
}

// get returns the cached library for key, if any.
func (c *libraryCache) get(key libraryKey) (*dlopen.Library, bool) {
	lib, ok := c.entries[key]
	if ok && c.verbose {
		glog.V(1).Infof("library cache hit for module %q source %q", key.name, key.sourcePath)
	}
	return lib, ok
}

// put registers a newly built library under key. At most one build ever
// happens per key; put is called exactly once per key for the lifetime of
// the cache.
func (c *libraryCache) put(key libraryKey, lib *dlopen.Library) {
	c.entries[key] = lib
	if c.verbose {
		glog.V(1).Infof("cached library for module %q source %q at %s", key.name, key.sourcePath, lib.Path())
	}
}
