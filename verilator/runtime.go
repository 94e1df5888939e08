package verilator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// Runtime owns the build artifact directory, the set of registered HDL
// source files, the library cache, and the DPI functions installed into
// every built library. One Runtime is typically constructed per process,
// matching the original implementation's VerilatorRuntime.
type Runtime struct {
	options           RuntimeOptions
	artifactDirectory string
	sources           map[string]bool
	dpiFunctions      []DpiFunction
	cache             *libraryCache
}

// New constructs a Runtime. Every path in sourceFiles is validated to
// exist and be a regular file immediately, per spec §4.2 step 1, rather
// than deferred to the first CreateModel call that needs it.
func New(options RuntimeOptions, sourceFiles []string, dpiFunctions []DpiFunction) (*Runtime, error) {
	artifactDir := options.ArtifactDirectory
	if artifactDir == "" {
		dir, err := os.MkdirTemp("", "marlin-*")
		if err != nil {
			return nil, fmt.Errorf("create artifact directory: %w", err)
		}
		artifactDir = dir
	}

	sources := make(map[string]bool, len(sourceFiles))
	for _, src := range sourceFiles {
		info, err := os.Stat(src)
		if err != nil || info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrSourceFileMissing, src)
		}
		abs, err := filepath.Abs(src)
		if err != nil {
			return nil, err
		}
		sources[filepath.Clean(abs)] = true
	}

	return &Runtime{
		options:           options,
		artifactDirectory: artifactDir,
		sources:           sources,
		dpiFunctions:      dpiFunctions,
		cache:             newLibraryCache(options.Verbose),
	}, nil
}

// registeredSourcePath canonicalizes path the same way New did, so build
// can look it up in rt.sources regardless of how the caller spelled it.
func (rt *Runtime) registeredSourcePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// staticModel is the constraint CreateModel requires: PT must be a
// pointer to T implementing StaticModel. This is the idiomatic Go
// rendering of the original implementation's generic
// fn create_model<M: VerilatedModel>(&mut self) -> Result<M, Whatever>,
// where Rust calls trait associated functions directly on the type; Go
// instead calls ordinary methods on a pointer to T's zero value.
type staticModel[T any] interface {
	*T
	StaticModel
}

// CreateModel builds (or reuses from cache) the library backing T's
// module, constructs an instance, and binds every port accessor field PT
// declares, returning a ready-to-use *T.
func CreateModel[T any, PT staticModel[T]](rt *Runtime) (PT, error) {
	var zero T
	pt := PT(&zero)

	source, err := rt.registeredSourcePath(pt.SourcePath())
	if err != nil {
		return nil, err
	}

	mod := ModuleDescriptor{
		Name:       pt.ModuleName(),
		SourcePath: source,
		Ports:      pt.PortList(),
	}

	if rt.options.Verbose {
		glog.V(1).Infof("creating static model %q from %s", mod.Name, mod.SourcePath)
	}

	lib, err := rt.build(mod)
	if err != nil {
		return nil, err
	}
	if err := pt.BindLibrary(lib); err != nil {
		return nil, err
	}
	return pt, nil
}

// CreateDynamicModel builds (or reuses from cache) the library backing a
// module described at runtime by name, sourcePath, and ports, returning a
// DynamicModel bound against it.
func CreateDynamicModel(rt *Runtime, name, sourcePath string, ports []PortDescriptor) (*DynamicModel, error) {
	source, err := rt.registeredSourcePath(sourcePath)
	if err != nil {
		return nil, err
	}

	mod := ModuleDescriptor{Name: name, SourcePath: source, Ports: ports}

	if rt.options.Verbose {
		glog.V(1).Infof("creating dynamic model %q from %s", mod.Name, mod.SourcePath)
	}

	lib, err := rt.build(mod)
	if err != nil {
		return nil, err
	}

	m := newDynamicModel(ports)
	if err := m.handle.Bind(lib, name); err != nil {
		return nil, err
	}
	return m, nil
}
