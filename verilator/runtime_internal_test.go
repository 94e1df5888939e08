package verilator

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("New", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("accepts a runtime with no registered sources", func() {
		rt, err := New(DefaultRuntimeOptions(), nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(rt.sources).To(BeEmpty())
	})

	It("registers an existing source file", func() {
		source := filepath.Join(dir, "m.sv")
		Expect(os.WriteFile(source, []byte("module m; endmodule"), 0o644)).To(Succeed())

		opts := DefaultRuntimeOptions()
		opts.ArtifactDirectory = dir
		rt, err := New(opts, []string{source}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(rt.sources).To(HaveLen(1))
	})

	It("rejects a source file that does not exist", func() {
		opts := DefaultRuntimeOptions()
		opts.ArtifactDirectory = dir
		_, err := New(opts, []string{filepath.Join(dir, "missing.sv")}, nil)
		Expect(err).To(MatchError(ErrSourceFileMissing))
	})

	It("rejects a directory given as a source file", func() {
		opts := DefaultRuntimeOptions()
		opts.ArtifactDirectory = dir
		_, err := New(opts, []string{dir}, nil)
		Expect(err).To(MatchError(ErrSourceFileMissing))
	})

	It("creates a temporary artifact directory when none is given", func() {
		rt, err := New(DefaultRuntimeOptions(), nil, nil)
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(rt.artifactDirectory)
		info, err := os.Stat(rt.artifactDirectory)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})
})
