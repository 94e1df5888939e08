package verilator

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("needsRebuild", func() {
	var (
		dir    string
		source string
		p      artifactPaths
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		source = filepath.Join(dir, "m.sv")
		Expect(os.WriteFile(source, []byte("module m; endmodule"), 0o644)).To(Succeed())

		p = artifactPaths{
			objDir:  filepath.Join(dir, "obj_dir"),
			dpiDir:  filepath.Join(dir, "dpi"),
			library: filepath.Join(dir, "obj_dir", "libm.so"),
		}
		Expect(os.MkdirAll(p.objDir, 0o755)).To(Succeed())
		Expect(os.MkdirAll(p.dpiDir, 0o755)).To(Succeed())
	})

	It("reports true when the library does not exist yet", func() {
		rebuild, err := needsRebuild(p, []string{source}, "", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(rebuild).To(BeTrue())
	})

	It("reports false when the library is newer than every source and the DPI source matches", func() {
		Expect(os.WriteFile(p.library, []byte("so"), 0o644)).To(Succeed())
		future := time.Now().Add(time.Hour)
		Expect(os.Chtimes(p.library, future, future)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(p.dpiDir, "wrappers.c"), []byte("same"), 0o644)).To(Succeed())

		rebuild, err := needsRebuild(p, []string{source}, "same", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(rebuild).To(BeFalse())
	})

	It("reports true when a source file is newer than the library", func() {
		Expect(os.WriteFile(p.library, []byte("so"), 0o644)).To(Succeed())
		past := time.Now().Add(-time.Hour)
		Expect(os.Chtimes(p.library, past, past)).To(Succeed())

		rebuild, err := needsRebuild(p, []string{source}, "", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(rebuild).To(BeTrue())
	})

	It("reports true when the DPI wrapper source has changed", func() {
		Expect(os.WriteFile(p.library, []byte("so"), 0o644)).To(Succeed())
		future := time.Now().Add(time.Hour)
		Expect(os.Chtimes(p.library, future, future)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(p.dpiDir, "wrappers.c"), []byte("old"), 0o644)).To(Succeed())

		rebuild, err := needsRebuild(p, []string{source}, "new", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(rebuild).To(BeTrue())
	})

	It("reports true when force is set even though nothing else changed", func() {
		Expect(os.WriteFile(p.library, []byte("so"), 0o644)).To(Succeed())
		future := time.Now().Add(time.Hour)
		Expect(os.Chtimes(p.library, future, future)).To(Succeed())

		rebuild, err := needsRebuild(p, []string{source}, "", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(rebuild).To(BeTrue())
	})

	It("propagates a missing source file as ErrSourceFileMissing", func() {
		Expect(os.WriteFile(p.library, []byte("so"), 0o644)).To(Succeed())
		_, err := needsRebuild(p, []string{filepath.Join(dir, "missing.sv")}, "", false)
		Expect(err).To(MatchError(ErrSourceFileMissing))
	})
})

var _ = Describe("verilatorArgs", func() {
	mod := ModuleDescriptor{Name: "defines_main", SourcePath: "defines.sv"}
	p := artifactPaths{objDir: "obj_dir"}

	It("passes no +define+ flags by default", func() {
		args := verilatorArgs(mod, p, DefaultRuntimeOptions())
		for _, a := range args {
			Expect(a).NotTo(HavePrefix("+define+"))
		}
	})

	It("emits one +define+ flag per configured define", func() {
		options := DefaultRuntimeOptions()
		options.Defines = []string{"INVERT_OUTPUT", "WIDTH=8"}

		args := verilatorArgs(mod, p, options)
		Expect(args).To(ContainElement("+define+INVERT_OUTPUT"))
		Expect(args).To(ContainElement("+define+WIDTH=8"))
	})

	It("places the module source and generated shim sources after any defines", func() {
		options := DefaultRuntimeOptions()
		options.Defines = []string{"INVERT_OUTPUT"}

		args := verilatorArgs(mod, p, options)
		defineIdx := -1
		sourceIdx := -1
		for i, a := range args {
			if a == "+define+INVERT_OUTPUT" {
				defineIdx = i
			}
			if a == mod.SourcePath {
				sourceIdx = i
			}
		}
		Expect(defineIdx).To(BeNumerically(">=", 0))
		Expect(sourceIdx).To(BeNumerically(">", defineIdx))
	})
})
