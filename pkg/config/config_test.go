package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gridscope/gridscope/pkg/config"
)

var _ = Describe("Config", func() {
	Describe("NewDefaultConfig", func() {
		It("populates every section", func() {
			d := config.NewDefaultConfig()
			Expect(d.Version).To(Equal(config.CurrentV))
			Expect(d.LLM.Model).NotTo(BeEmpty())
			Expect(d.Pipeline.Approval).To(Equal("prompt"))
		})
	})

	Describe("InitViper", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("applies defaults when no config file exists", func() {
			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg := config.FromViper(v)
			Expect(cfg.LLM.Model).To(Equal(config.NewDefaultConfig().LLM.Model))
		})

		It("reads values from config.toml", func() {
			content := "[llm]\nmodel = \"gemini-2.5-pro\"\n\n[pipeline]\napproval = \"defer\"\n"
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644)).To(Succeed())

			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg := config.FromViper(v)
			Expect(cfg.LLM.Model).To(Equal("gemini-2.5-pro"))
			Expect(cfg.Pipeline.Approval).To(Equal("defer"))
		})

		It("lets environment variables override file values", func() {
			content := "[llm]\nmodel = \"gemini-2.5-pro\"\n"
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644)).To(Succeed())

			GinkgoT().Setenv("GRIDSCOPE_LLM_MODEL", "gemini-2.5-flash")

			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.GetString("llm.model")).To(Equal("gemini-2.5-flash"))
		})

		It("rejects a malformed config file", func() {
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0o644)).To(Succeed())

			_, err := config.InitViper(dir)
			Expect(err).To(HaveOccurred())
		})
	})
})
