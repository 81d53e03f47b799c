package opt

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

func TestDefaultConfig(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()
	g.Expect(cfg.Algebraic).To(BeTrue())
	g.Expect(cfg.Cancellation).To(BeTrue())
	g.Expect(cfg.DeadCode).To(BeTrue())
}

func TestLoadConfig(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "opt.toml")
	content := "algebraic = false\ncancellation = true\n"
	g.Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

	cfg, err := LoadConfig(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Algebraic).To(BeFalse())
	g.Expect(cfg.Cancellation).To(BeTrue())
	// keys absent from the file keep their defaults
	g.Expect(cfg.DeadCode).To(BeTrue())
}

func TestLoadConfigMissingFile(t *testing.T) {
	g := NewWithT(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	g.Expect(err).To(HaveOccurred())
}

func TestLoadConfigMalformed(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "opt.toml")
	g.Expect(os.WriteFile(path, []byte("algebraic = {"), 0644)).To(Succeed())

	_, err := LoadConfig(path)
	g.Expect(err).To(HaveOccurred())
}
