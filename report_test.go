package fsusage_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudfoundry/fsusage"
)

var _ = Describe("Reporter", func() {
	var (
		source *fakeSource
		stdout *bytes.Buffer
		stderr *bytes.Buffer
		cfg    fsusage.DisplayConfig
	)

	BeforeEach(func() {
		source = newFakeSource(procFS, rootFS, emptyFS, homeFS)
		source.usage[emptyFS.DirName] = fsusage.FileSystemUsage{BlockSize: 4096, Files: 10, FreeFiles: 10}
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		cfg = fsusage.DisplayConfig{Mode: fsusage.ModeQuiet}
	})

	run := func(args ...string) error {
		return fsusage.NewReporter(source, cfg, stdout, stderr).Run(args)
	}

	It("reports every real filesystem without selectors", func() {
		Expect(run()).To(Succeed())

		Expect(stdout.String()).To(Equal(
			"/dev/sda1 mounted at /, " + rootBlockLine + "\n" +
				"/dev/sdb1 mounted at /home, " + homeBlockLine + "\n"))
		Expect(stderr.String()).To(BeEmpty())
	})

	It("only reports absolute device and mount point paths", func() {
		Expect(run()).To(Succeed())

		for _, line := range strings.Split(strings.TrimSpace(stdout.String()), "\n") {
			Expect(line).To(HavePrefix("/"))
			Expect(strings.SplitN(line, " mounted at ", 2)[1]).To(HavePrefix("/"))
		}
		Expect(source.queried).NotTo(ContainElement("/proc"))
	})

	It("includes pseudo filesystems when asked", func() {
		source.usage[procFS.DirName] = rootUsage
		cfg.PseudoFS = true

		Expect(run()).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring("proc mounted at /proc, "))
	})

	It("never matches a pseudo filesystem that was filtered out", func() {
		err := run("proc")

		var notFound *fsusage.SelectorNotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(notFound.Selectors).To(Equal([]string{"proc"}))
	})

	It("reports selectors that matched nothing after the output", func() {
		err := run("/", "/nonexistent")

		var notFound *fsusage.SelectorNotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(notFound.Selectors).To(Equal([]string{"/nonexistent"}))
		Expect(stdout.String()).To(Equal("/dev/sda1 mounted at /, " + rootBlockLine + "\n"))
		Expect(stderr.String()).To(Equal("Filesystem /nonexistent not found\n"))
	})

	It("selects by device", func() {
		Expect(run("/dev/sdb1")).To(Succeed())
		Expect(stdout.String()).To(Equal("/dev/sdb1 mounted at /home, " + homeBlockLine + "\n"))
	})

	It("counts a zero-block mount as found without displaying it", func() {
		Expect(run("/snap/empty")).To(Succeed())

		Expect(stdout.String()).To(BeEmpty())
		Expect(stderr.String()).To(BeEmpty())
		Expect(source.queried).To(Equal([]string{"/snap/empty"}))
	})

	It("never renders a zero-block mount in any mode", func() {
		for _, mode := range []fsusage.OutputMode{fsusage.ModeVerbose, fsusage.ModeQuiet, fsusage.ModeJSON} {
			stdout.Reset()
			cfg.Mode = mode
			Expect(run()).To(Succeed())
			Expect(stdout.String()).NotTo(ContainSubstring("/snap/empty"), mode.String())
		}
	})

	It("writes a JSON array", func() {
		cfg.Mode = fsusage.ModeJSON

		Expect(run("/home")).To(Succeed())
		Expect(stdout.String()).To(Equal(`[{"mnt":{"dir":"/home","fsname":"/dev/sdb1","type":"xfs","opts":"rw","freq":1,"passno":2},` +
			`"vfs":{"file":null,"block":{"total":1024,"free":1024,"avail":1024,"used":1024}}}]` + "\n"))
	})

	It("writes an empty JSON array when every selector misses", func() {
		cfg.Mode = fsusage.ModeJSON

		Expect(run("/missing")).NotTo(Succeed())
		Expect(stdout.String()).To(Equal("[]\n"))
	})

	Describe("failures", func() {
		It("aborts without output when the mount table cannot be read", func() {
			source.listErr = errors.New("no such file or directory")

			err := run()

			var tableErr *fsusage.MountTableError
			Expect(errors.As(err, &tableErr)).To(BeTrue())
			Expect(stdout.String()).To(BeEmpty())
		})

		It("aborts without output when statfs fails", func() {
			source.usageErr[homeFS.DirName] = syscall.EACCES

			err := run()

			var statsErr *fsusage.StatsQueryError
			Expect(errors.As(err, &statsErr)).To(BeTrue())
			Expect(statsErr.Path).To(Equal("/home"))
			Expect(errors.Is(err, syscall.EACCES)).To(BeTrue())
			Expect(stdout.String()).To(BeEmpty())
			Expect(stderr.String()).To(BeEmpty())
		})

		It("does not query mounts that were not selected", func() {
			source.usageErr[homeFS.DirName] = syscall.EACCES

			Expect(run("/")).To(Succeed())
			Expect(source.queried).To(Equal([]string{"/"}))
		})
	})

	Describe("textfile", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "fsusageTextfile")
			Expect(err).ToNot(HaveOccurred())
		})

		AfterEach(func() {
			Expect(os.RemoveAll(dir)).To(Succeed())
		})

		It("writes metrics for the reported mounts", func() {
			path := filepath.Join(dir, "fsusage.prom")
			reporter := fsusage.NewReporter(source, cfg, stdout, stderr)
			reporter.Textfile = path

			Expect(reporter.Run(nil)).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`fsusage_size_bytes{device="/dev/sda1",fstype="ext4",mountpoint="/"} 4.096e+06`))
			Expect(string(data)).To(ContainSubstring(`fsusage_files{device="/dev/sda1",fstype="ext4",mountpoint="/"} 100`))
			Expect(string(data)).NotTo(ContainSubstring("/snap/empty"))
		})

		It("still reports missing selectors when the textfile cannot be written", func() {
			reporter := fsusage.NewReporter(source, cfg, stdout, stderr)
			reporter.Textfile = filepath.Join(dir, "missing", "fsusage.prom")

			err := reporter.Run([]string{"/", "/nowhere"})

			Expect(err).To(MatchError(ContainSubstring("write textfile")))
			Expect(stdout.String()).To(Equal("/dev/sda1 mounted at /, " + rootBlockLine + "\n"))
			Expect(stderr.String()).To(Equal("Filesystem /nowhere not found\n"))
		})
	})
})
