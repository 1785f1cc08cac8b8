package fsusage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudfoundry/fsusage"
)

var _ = Describe("Selectors", func() {
	It("includes everything when empty", func() {
		selectors := fsusage.NewSelectors(nil)
		Expect(selectors.ShouldInclude(rootFS)).To(BeTrue())
		Expect(selectors.ShouldInclude(procFS)).To(BeTrue())
		Expect(selectors.Unmatched()).To(BeEmpty())
	})

	It("matches by mount point or device", func() {
		selectors := fsusage.NewSelectors([]string{"/", "/dev/sdb1"})

		Expect(selectors.ShouldInclude(rootFS)).To(BeTrue())
		Expect(selectors.ShouldInclude(homeFS)).To(BeTrue())
		Expect(selectors.ShouldInclude(emptyFS)).To(BeFalse())
		Expect(selectors.Unmatched()).To(BeEmpty())
	})

	It("uses exact string equality", func() {
		selectors := fsusage.NewSelectors([]string{"/home/", "/dev/sd*"})

		Expect(selectors.ShouldInclude(homeFS)).To(BeFalse())
		Expect(selectors.Unmatched()).To(Equal([]string{"/home/", "/dev/sd*"}))
	})

	It("marks every selector an entry satisfies", func() {
		selectors := fsusage.NewSelectors([]string{"/dev/sda1", "/", "/home"})

		Expect(selectors.ShouldInclude(rootFS)).To(BeTrue())
		Expect(selectors[0].Matched).To(BeTrue())
		Expect(selectors[1].Matched).To(BeTrue())
		Expect(selectors[2].Matched).To(BeFalse())
	})

	It("keeps including entries for an already matched selector", func() {
		bind := rootFS
		bind.DirName = "/var/lib/bind"
		selectors := fsusage.NewSelectors([]string{"/dev/sda1"})

		Expect(selectors.ShouldInclude(rootFS)).To(BeTrue())
		Expect(selectors.ShouldInclude(bind)).To(BeTrue())
		Expect(selectors).To(HaveLen(1))
		Expect(selectors[0].Matched).To(BeTrue())
	})

	It("reports unmatched selectors in caller order", func() {
		selectors := fsusage.NewSelectors([]string{"/z", "/", "/a"})
		selectors.ShouldInclude(rootFS)

		Expect(selectors.Unmatched()).To(Equal([]string{"/z", "/a"}))
	})
})
