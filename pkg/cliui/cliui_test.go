package cliui_test

import (
	"bytes"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gridscope/gridscope/pkg/cliui"
)

var _ = Describe("FormatDuration", func() {
	It("formats sub-second durations in milliseconds", func() {
		Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
	})

	It("formats longer durations in seconds", func() {
		Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
	})
})

var _ = Describe("Mark", func() {
	It("marks success for nil errors", func() {
		Expect(cliui.Mark(nil)).To(Equal(cliui.SuccessMark))
	})

	It("marks failure for errors", func() {
		Expect(cliui.Mark(errors.New("boom"))).To(Equal(cliui.FailMark))
	})
})

var _ = Describe("PromptYesNo", func() {
	It("accepts y", func() {
		var out bytes.Buffer
		Expect(cliui.PromptYesNo(strings.NewReader("y\n"), &out, "Escalate?")).To(BeTrue())
		Expect(out.String()).To(ContainSubstring("Escalate?"))
	})

	It("accepts yes in any case", func() {
		var out bytes.Buffer
		Expect(cliui.PromptYesNo(strings.NewReader("YES\n"), &out, "Escalate?")).To(BeTrue())
	})

	It("defaults to no on empty input", func() {
		var out bytes.Buffer
		Expect(cliui.PromptYesNo(strings.NewReader("\n"), &out, "Escalate?")).To(BeFalse())
	})

	It("defaults to no on anything else", func() {
		var out bytes.Buffer
		Expect(cliui.PromptYesNo(strings.NewReader("maybe\n"), &out, "Escalate?")).To(BeFalse())
	})
})

var _ = Describe("Step", func() {
	It("returns the function's error and prints the message", func() {
		var out bytes.Buffer
		err := cliui.Step(&out, "classifying", func() error { return errors.New("boom") })

		Expect(err).To(MatchError("boom"))
		Expect(out.String()).To(ContainSubstring("classifying"))
	})
})
