package plot_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gridscope/gridscope/pkg/plot"
)

func validPayload() json.RawMessage {
	return json.RawMessage(`{
		"chartKind": "line",
		"title": "Italy PV installations",
		"axis": {"x": "Year", "y": "GW installed"},
		"series": [{"label": "Italy", "x": ["2021", "2022", "2023"], "y": [0.9, 2.5, 5.2]}],
		"success": true
	}`)
}

var _ = Describe("Decode", func() {
	It("accepts a complete line chart spec", func() {
		spec, err := plot.Decode(validPayload())
		Expect(err).NotTo(HaveOccurred())
		Expect(spec.ChartKind).To(Equal(plot.KindLine))
		Expect(spec.Title).To(Equal("Italy PV installations"))
		Expect(spec.Series).To(HaveLen(1))
		Expect(*spec.Success).To(BeTrue())
	})

	It("accepts stacked bar specs with stacks instead of series", func() {
		payload := json.RawMessage(`{
			"chartKind": "stackedBar",
			"title": "Generation mix",
			"axis": {"x": "Year", "y": "TWh"},
			"stacks": [{"label": "solar", "values": [10, 14]}, {"label": "wind", "values": [20, 21]}],
			"success": true
		}`)

		spec, err := plot.Decode(payload)
		Expect(err).NotTo(HaveOccurred())
		Expect(spec.Stacks).To(HaveLen(2))
	})

	It("rejects a payload that is not JSON", func() {
		_, err := plot.Decode(json.RawMessage(`here is your chart!`))
		Expect(err).To(HaveOccurred())
	})

	It("rejects a missing chart kind", func() {
		payload := json.RawMessage(`{
			"title": "Italy PV installations",
			"axis": {"x": "Year", "y": "GW"},
			"series": [{"label": "Italy", "x": ["2023"], "y": [5.2]}],
			"success": true
		}`)

		_, err := plot.Decode(payload)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unknown chart kind", func() {
		payload := json.RawMessage(`{
			"chartKind": "pie",
			"title": "Mix",
			"axis": {"x": "a", "y": "b"},
			"series": [{"label": "s", "x": ["1"], "y": [1]}],
			"success": true
		}`)

		_, err := plot.Decode(payload)
		Expect(err).To(HaveOccurred())
	})

	It("rejects missing axis labels", func() {
		payload := json.RawMessage(`{
			"chartKind": "bar",
			"title": "Mix",
			"axis": {"x": "Year"},
			"series": [{"label": "s", "x": ["1"], "y": [1]}],
			"success": true
		}`)

		_, err := plot.Decode(payload)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a spec with neither series nor stacks", func() {
		payload := json.RawMessage(`{
			"chartKind": "line",
			"title": "Empty",
			"axis": {"x": "a", "y": "b"},
			"success": true
		}`)

		_, err := plot.Decode(payload)
		Expect(err).To(MatchError(ContainSubstring("no series or stack entries")))
	})

	It("rejects a missing success flag", func() {
		payload := json.RawMessage(`{
			"chartKind": "line",
			"title": "Italy PV",
			"axis": {"x": "Year", "y": "GW"},
			"series": [{"label": "Italy", "x": ["2023"], "y": [5.2]}]
		}`)

		_, err := plot.Decode(payload)
		Expect(err).To(HaveOccurred())
	})

	It("accepts an explicit false success flag", func() {
		payload := json.RawMessage(`{
			"chartKind": "line",
			"title": "Italy PV",
			"axis": {"x": "Year", "y": "GW"},
			"series": [{"label": "Italy", "x": ["2023"], "y": [5.2]}],
			"success": false
		}`)

		spec, err := plot.Decode(payload)
		Expect(err).NotTo(HaveOccurred())
		Expect(*spec.Success).To(BeFalse())
	})
})
