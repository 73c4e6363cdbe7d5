package dashboard_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/host-health/internal/dashboard"
	"github.com/angeloszaimis/host-health/internal/health"
	"github.com/angeloszaimis/host-health/internal/registry"
)

func payload(raw string) health.Value {
	v, err := health.PayloadValue([]byte(raw))
	if err != nil {
		panic(err)
	}
	return v
}

var _ = Describe("Table", func() {
	var (
		table *dashboard.Table
		store *registry.Store
	)

	BeforeEach(func() {
		table = dashboard.NewTable()
		store = registry.New("http://a", "http://b", "http://c")
	})

	Describe("Render", func() {
		It("should render the mixed-state scenario literally", func() {
			store.Set("http://b", health.StateValue(health.Error))
			store.Set("http://c", payload(`{"status":"ok"}`))

			table.Render(store.Snapshot())

			Expect(table.Rows()).To(Equal([]dashboard.Row{
				{ID: "http://a", Host: "http://a", Health: "UNKNOWN", Indicator: dashboard.Down},
				{ID: "http://b", Host: "http://b", Health: "UNKNOWN", Indicator: dashboard.Up},
				{ID: "http://c", Host: "http://c", Health: `{"status":"ok"}`, Indicator: dashboard.Up},
			}))
		})

		DescribeTable("cell rules",
			func(v health.Value, text string, ind dashboard.Indicator) {
				store.Set("http://a", v)
				table.Render(store.Snapshot())

				row, ok := table.Row("http://a")
				Expect(ok).To(BeTrue())
				Expect(row.Health).To(Equal(text))
				Expect(row.Indicator).To(Equal(ind))
			},
			Entry("WAITING", health.StateValue(health.Waiting), "UNKNOWN", dashboard.Down),
			Entry("TIMEOUT", health.StateValue(health.Timeout), "UNKNOWN", dashboard.Down),
			Entry("UNKNOWN", health.StateValue(health.Unknown), "UNKNOWN", dashboard.Down),
			Entry("ERROR", health.StateValue(health.Error), "UNKNOWN", dashboard.Up),
			Entry("object payload", payload(`{"ok":true}`), `{"ok":true}`, dashboard.Up),
			Entry("string payload naming a state", payload(`"TIMEOUT"`), "UNKNOWN", dashboard.Down),
			Entry("string payload naming ERROR", payload(`"ERROR"`), "UNKNOWN", dashboard.Up),
			Entry("other string payload", payload(`"fine"`), `"fine"`, dashboard.Up),
			Entry("number payload", payload(`42`), "42", dashboard.Up),
		)

		It("should be idempotent on an unchanged registry", func() {
			table.Render(store.Snapshot())
			first := table.Rows()

			table.Render(store.Snapshot())

			Expect(table.Rows()).To(Equal(first))
			Expect(table.Created()).To(Equal(3))
		})

		It("should update existing rows in place", func() {
			table.Render(store.Snapshot())
			store.Set("http://b", payload(`{"up":1}`))

			table.Render(store.Snapshot())

			Expect(table.Rows()).To(HaveLen(3))
			Expect(table.Created()).To(Equal(3))
			row, _ := table.Row("http://b")
			Expect(row.Health).To(Equal(`{"up":1}`))
		})

		It("should keep row count equal to the host count", func() {
			for i := 0; i < 5; i++ {
				table.Render(store.Snapshot())
			}
			Expect(table.Rows()).To(HaveLen(store.Len()))
		})

		It("should move re-rendered rows behind rows that were not rendered", func() {
			table.Render(store.Snapshot())
			table.Render([]registry.Entry{{Host: "http://a", Value: health.StateValue(health.Error)}})

			rows := table.Rows()
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].ID).To(Equal("http://b"))
			Expect(rows[1].ID).To(Equal("http://c"))
			Expect(rows[2].ID).To(Equal("http://a"))
		})

		It("should not duplicate a host listed twice", func() {
			e := registry.Entry{Host: "http://a", Value: health.StateValue(health.Waiting)}
			table.Render([]registry.Entry{e, e})

			Expect(table.Rows()).To(HaveLen(1))
		})
	})

	Describe("Row", func() {
		It("should report missing rows", func() {
			_, ok := table.Row("http://a")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Indicator", func() {
		It("should map to the marker classes", func() {
			Expect(dashboard.Up.Class()).To(Equal("network-status green"))
			Expect(dashboard.Down.Class()).To(Equal("network-status red"))
		})
	})

	Describe("HTML", func() {
		BeforeEach(func() {
			store.Set("http://c", payload(`{"status":"<ok>"}`))
			table.Render(store.Snapshot())
		})

		It("should write the page with the table element", func() {
			var buf bytes.Buffer
			Expect(table.WritePage(&buf)).To(Succeed())

			html := buf.String()
			Expect(html).To(ContainSubstring(`<table id="host-health-table">`))
			Expect(html).To(ContainSubstring(`<tr id="http://a">`))
			Expect(html).To(ContainSubstring(`<button class="network-status red"`))
			Expect(html).To(ContainSubstring(`id="check-hosts"`))
		})

		It("should write only the body fragment", func() {
			var buf bytes.Buffer
			Expect(table.WriteBody(&buf)).To(Succeed())

			html := buf.String()
			Expect(html).To(HavePrefix("<tbody>"))
			Expect(html).To(HaveSuffix("</tbody>"))
			Expect(html).NotTo(ContainSubstring("<html"))
			Expect(bytes.Count(buf.Bytes(), []byte("<tr "))).To(Equal(3))
		})

		It("should escape payload text", func() {
			var buf bytes.Buffer
			Expect(table.WriteBody(&buf)).To(Succeed())

			Expect(buf.String()).NotTo(ContainSubstring("<ok>"))
			Expect(buf.String()).To(ContainSubstring("&lt;ok&gt;"))
		})
	})
})
