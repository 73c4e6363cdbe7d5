package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/host-health/pkg/logger"
)

var _ = Describe("Logger", func() {
	ctx := context.Background()

	DescribeTable("levels",
		func(level string, enabled, disabled slog.Level) {
			log := logger.New(level, false, "dev")
			Expect(log.Enabled(ctx, enabled)).To(BeTrue())
			Expect(log.Enabled(ctx, disabled)).To(BeFalse())
		},
		Entry("info", "info", slog.LevelInfo, slog.LevelDebug),
		Entry("debug", "debug", slog.LevelDebug, slog.LevelDebug-1),
		Entry("warn", "warn", slog.LevelWarn, slog.LevelInfo),
		Entry("error", "error", slog.LevelError, slog.LevelWarn),
		Entry("upper case", "WARN", slog.LevelWarn, slog.LevelInfo),
		Entry("invalid defaults to info", "invalid", slog.LevelInfo, slog.LevelDebug),
	)

	Describe("NewWithWriter", func() {
		var buf *bytes.Buffer

		BeforeEach(func() {
			buf = &bytes.Buffer{}
		})

		It("should write JSON in prod", func() {
			log := logger.NewWithWriter(buf, "info", false, "prod")
			log.Info("probe done", slog.String("host", "http://192.168.68.107"))

			var record map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
			Expect(record["msg"]).To(Equal("probe done"))
			Expect(record["environment"]).To(Equal("prod"))
			Expect(record["service"]).To(Equal("host-health"))
			Expect(record["host"]).To(Equal("http://192.168.68.107"))
		})

		It("should write text outside prod", func() {
			log := logger.NewWithWriter(buf, "info", false, "dev")
			log.Info("probe done")

			Expect(buf.String()).To(ContainSubstring(`msg="probe done"`))
			Expect(buf.String()).To(ContainSubstring("environment=dev"))
			Expect(buf.String()).To(ContainSubstring("service=host-health"))
		})

		It("should include the source when asked", func() {
			log := logger.NewWithWriter(buf, "info", true, "dev")
			log.Info("with source")

			Expect(buf.String()).To(ContainSubstring("source="))
		})

		It("should drop records below the level", func() {
			log := logger.NewWithWriter(buf, "error", false, "dev")
			log.Warn("ignored")

			Expect(buf.Len()).To(BeZero())
		})
	})
})
