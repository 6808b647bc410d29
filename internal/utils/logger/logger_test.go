package logger

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/triswaplabs/triswap-backend/internal/types/environments"
)

var _ = Describe("Logger", func() {
	var logger *Logger

	Describe("#New", func() {
		It("should create a new logger for every known environment", func() {
			for _, env := range []environments.Environment{
				environments.Production,
				environments.Staging,
				environments.Development,
				environments.Test,
			} {
				logger = New(env)
				Expect(logger).NotTo(BeNil())
				Expect(logger.wrappedLogger).NotTo(BeNil())
			}
		})

		It("should fall back to production config when environment is unknown", func() {
			logger = New(environments.Environment("unknown"))
			Expect(logger).NotTo(BeNil())

			core := logger.wrappedLogger.Core()
			Expect(core.Enabled(zapcore.InfoLevel)).To(BeTrue())
			Expect(core.Enabled(zapcore.DebugLevel)).To(BeFalse())
		})
	})

	Describe("logging methods", func() {
		BeforeEach(func() {
			logger = New(environments.Test)
		})

		It("should log without panicking", func() {
			Expect(func() {
				logger.Debug("debug message", map[string]string{"key": "value"})
				logger.Info("info message", map[string]string{"key": "value"})
				logger.Warn("warn message", map[string]string{"key": "value"})
				logger.Error("error message", map[string]string{"key": "value"})
			}).NotTo(Panic())
		})
	})

	Describe("#transform", func() {
		It("should turn a string map into zap fields", func() {
			fields := transform([]map[string]string{{"key1": "value1"}})
			Expect(fields).To(HaveLen(1))
			Expect(fields[0]).To(Equal(zap.String("key1", "value1")))
		})

		It("should return an empty slice without input", func() {
			Expect(transform(nil)).To(BeEmpty())
		})
	})
})
