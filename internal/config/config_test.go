package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pidlab/internal/config"
)

var _ = Describe("Config", func() {
	Describe("DefaultConfig", func() {
		It("is valid", func() {
			Expect(config.DefaultConfig().Validate()).To(Succeed())
		})

		It("carries output saturation limits", func() {
			cfg := config.DefaultConfig()
			Expect(cfg.Limited()).To(BeTrue())
			Expect(cfg.OutputMax).To(Equal(400.0))
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = config.DefaultConfig()
		})

		It("rejects non-positive dt", func() {
			cfg.Dt = 0
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("dt must be positive")))
		})

		It("rejects negative noise_std_dev", func() {
			cfg.NoiseStdDev = -0.5
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("noise_std_dev")))
		})

		It("rejects an unknown process_model", func() {
			cfg.ProcessModel = "third_order"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("unknown process_model")))
		})

		It("rejects a first_order config missing time_constant", func() {
			cfg.TimeConstant = 0
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("time_constant")))
		})

		It("rejects a second_order config missing natural_frequency", func() {
			cfg.ProcessModel = config.ModelSecondOrder
			cfg.NaturalFrequency = 0
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("natural_frequency")))
		})

		It("rejects negative damping_ratio", func() {
			cfg.ProcessModel = config.ModelSecondOrder
			cfg.NaturalFrequency = 1
			cfg.DampingRatio = -0.1
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("damping_ratio")))
		})

		It("accepts zero damping_ratio", func() {
			cfg.ProcessModel = config.ModelSecondOrder
			cfg.NaturalFrequency = 1
			cfg.DampingRatio = 0
			Expect(cfg.Validate()).To(Succeed())
		})

		It("rejects inverted output limits", func() {
			cfg.OutputMin = 10
			cfg.OutputMax = 5
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("output_min")))
		})
	})

	Describe("Save and Load", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "pidlab-config")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
		})

		It("round-trips a first_order config exactly", func() {
			path := filepath.Join(dir, "first.yaml")
			cfg := &config.Config{
				Kp: 0.1, Ki: 0.005, Kd: 0.02, Setpoint: 200,
				ProcessModel: config.ModelFirstOrder, TimeConstant: 1.0,
				Disturbance: 0.5, NoiseStdDev: 0.25, Dt: 0.01,
				OutputMin: 0, OutputMax: 400, Duration: 10, Seed: 42,
			}

			Expect(config.Save(path, cfg)).To(Succeed())
			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("round-trips a second_order config exactly", func() {
			path := filepath.Join(dir, "second.yaml")
			cfg := &config.Config{
				Kp: 1.5, Ki: 0.2, Kd: 0.1, Setpoint: 10,
				ProcessModel: config.ModelSecondOrder,
				NaturalFrequency: 2.0, DampingRatio: 0.7,
				Dt: 0.005, Duration: 20, Seed: 7,
			}

			Expect(config.Save(path, cfg)).To(Succeed())
			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("refuses to load an invalid config", func() {
			path := filepath.Join(dir, "bad.yaml")
			Expect(os.WriteFile(path, []byte("process_model: third_order\ndt: 0.01\n"), 0644)).To(Succeed())

			_, err := config.Load(path)
			Expect(err).To(MatchError(ContainSubstring("unknown process_model")))
		})
	})

	Describe("Presets", func() {
		It("every preset validates", func() {
			for model, presets := range config.Presets {
				for name, cfg := range presets {
					Expect(cfg.Validate()).To(Succeed(), "%s/%s", model, name)
				}
			}
		})

		It("returns nil for unknown names", func() {
			Expect(config.GetPreset(config.ModelFirstOrder, "nope")).To(BeNil())
			Expect(config.GetPreset("third_order", "pressure")).To(BeNil())
			Expect(config.ListPresets("third_order")).To(BeNil())
		})
	})
})
