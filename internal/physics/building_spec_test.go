package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/physics"
)

var _ = Describe("ShearBuilding", func() {
	var (
		params   physics.Params
		building *physics.ShearBuilding
	)

	BeforeEach(func() {
		params = physics.ReferenceParams()
		var err error
		building, err = physics.NewShearBuilding(params)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Derive", func() {
		DescribeTable("returns velocities as displacement rates",
			func(y dynamo.State, t float64) {
				dx := building.Derive(t, y)
				Expect(dx[dynamo.X1]).To(Equal(y[dynamo.V1]))
				Expect(dx[dynamo.X2]).To(Equal(y[dynamo.V2]))
			},
			Entry("at rest", dynamo.State{}, 0.0),
			Entry("moving floors", dynamo.State{0.01, -0.02, 0.5, -0.25}, 1.5),
			Entry("large velocities", dynamo.State{0, 0, 1e4, -1e4}, 100.0),
		)

		It("agrees with the package-level Derivative", func() {
			y := dynamo.State{0.001, 0.002, -0.03, 0.04}
			dx, err := physics.Derivative(0.7, y, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(dx).To(Equal(building.Derive(0.7, y)))
		})

		It("reports zero mass instead of dividing by it", func() {
			params.M1 = 0
			_, err := physics.Derivative(0, dynamo.State{0.01, 0, 0, 0}, params)
			Expect(err).To(MatchError(dynamo.ErrNonPositiveMass))

			_, err = physics.TotalEnergy(dynamo.State{}, params)
			Expect(err).To(MatchError(dynamo.ErrPrecondition))
		})

		It("is symmetric in the inter-story spring", func() {
			dx := building.Derive(0, dynamo.State{0, 0.001, 0, 0})
			Expect(params.M1 * dx[dynamo.V1]).To(BeNumerically("~", -params.M2*dx[dynamo.V2], 1e-9))
		})
	})

	Describe("Step", func() {
		It("keeps the zero state fixed without excitation", func() {
			params.F0 = 0
			y, err := physics.Step(3.0, dynamo.State{}, 0.05, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(Equal(dynamo.State{}))
		})

		It("starts moving floor 1 before floor 2 under excitation", func() {
			y, err := physics.Step(0, dynamo.State{}, 0.001, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.Abs(y[dynamo.V1])).To(BeNumerically(">", math.Abs(y[dynamo.V2])))
			Expect(y[dynamo.V1]).To(BeNumerically(">", 0))
		})

		It("rejects a non-positive step with a precondition error", func() {
			_, err := physics.Step(0, dynamo.State{}, 0, params)
			Expect(err).To(MatchError(dynamo.ErrPrecondition))
			Expect(err).To(MatchError(dynamo.ErrNonPositiveStep))
		})

		It("rejects zero mass", func() {
			params.M1 = 0
			_, err := physics.Step(0, dynamo.State{}, 0.001, params)
			Expect(err).To(MatchError(dynamo.ErrNonPositiveMass))
		})
	})

	Describe("Energy", func() {
		It("splits into kinetic and potential parts", func() {
			y := dynamo.State{0.002, 0.003, 0.1, 0.2}
			Expect(building.Energy(y)).To(BeNumerically("~", building.KineticEnergy(y)+building.PotentialEnergy(y), 1e-12))
			Expect(building.KineticEnergy(dynamo.State{0.1, 0.2, 0, 0})).To(BeZero())
			Expect(building.PotentialEnergy(dynamo.State{0, 0, 1, 1})).To(BeZero())
		})

		It("stores nothing in story 2 when both floors move together", func() {
			y := dynamo.State{0.001, 0.001, 0, 0}
			Expect(building.PotentialEnergy(y)).To(BeNumerically("~", 0.5*params.K1*1e-6, 1e-12))
		})
	})
})
