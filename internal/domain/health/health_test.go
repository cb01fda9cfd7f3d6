package health_test

import (
	"testing"

	"github.com/riskfuse/riskfuse/internal/domain/health"
	"github.com/riskfuse/riskfuse/internal/monitor"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluator_Evaluate(t *testing.T) {
	Convey("Given an evaluator with the default threshold", t, func() {
		evaluator := health.NewEvaluator()
		bothUp := monitor.CollaboratorStatus{Local: true, Remote: true}

		Convey("When the store is empty and both collaborators are up", func() {
			So(evaluator.Evaluate(monitor.MetricsSnapshot{}, bothUp), ShouldEqual, health.StatusHealthy)
		})

		Convey("When the error rate is exactly at the threshold", func() {
			snap := monitor.MetricsSnapshot{ErrorRate: 0.5}

			Convey("Then the service is still healthy", func() {
				So(evaluator.Evaluate(snap, bothUp), ShouldEqual, health.StatusHealthy)
			})
		})

		Convey("When the error rate exceeds the threshold", func() {
			snap := monitor.MetricsSnapshot{ErrorRate: 0.51}

			Convey("Then the service is degraded", func() {
				So(evaluator.Evaluate(snap, bothUp), ShouldEqual, health.StatusDegraded)
			})
		})

		Convey("When the local collaborator is down", func() {
			status := monitor.CollaboratorStatus{Local: false, Remote: true}

			Convey("Then the service is degraded regardless of error rate", func() {
				So(evaluator.Evaluate(monitor.MetricsSnapshot{}, status), ShouldEqual, health.StatusDegraded)
			})
		})

		Convey("When the remote collaborator is down", func() {
			status := monitor.CollaboratorStatus{Local: true, Remote: false}

			Convey("Then the service is degraded regardless of error rate", func() {
				So(evaluator.Evaluate(monitor.MetricsSnapshot{ErrorRate: 0.1}, status), ShouldEqual, health.StatusDegraded)
			})
		})
	})

	Convey("Given an evaluator with a custom threshold", t, func() {
		evaluator := health.NewEvaluator(health.WithErrorRateThreshold(0.2))
		bothUp := monitor.CollaboratorStatus{Local: true, Remote: true}

		Convey("Then the custom threshold applies", func() {
			So(evaluator.Threshold(), ShouldEqual, 0.2)
			So(evaluator.Evaluate(monitor.MetricsSnapshot{ErrorRate: 0.25}, bothUp), ShouldEqual, health.StatusDegraded)
			So(evaluator.Evaluate(monitor.MetricsSnapshot{ErrorRate: 0.2}, bothUp), ShouldEqual, health.StatusHealthy)
		})

		Convey("And an out-of-range threshold keeps the default", func() {
			fallback := health.NewEvaluator(health.WithErrorRateThreshold(1.5))
			So(fallback.Threshold(), ShouldEqual, 0.5)
		})
	})
}
