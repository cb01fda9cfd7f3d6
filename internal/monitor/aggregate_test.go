package monitor_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/riskfuse/riskfuse/internal/domain/model"
	"github.com/riskfuse/riskfuse/internal/monitor"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSummarize(t *testing.T) {
	Convey("Given an empty snapshot", t, func() {
		out := monitor.Summarize(monitor.Snapshot{})

		Convey("Then every rate is zero, not NaN and not an error", func() {
			So(out.PredictionCount, ShouldEqual, 0)
			So(out.ErrorCount, ShouldEqual, 0)
			So(out.AgreementRate, ShouldEqual, 0)
			So(out.ErrorRate, ShouldEqual, 0)
			So(out.MeanLatency, ShouldEqual, 0)
			So(out.P95Latency, ShouldEqual, 0)
			So(out.ErrorsByCategory, ShouldBeEmpty)
		})
	})

	Convey("Given a single agreeing prediction", t, func() {
		ctx := context.Background()
		store := monitor.New()
		store.RecordPrediction(ctx, prediction("a", model.LabelBad, model.LabelBad, 0.42))

		out := monitor.Summarize(store.Snapshot(ctx))

		Convey("Then the summary matches exactly", func() {
			So(out.PredictionCount, ShouldEqual, 1)
			So(out.AgreementRate, ShouldEqual, 1.0)
			So(out.MeanLatency, ShouldEqual, 0.42)
			So(out.P95Latency, ShouldEqual, 0.42)
			So(out.ErrorRate, ShouldEqual, 0)
		})
	})

	Convey("Given a mix of agreeing and disagreeing predictions", t, func() {
		ctx := context.Background()
		store := monitor.New()
		store.RecordPrediction(ctx, prediction("a", model.LabelBad, model.LabelBad, 0.1))
		store.RecordPrediction(ctx, prediction("b", model.LabelGood, model.LabelGood, 0.2))
		store.RecordPrediction(ctx, prediction("c", model.LabelGood, model.LabelBad, 0.3))
		store.RecordPrediction(ctx, prediction("d", model.LabelBad, model.LabelGood, 0.4))

		out := monitor.Summarize(store.Snapshot(ctx))

		Convey("Then the agreement rate is the agreeing fraction", func() {
			So(out.PredictionCount, ShouldEqual, 4)
			So(out.AgreementRate, ShouldEqual, 0.5)
		})

		Convey("And the mean latency covers all predictions", func() {
			So(out.MeanLatency, ShouldAlmostEqual, 0.25, 1e-9)
		})
	})

	Convey("Given predictions and errors together", t, func() {
		ctx := context.Background()
		store := monitor.New()
		store.RecordPrediction(ctx, prediction("a", model.LabelBad, model.LabelBad, 0.1))
		store.RecordError(ctx, model.ErrorEvent{ID: "e1", Category: model.ErrorPrediction, Message: "boom"})
		store.RecordError(ctx, model.ErrorEvent{ID: "e2", Category: model.ErrorTimeout, Message: "slow"})
		store.RecordError(ctx, model.ErrorEvent{ID: "e3", Category: model.ErrorTimeout, Message: "slower"})

		out := monitor.Summarize(store.Snapshot(ctx))

		Convey("Then the error rate spans both kinds of attempts", func() {
			So(out.ErrorCount, ShouldEqual, 3)
			So(out.ErrorRate, ShouldEqual, 0.75)
		})

		Convey("And errors are partitioned by category", func() {
			So(out.ErrorsByCategory[model.ErrorPrediction], ShouldEqual, 1)
			So(out.ErrorsByCategory[model.ErrorTimeout], ShouldEqual, 2)
		})

		Convey("And errors are excluded from latency statistics", func() {
			So(out.MeanLatency, ShouldEqual, 0.1)
			So(out.P95Latency, ShouldEqual, 0.1)
		})
	})

	Convey("Given a hundred predictions with increasing latency", t, func() {
		ctx := context.Background()
		store := monitor.New()
		for i := 1; i <= 100; i++ {
			store.RecordPrediction(ctx, prediction(
				fmt.Sprintf("p%d", i), model.LabelGood, model.LabelGood, float64(i)/100))
		}

		out := monitor.Summarize(store.Snapshot(ctx))

		Convey("Then the 95th percentile is the nearest-rank value", func() {
			So(out.P95Latency, ShouldAlmostEqual, 0.95, 1e-9)
		})

		Convey("And summarize is reproducible for the same snapshot", func() {
			snap := store.Snapshot(ctx)
			So(monitor.Summarize(snap), ShouldResemble, monitor.Summarize(snap))
		})
	})
}
