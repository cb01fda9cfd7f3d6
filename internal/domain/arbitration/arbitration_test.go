package arbitration_test

import (
	"testing"

	"github.com/riskfuse/riskfuse/internal/domain/arbitration"
	"github.com/riskfuse/riskfuse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecide(t *testing.T) {
	Convey("Given the arbitration decision table", t, func() {
		Convey("When both classifiers predict bad", func() {
			Convey("Then the recommendation is reject", func() {
				So(arbitration.Decide(model.LabelBad, model.LabelBad), ShouldEqual, model.RecommendReject)
			})
		})

		Convey("When both classifiers predict good", func() {
			Convey("Then the recommendation is approve", func() {
				So(arbitration.Decide(model.LabelGood, model.LabelGood), ShouldEqual, model.RecommendApprove)
			})
		})

		Convey("When the classifiers disagree", func() {
			Convey("Then the recommendation is manual review either way", func() {
				So(arbitration.Decide(model.LabelBad, model.LabelGood), ShouldEqual, model.RecommendManualReview)
				So(arbitration.Decide(model.LabelGood, model.LabelBad), ShouldEqual, model.RecommendManualReview)
			})
		})

		Convey("When a label is not one of the two expected values", func() {
			Convey("Then the recommendation is manual review, never a failure", func() {
				So(arbitration.Decide(model.Label("maybe"), model.LabelGood), ShouldEqual, model.RecommendManualReview)
				So(arbitration.Decide(model.LabelBad, model.Label("")), ShouldEqual, model.RecommendManualReview)
				So(arbitration.Decide(model.Label(""), model.Label("")), ShouldEqual, model.RecommendManualReview)
			})
		})
	})
}
