package local_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskfuse/riskfuse/internal/classifier/local"
	"github.com/riskfuse/riskfuse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const testModel = `{
  "bias": -4.0,
  "weights": {
    "age": 0.0,
    "credit_amount": 0.001,
    "duration": 0.05,
    "job": 0.0,
    "sex": 0.0,
    "housing": 0.0,
    "saving_accounts": -0.5,
    "checking_account": 0.0,
    "purpose": 0.0
  },
  "encoders": {
    "sex": {"female": 1, "male": 2},
    "housing": {"free": 1, "rent": 2, "own": 3},
    "saving_accounts": {"little": 1, "rich": 4},
    "checking_account": {"little": 1},
    "purpose": {"car": 2}
  }
}`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a valid model file", t, func() {
		path := writeModel(t, testModel)

		Convey("Then it loads successfully", func() {
			m, err := local.Load(path)
			So(err, ShouldBeNil)
			So(m, ShouldNotBeNil)
		})
	})

	Convey("Given a missing model file", t, func() {
		_, err := local.Load(filepath.Join(t.TempDir(), "nope.json"))

		Convey("Then the load error wraps the model load kind", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, local.ErrModelLoad), ShouldBeTrue)
		})
	})

	Convey("Given a malformed model file", t, func() {
		_, err := local.Load(writeModel(t, "{not json"))

		Convey("Then loading fails with the model load kind", func() {
			So(errors.Is(err, local.ErrModelLoad), ShouldBeTrue)
		})
	})

	Convey("Given a model file without weights", t, func() {
		_, err := local.Load(writeModel(t, `{"bias": 1.0, "weights": {}, "encoders": {}}`))

		Convey("Then loading fails", func() {
			So(errors.Is(err, local.ErrModelLoad), ShouldBeTrue)
		})
	})
}

func TestModel_Predict(t *testing.T) {
	Convey("Given a loaded model", t, func() {
		m, err := local.Load(writeModel(t, testModel))
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When predicting a low-risk request", func() {
			res, err := m.Predict(ctx, model.RequestSummary{
				Age:            30,
				Sex:            "female",
				Housing:        "own",
				SavingAccounts: "rich",
				CreditAmount:   1000,
				Duration:       12,
				Purpose:        "car",
			})

			Convey("Then the label is good with probability at most 0.5", func() {
				So(err, ShouldBeNil)
				So(res.Label, ShouldEqual, model.LabelGood)
				So(res.Probability, ShouldBeLessThanOrEqualTo, 0.5)
			})
		})

		Convey("When predicting a high-risk request", func() {
			res, err := m.Predict(ctx, model.RequestSummary{
				Age:          22,
				Sex:          "male",
				Housing:      "rent",
				CreditAmount: 9000,
				Duration:     48,
				Purpose:      "car",
			})

			Convey("Then the label is bad with probability above 0.5", func() {
				So(err, ShouldBeNil)
				So(res.Label, ShouldEqual, model.LabelBad)
				So(res.Probability, ShouldBeGreaterThan, 0.5)
			})
		})

		Convey("When categorical values are absent or unknown", func() {
			withKnown, err := m.Predict(ctx, model.RequestSummary{
				Age: 30, Sex: "female", Housing: "own", SavingAccounts: "rich",
				CreditAmount: 1000, Duration: 12, Purpose: "car",
			})
			So(err, ShouldBeNil)

			withUnknown, err := m.Predict(ctx, model.RequestSummary{
				Age: 30, Sex: "female", Housing: "own", SavingAccounts: "cryptocurrency",
				CreditAmount: 1000, Duration: 12, Purpose: "car",
			})
			So(err, ShouldBeNil)

			withAbsent, err := m.Predict(ctx, model.RequestSummary{
				Age: 30, Sex: "female", Housing: "own",
				CreditAmount: 1000, Duration: 12, Purpose: "car",
			})
			So(err, ShouldBeNil)

			Convey("Then unknown and absent both encode to zero", func() {
				So(withUnknown.Probability, ShouldEqual, withAbsent.Probability)
				So(withUnknown.Probability, ShouldNotEqual, withKnown.Probability)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := m.Predict(cancelled, model.RequestSummary{
				Age: 30, Sex: "female", Housing: "own",
				CreditAmount: 1000, Duration: 12, Purpose: "car",
			})

			Convey("Then prediction fails with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
