// Package arbitration reconciles the two classifier verdicts into a single
// recommendation.
package arbitration

import "github.com/riskfuse/riskfuse/internal/domain/model"

// Decide maps a pair of classifier labels to a recommendation.
//
// The table is fixed:
//
//	bad  + bad  -> reject
//	good + good -> approve
//	anything else -> manual_review
//
// The function is total: unexpected label values also fall through to
// manual_review, so arbitration can never be the cause of a request
// failure.
func Decide(local, remote model.Label) model.Recommendation {
	switch {
	case local == model.LabelBad && remote == model.LabelBad:
		return model.RecommendReject
	case local == model.LabelGood && remote == model.LabelGood:
		return model.RecommendApprove
	default:
		return model.RecommendManualReview
	}
}
