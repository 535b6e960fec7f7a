package service

// View paths cached by the view cache. Mutations invalidate every view
// under the affected prefixes.
const (
	ViewStartups         = "/startups"
	ViewInvestors        = "/investors"
	ViewInvestorPipeline = "/investor/pipeline"
	ViewFounderPipeline  = "/founder/pipeline"
	ViewPitches          = "/pitches"
	ViewNotifications    = "/notifications"
	ViewAdmin            = "/admin"
)
