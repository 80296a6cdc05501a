package suggest

import "github.com/datawash-io/datawash/domain"

// useCaseBoosts maps each use case to its issue-type boost table. A
// missing entry means a neutral weight of 1.0; values above 1.0 raise
// the effective priority score multiplicatively.
var useCaseBoosts = map[domain.UseCase]map[domain.IssueType]float64{
	domain.UseCaseML: {
		domain.IssueDuplicateRows:   1.5,
		domain.IssueMissingValues:   1.3,
		domain.IssueNumericAsString: 1.3,
		domain.IssueBooleanAsString: 1.2,
		domain.IssueOutliers:        1.2,
		domain.IssueSimilarColumns:  1.4,
	},
	domain.UseCaseAnalytics: {
		domain.IssueMissingValues:          1.5,
		domain.IssueOutliers:               1.3,
		domain.IssueInconsistentDateFormat: 1.4,
		domain.IssueInconsistentCase:       1.2,
	},
	domain.UseCaseExport: {
		domain.IssueInconsistentDateFormat: 1.5,
		domain.IssueWhitespacePadding:      1.4,
		domain.IssueInconsistentCase:       1.3,
		domain.IssueNumericAsString:        1.3,
	},
	domain.UseCaseGeneral: {},
}
