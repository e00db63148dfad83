package moderation

// Canonical critical violation identifiers.
const (
	ViolationPersonalInformation = "personal_information"
	ViolationViolenceHarassment  = "violence_harassment"
	ViolationAdultContentNudity  = "adult_content_nudity"
	ViolationHarmfulDangerous    = "harmful_dangerous_content"

	ViolationSystemError = "system_error"
)

var CriticalViolations = []string{
	ViolationPersonalInformation,
	ViolationViolenceHarassment,
	ViolationAdultContentNudity,
	ViolationHarmfulDangerous,
}

// CriticalKeywords are matched case-insensitively as substrings of an issue category.
var CriticalKeywords = []string{
	"personal",
	"violence",
	"adult",
	"nudity",
	"harmful",
	"dangerous",
}

// Confidence thresholds for blocking. The policy escalates at the lowest one.
const (
	ThresholdHighConfidence   = 70
	ThresholdMediumConfidence = 60
	ThresholdLowConfidence    = 50
)

// Issue categories used by system generated results.
const (
	CategoryAnalysisError      = "Analysis Error"
	CategoryConfigurationError = "Configuration Error"
	CategoryServiceError       = "Service Error"
	CategorySystemError        = "System Error"
	CategoryUnspecified        = "Unspecified Violation"
)
