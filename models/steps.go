package models

// onboardingSteps is the fixed fulfillment pipeline shown on the admin board.
// Indices are 1-based everywhere; step 1 is seeded complete when a submission
// is created. This is the only copy of the catalog; it is not stored in the
// database.
var onboardingSteps = [...]string{
	"Request received",
	"Accounts created",
	"Software licenses assigned",
	"Equipment ordered",
	"Equipment configured",
	"Access provisioned",
	"Shipped to office",
	"Onboarding complete",
}

// StepCount is the number of pipeline steps.
const StepCount = len(onboardingSteps)

// StepLabels returns the ordered pipeline labels. The returned slice is a
// copy; callers may not mutate the catalog.
func StepLabels() []string {
	labels := make([]string, StepCount)
	copy(labels, onboardingSteps[:])
	return labels
}
