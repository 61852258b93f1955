package insights

// Sufficient reports whether the payload carries enough signal to be scored
// and analyzed.
func (p Policy) Sufficient(payload AnonymizedPayload) bool {
	total := len(payload.Symptoms) + len(payload.FoodLogs) + len(payload.MedicationLogs)
	return total >= p.MinSignals
}
