package economy

// ComputeCatchUp returns the income earned while no session was running.
// Absences of OfflineThresholdSeconds or less earn nothing; there is no upper cap.
func ComputeCatchUp(lastSaveMillis, nowMillis, totalIncomeRate int64) CatchUp {
	if lastSaveMillis <= 0 {
		return CatchUp{}
	}
	diffSeconds := floorDiv(nowMillis-lastSaveMillis, 1000)
	if diffSeconds <= OfflineThresholdSeconds {
		return CatchUp{}
	}
	return CatchUp{
		Amount:         totalIncomeRate * diffSeconds,
		ElapsedSeconds: diffSeconds,
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
