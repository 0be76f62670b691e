package domain

const kgToLbs = 2.2046226218

// ConvertWeight converts a weight value between "kg" and "lbs".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "kg" && to == "lbs" {
		return v * kgToLbs
	}
	if from == "lbs" && to == "kg" {
		return v / kgToLbs
	}
	return v
}
