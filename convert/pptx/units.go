package pptx

import (
	"math"
	"strconv"
)

const (
	emuPerCm = 360000
	emuPerPt = 12700
)

func cmToEMU(cm float64) int64 {
	return int64(math.Round(cm * emuPerCm))
}

func ptToEMU(pt float64) int64 {
	return int64(math.Round(pt * emuPerPt))
}

// fontSize is in hundredths of a point.
func fontSize(pt float64) string {
	return strconv.FormatInt(int64(math.Round(pt*100)), 10)
}

// percent is in thousandths of a percent.
func percent(multiple float64) string {
	return strconv.FormatInt(int64(math.Round(multiple*100000)), 10)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
