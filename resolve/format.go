/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package resolve

import (
	"math"
	"strconv"
)

func formatInt32(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

func formatInt64(v uint64) string {
	return strconv.FormatInt(int64(v), 10)
}

func formatFloat32(raw uint32) string {
	f := math.Float32frombits(raw)
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func formatFloat64(raw uint64) string {
	f := math.Float64frombits(raw)
	return strconv.FormatFloat(f, 'g', -1, 64)
}
