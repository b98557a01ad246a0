package typeconv

import (
	"fmt"
	"math"
	"time"
)

// Normalize maps a decoded value onto the scalar set int64, float64, bool, string,
// time.Time and nil. Unsigned values too large for int64 stay uint64. Unknown
// kinds are rendered with fmt.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64, float64, bool, string, time.Time:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint:
		return unsigned(uint64(x))
	case uint64:
		return unsigned(x)
	case float32:
		return float64(x)
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func unsigned(x uint64) any {
	if x > math.MaxInt64 {
		return x
	}
	return int64(x)
}
