package scripts

import rl "github.com/gen2brain/raylib-go/raylib"

// Scene-file props arrive as decoded JSON, so numbers are float64 and
// vectors are []any.

func propFloat(props map[string]any, key string, fallback float32) float32 {
	switch v := props[key].(type) {
	case float64:
		return float32(v)
	case float32:
		return v
	}
	return fallback
}

func propVec3(props map[string]any, key string, fallback rl.Vector3) rl.Vector3 {
	switch v := props[key].(type) {
	case []any:
		if len(v) != 3 {
			return fallback
		}
		var f [3]float32
		for i, x := range v {
			n, ok := x.(float64)
			if !ok {
				return fallback
			}
			f[i] = float32(n)
		}
		return rl.Vector3{X: f[0], Y: f[1], Z: f[2]}
	case []float32:
		if len(v) == 3 {
			return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
		}
	}
	return fallback
}

func vec3Prop(v rl.Vector3) []float32 {
	return []float32{v.X, v.Y, v.Z}
}

func clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}
