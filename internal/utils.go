package internal

// MergeMaps merges maps into a single map. Keys in later maps
// overwrite keys in earlier maps.
func MergeMaps[T any](maps ...map[string]T) map[string]T {
	result := make(map[string]T)
	for _, m := range maps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}
