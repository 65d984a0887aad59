package utils

// RemoveElements 从切片中移除最多count个等于e的元素
func RemoveElements[T comparable](s []T, e T, count int) []T {
	res := make([]T, 0, len(s))
	for _, v := range s {
		if count > 0 && v == e {
			count--
			continue
		}
		res = append(res, v)
	}
	return res
}

// RemoveAllElement 移除所有等于e的元素
func RemoveAllElement[T comparable](s []T, e T) []T {
	res := make([]T, 0, len(s))
	for _, v := range s {
		if v != e {
			res = append(res, v)
		}
	}
	return res
}

// HasSameKeys 两个map的键集合是否相同
func HasSameKeys[K comparable, V1, V2 any](a map[K]V1, b map[K]V2) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
