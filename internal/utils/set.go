package utils

// Set implements a set of elements of any comparable type.
type Set[T comparable] map[T]struct{}

// MakeSet returns an empty Set. Optionally, one can give the expected capacity.
func MakeSet[T comparable](capacity ...int) Set[T] {
	if len(capacity) > 0 {
		return make(Set[T], capacity[0])
	}
	return make(Set[T])
}

// SetWith creates a Set and inserts the given elements.
func SetWith[T comparable](elements ...T) Set[T] {
	s := MakeSet[T](len(elements))
	s.Insert(elements...)
	return s
}

// Insert the given elements into the set.
func (s Set[T]) Insert(elements ...T) {
	for _, element := range elements {
		s[element] = struct{}{}
	}
}

// Has returns whether the set contains the given element.
func (s Set[T]) Has(element T) bool {
	_, found := s[element]
	return found
}
