package domain

import "sort"

// FavoriteSet is a sorted set of product ids
type FavoriteSet []int

// Has reports membership
func (f FavoriteSet) Has(id int) bool {
	i := sort.SearchInts(f, id)
	return i < len(f) && f[i] == id
}

// Toggle flips membership of id and returns whether it is now a favorite
func (f *FavoriteSet) Toggle(id int) bool {
	s := *f
	i := sort.SearchInts(s, id)
	if i < len(s) && s[i] == id {
		*f = append(s[:i:i], s[i+1:]...)
		return false
	}
	out := make(FavoriteSet, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, id)
	out = append(out, s[i:]...)
	*f = out
	return true
}
