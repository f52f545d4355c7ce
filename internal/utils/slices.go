package utils

import "github.com/google/uuid"

func Ptr[T any](t T) *T {
	return &t
}

func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// ResolveAll loads the given ids through list and reports whether every id
// could be resolved, so relation updates never silently drop unknown ids.
// A nil id list means "leave the relation untouched" and resolves to nil.
func ResolveAll[T any](ids []uuid.UUID, list func(ids []uuid.UUID) ([]T, error)) ([]T, bool, error) {
	if ids == nil {
		return nil, true, nil
	}
	resolved, err := list(UniqueIDs(ids))
	if err != nil {
		return nil, false, err
	}
	if len(resolved) != len(UniqueIDs(ids)) {
		return nil, false, nil
	}
	return resolved, true, nil
}
