package timetable

// kindOrder fixes the iteration order of sub-type groups so bundle
// enumeration is deterministic for identical input.
var kindOrder = []Kind{KindLecture, KindLab, KindPractice, KindSeminar, KindPersonal}

// ExpandOptions takes every activity sharing one course name, groups the
// activities by kind, and returns the Cartesian product across the
// non-empty groups: every legal one-of-each-represented-kind bundle.
// Three lecture sections and two lab sections yield six bundles of two
// activities each. A course with a single kind yields singleton bundles.
// Bundles are not checked for internal conflicts here; the solver's
// self-consistency constraint rejects them during search.
func ExpandOptions(activities []*Activity) [][]*Activity {
	byKind := make(map[Kind][]*Activity)
	for _, activity := range activities {
		byKind[activity.Kind] = append(byKind[activity.Kind], activity)
	}

	groups := make([][]*Activity, 0, len(byKind))
	for _, kind := range kindOrder {
		if group := byKind[kind]; len(group) > 0 {
			groups = append(groups, group)
		}
	}
	if len(groups) == 0 {
		return nil
	}

	bundles := [][]*Activity{{}}
	for _, group := range groups {
		next := make([][]*Activity, 0, len(bundles)*len(group))
		for _, partial := range bundles {
			for _, activity := range group {
				bundle := make([]*Activity, len(partial), len(partial)+1)
				copy(bundle, partial)
				next = append(next, append(bundle, activity))
			}
		}
		bundles = next
	}
	return bundles
}
