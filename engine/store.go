package engine

import "github.com/iw2rmb/codefence/rangeset"

type (
	rangeRecord    = rangeset.Range[FoldInfo]
	rangeRecordSet = rangeset.Set[FoldInfo]
)

func foldRange(from, to int, language string) rangeRecord {
	return rangeRecord{From: from, To: to, Value: FoldInfo{Language: language}}
}

func overlaps(s rangeset.Set[FoldInfo], from, to int) bool {
	probe := rangeRecord{From: from, To: to}
	for _, r := range s.Intersecting(from, to) {
		if r.Overlaps(probe) {
			return true
		}
	}
	return false
}

func removeOverlapping(s rangeset.Set[FoldInfo], from, to int) rangeset.Set[FoldInfo] {
	probe := rangeRecord{From: from, To: to}
	return s.Filter(func(r rangeRecord) bool { return !r.Overlaps(probe) })
}
