package hidreport

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// offsets is the Bit-Offset Tracker of spec.md §4.4: one running bit
// offset per report-ID bucket, plus a standalone offset for reports with
// no report ID.
//
// Buckets are kept in an insertion-ordered map rather than a plain Go
// map, so a walk over them visits report IDs in the order they were
// first seen in the descriptor instead of Go's randomized map
// iteration order.
type offsets struct {
	noReportID uint32
	byReportID *orderedmap.OrderedMap[ReportId, uint32]
}

func newOffsets() *offsets {
	return &offsets{byReportID: orderedmap.New[ReportId, uint32]()}
}

// bump allocates nbits at the current offset of id's bucket (or the
// report-ID-less bucket, when id is nil), advances that bucket, and
// returns the inclusive bit range that was allocated.
func (o *offsets) bump(id *ReportId, nbits uint32) BitRange {
	if id == nil {
		start := o.noReportID
		o.noReportID += nbits
		return BitRange{Start: start, End: start + nbits - 1}
	}
	start, _ := o.byReportID.Get(*id)
	o.byReportID.Set(*id, start+nbits)
	return BitRange{Start: start, End: start + nbits - 1}
}
