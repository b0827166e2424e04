package hidreport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileUsagesPrefersRangeOverQueuedUsage(t *testing.T) {
	g := &globals{usagePage: UsagePage(9), present: presentUsagePage}
	l := &locals{
		usages:       []localUsage{{id: 99}},
		usageMinimum: 1,
		usageMaximum: 3,
		present:      presentUsageMinimum | presentUsageMaximum,
	}
	usages, err := compileUsages(g, l, 0)
	require.NoError(t, err)
	require.Equal(t, []Usage{
		{Page: 9, Id: 1},
		{Page: 9, Id: 2},
		{Page: 9, Id: 3},
	}, usages)
}

func TestCompileUsagesRangeWithoutUsagePageFails(t *testing.T) {
	g := &globals{}
	l := &locals{usageMinimum: 1, usageMaximum: 2, present: presentUsageMinimum | presentUsageMaximum}
	_, err := compileUsages(g, l, 0)
	var bad *InvalidDataError
	require.ErrorAs(t, err, &bad)
}

func TestCompileUsagesUsageMinimumGreaterThanMaximumFails(t *testing.T) {
	g := &globals{usagePage: UsagePage(9), present: presentUsagePage}
	l := &locals{usageMinimum: 5, usageMaximum: 1, present: presentUsageMinimum | presentUsageMaximum}
	_, err := compileUsages(g, l, 0)
	var bad *InvalidDataError
	require.ErrorAs(t, err, &bad)
}

func TestCompileUsagesEmbeddedPageOverridesGlobal(t *testing.T) {
	g := &globals{usagePage: UsagePage(9), present: presentUsagePage}
	page := UsagePage(1)
	l := &locals{usages: []localUsage{{page: &page, id: 0x30}}}
	usages, err := compileUsages(g, l, 0)
	require.NoError(t, err)
	require.Equal(t, []Usage{{Page: 1, Id: 0x30}}, usages)
}

func TestCompileUsagesNoUsageAtAllFails(t *testing.T) {
	g := &globals{usagePage: UsagePage(9), present: presentUsagePage}
	l := &locals{}
	_, err := compileUsages(g, l, 0)
	var bad *InvalidDataError
	require.ErrorAs(t, err, &bad)
}

func TestBitRangeLen(t *testing.T) {
	require.EqualValues(t, 1, BitRange{Start: 3, End: 3}.Len())
	require.EqualValues(t, 8, BitRange{Start: 0, End: 7}.Len())
}

func TestOffsetsBumpIndependentBuckets(t *testing.T) {
	off := newOffsets()
	id1 := ReportId(1)
	id2 := ReportId(2)

	r1 := off.bump(&id1, 3)
	require.EqualValues(t, 0, r1.Start)
	require.EqualValues(t, 2, r1.End)

	r2 := off.bump(&id2, 5)
	require.EqualValues(t, 0, r2.Start)
	require.EqualValues(t, 4, r2.End)

	r1b := off.bump(&id1, 4)
	require.EqualValues(t, 3, r1b.Start)
	require.EqualValues(t, 6, r1b.End)

	rNone := off.bump(nil, 2)
	require.EqualValues(t, 0, rNone.Start)
	require.EqualValues(t, 1, rNone.End)
}

func TestStackPushPopResetsToPriorGlobals(t *testing.T) {
	st := newStack()
	st.top().usagePage = UsagePage(9)
	st.top().present |= presentUsagePage

	st.push()
	st.top().usagePage = UsagePage(1)
	require.Equal(t, UsagePage(1), st.top().usagePage)

	ok := st.pop()
	require.True(t, ok)
	require.Equal(t, UsagePage(9), st.top().usagePage)

	ok = st.pop()
	require.False(t, ok)
}

func TestStackResetLocalsClearsQueuedUsages(t *testing.T) {
	st := newStack()
	st.locals.usages = append(st.locals.usages, localUsage{id: 1})
	st.resetLocals()
	require.Empty(t, st.locals.usages)
	require.Zero(t, st.locals.present)
}
