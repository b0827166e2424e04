package hidreport

import "sort"

// Parse decodes a HID Report Descriptor byte stream into a
// ReportDescriptor. Parsing is a pure, synchronous transformation: Parse
// holds no state between calls and is safe to invoke concurrently on
// disjoint inputs (spec.md §5). On any error the returned descriptor is
// always nil — there is no partial result (spec.md §4.8).
func Parse(data []byte) (*ReportDescriptor, error) {
	items, err := decodeItems(data)
	if err != nil {
		return nil, err
	}

	st := newStack()
	// Each direction's reports are laid out independently, so each
	// direction gets its own bit-offset tracker.
	offs := map[Direction]*offsets{
		DirectionInput:   newOffsets(),
		DirectionOutput:  newOffsets(),
		DirectionFeature: newOffsets(),
	}
	var fields []Field

	for _, item := range items {
		switch item.Category {
		case CategoryLong, CategoryReserved:
			continue
		case CategoryGlobal:
			if err := applyGlobal(st, item); err != nil {
				return nil, err
			}
		case CategoryLocal:
			applyLocal(st, item)
		case CategoryMain:
			newFields, err := applyMain(st, offs[mainDirection(item.MainKind)], item)
			if err != nil {
				return nil, err
			}
			fields = append(fields, newFields...)
		}
	}

	return assemble(fields)
}

func applyGlobal(st *stack, item Item) error {
	g := st.top()
	switch item.GlobalKind {
	case GlobalUsagePage:
		g.usagePage = UsagePage(item.globalUint)
		g.present |= presentUsagePage
	case GlobalLogicalMinimum:
		g.logicalMinimum = LogicalMinimum(item.globalSigned)
		g.present |= presentLogicalMinimum
	case GlobalLogicalMaximum:
		g.logicalMaximum = LogicalMaximum(item.globalSigned)
		g.present |= presentLogicalMaximum
	case GlobalPhysicalMinimum:
		g.physicalMinimum = PhysicalMinimum(item.globalSigned)
		g.present |= presentPhysicalMinimum
	case GlobalPhysicalMaximum:
		g.physicalMaximum = PhysicalMaximum(item.globalSigned)
		g.present |= presentPhysicalMaximum
	case GlobalUnitExponent:
		g.unitExponent = UnitExponent(item.globalSigned)
		g.present |= presentUnitExponent
	case GlobalUnit:
		g.unit = Unit(item.globalUint)
		g.present |= presentUnit
	case GlobalReportSize:
		g.reportSize = ReportSize(item.globalUint)
		g.present |= presentReportSize
	case GlobalReportId:
		g.reportId = ReportId(item.globalUint)
		g.present |= presentReportId
	case GlobalReportCount:
		g.reportCount = ReportCount(item.globalUint)
		g.present |= presentReportCount
	case GlobalPush:
		st.push()
	case GlobalPop:
		if !st.pop() {
			return invalidData(item.Offset, 0, "Pop with only one Globals snapshot on the stack")
		}
	case GlobalReserved:
		// Reserved global tags are accepted and ignored, per spec.md §4.1
		// ("the decoder is total... unknown tags become Reserved").
	}
	return nil
}

func applyLocal(st *stack, item Item) {
	l := &st.locals
	switch item.LocalKind {
	case LocalUsage:
		l.usages = append(l.usages, localUsage{page: item.usagePage, id: UsageId(item.localUint)})
	case LocalUsageMinimum:
		l.usageMinimum = UsageMinimum(item.localUint)
		l.present |= presentUsageMinimum
	case LocalUsageMaximum:
		l.usageMaximum = UsageMaximum(item.localUint)
		l.present |= presentUsageMaximum
	case LocalDesignatorIndex:
		l.designatorIndex = DesignatorIndex(item.localUint)
		l.present |= presentDesignatorIndex
	case LocalDesignatorMinimum:
		l.designatorMinimum = DesignatorMinimum(item.localUint)
		l.present |= presentDesignatorMinimum
	case LocalDesignatorMaximum:
		l.designatorMaximum = DesignatorMaximum(item.localUint)
		l.present |= presentDesignatorMaximum
	case LocalStringIndex:
		l.stringIndex = StringIndex(item.localUint)
		l.present |= presentStringIndex
	case LocalStringMinimum:
		l.stringMinimum = StringMinimum(item.localUint)
		l.present |= presentStringMinimum
	case LocalStringMaximum:
		l.stringMaximum = StringMaximum(item.localUint)
		l.present |= presentStringMaximum
	case LocalDelimiter:
		l.delimiter = Delimiter(item.localUint)
		l.present |= presentDelimiter
	case LocalReserved:
	}
}

// applyMain handles the three Main item families: Collection/
// EndCollection (which only touch the collection stack) and
// Input/Output/Feature (which go through the Field Compiler). Locals are
// reset after every one of them, per spec.md §3.
func applyMain(st *stack, off *offsets, item Item) ([]Field, error) {
	defer st.resetLocals()

	switch item.MainKind {
	case MainCollection:
		st.collections = append(st.collections, Collection{Kind: item.CollectionKind})
		return nil, nil
	case MainEndCollection:
		if len(st.collections) == 0 {
			return nil, invalidData(item.Offset, 0, "EndCollection without a matching Collection")
		}
		st.collections = st.collections[:len(st.collections)-1]
		return nil, nil
	default:
		return compileMainItem(item, st, off)
	}
}

// assemble implements the Descriptor Assembler (spec.md §4.6): group
// fields by (direction, report_id), sort within each direction bucket by
// report_id (spec.md §9's resolution of the pooled-sort open question),
// and build the three report vectors.
func assemble(fields []Field) (*ReportDescriptor, error) {
	input, err := assembleDirection(fields, DirectionInput)
	if err != nil {
		return nil, err
	}
	output, err := assembleDirection(fields, DirectionOutput)
	if err != nil {
		return nil, err
	}
	feature, err := assembleDirection(fields, DirectionFeature)
	if err != nil {
		return nil, err
	}
	return &ReportDescriptor{Input: input, Output: output, Feature: feature}, nil
}

func assembleDirection(fields []Field, dir Direction) ([]Report, error) {
	groups := map[ReportId][]Field{}
	var order []ReportId
	var noID []Field
	haveID, haveNoID := false, false

	for _, f := range fields {
		if f.Direction != dir {
			continue
		}
		if f.ReportId == nil {
			haveNoID = true
			noID = append(noID, f)
			continue
		}
		haveID = true
		id := *f.ReportId
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], f)
	}

	if haveID && haveNoID {
		return nil, invalidData(0, 0, "all reports of a direction must have report IDs, or none do")
	}

	if !haveID {
		if !haveNoID {
			return nil, nil
		}
		return []Report{buildReport(nil, noID, dir)}, nil
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	reports := make([]Report, 0, len(order))
	for _, id := range order {
		id := id
		reports = append(reports, buildReport(&id, groups[id], dir))
	}
	return reports, nil
}

func buildReport(id *ReportId, fields []Field, dir Direction) Report {
	var size uint32
	for _, f := range fields {
		if f.Bits.End+1 > size {
			size = f.Bits.End + 1
		}
	}
	return Report{Id: id, Size: size, Direction: dir, Fields: fields}
}
