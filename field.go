package hidreport

// FieldKind distinguishes the three closed Field variants spec.md §3
// defines. Field is a single flat struct tagged by Kind and dispatched by
// exhaustive switch rather than three separate types behind an
// interface (spec.md §9, "Polymorphism").
type FieldKind uint8

const (
	FieldVariable FieldKind = iota
	FieldArray
	FieldConstant
)

func (k FieldKind) String() string {
	switch k {
	case FieldVariable:
		return "Variable"
	case FieldArray:
		return "Array"
	case FieldConstant:
		return "Constant"
	}
	return "Unknown"
}

// Field is one compiled field of a Report. ConstantField carries neither
// a Usage/Usages nor ranges; VariableField carries a single Usage;
// ArrayField carries the full candidate Usages list. All three carry a
// Bits range, an optional ReportId, and a Direction.
type Field struct {
	Kind      FieldKind
	Bits      BitRange
	ReportId  *ReportId
	Direction Direction

	// Collections is the collection path in effect when this field was
	// emitted, outermost first. Fields own this snapshot rather than a
	// shared reference to the mutable collection stack (spec.md §9).
	Collections []Collection

	// Usage is populated for FieldVariable only.
	Usage Usage

	// Usages is populated for FieldArray only.
	Usages []Usage

	// The remaining attributes apply to FieldVariable and FieldArray,
	// and are the zero value for FieldConstant.
	LogicalRange  LogicalRange
	PhysicalRange *PhysicalRange
	Unit          *Unit
	UnitExponent  *UnitExponent
}

// Report groups the fields sharing one (Direction, ReportId). Size is the
// bit position one past the highest-ending field, i.e. the tracked bit
// offset for that bucket (spec.md §3).
type Report struct {
	Id        *ReportId
	Size      uint32
	Direction Direction
	Fields    []Field
}

// ReportDescriptor is the parsed model of every report a device can send
// (Input) or receive (Output, Feature).
type ReportDescriptor struct {
	Input   []Report
	Output  []Report
	Feature []Report
}

func mainDirection(kind MainKind) Direction {
	switch kind {
	case MainOutput:
		return DirectionOutput
	case MainFeature:
		return DirectionFeature
	default:
		return DirectionInput
	}
}

// compileUsages resolves the set of Usages a data field should carry,
// per spec.md §4.5 step 5. UsageMinimum/Maximum, when present, takes
// precedence over a queued Usage local — mirroring
// original_source/src/lib.rs's compile_usages, whose match arms prefer
// the range over the single-usage case.
func compileUsages(g *globals, l *locals, offset int) ([]Usage, error) {
	if l.has(presentUsageMinimum) {
		if !l.has(presentUsageMaximum) {
			return nil, invalidData(offset, 0, "UsageMinimum present without UsageMaximum")
		}
		if !g.has(presentUsagePage) {
			return nil, invalidData(offset, 0, "UsageMinimum/UsageMaximum without a UsagePage")
		}
		min, max := uint32(l.usageMinimum), uint32(l.usageMaximum)
		if min > max {
			return nil, invalidData(offset, min, "UsageMinimum greater than UsageMaximum")
		}
		usages := make([]Usage, 0, max-min+1)
		for id := min; id <= max; id++ {
			usages = append(usages, Usage{Page: g.usagePage, Id: UsageId(id)})
		}
		return usages, nil
	}

	if len(l.usages) == 0 {
		return nil, invalidData(offset, 0, "main data item with no preceding Usage or UsageMinimum/UsageMaximum")
	}
	usages := make([]Usage, len(l.usages))
	for i, lu := range l.usages {
		if lu.page != nil {
			usages[i] = Usage{Page: *lu.page, Id: lu.id}
			continue
		}
		if !g.has(presentUsagePage) {
			return nil, invalidData(offset, uint32(lu.id), "Usage without an embedded page and no global UsagePage")
		}
		usages[i] = Usage{Page: g.usagePage, Id: lu.id}
	}
	return usages, nil
}

// compileMainItem implements the Field Compiler (spec.md §4.5) for a
// Main Input/Output/Feature item.
func compileMainItem(item Item, st *stack, off *offsets) ([]Field, error) {
	g := st.top()
	l := &st.locals

	if !g.has(presentReportSize) {
		return nil, invalidData(item.Offset, 0, "missing ReportSize")
	}
	if !g.has(presentReportCount) {
		return nil, invalidData(item.Offset, 0, "missing ReportCount")
	}
	if g.reportSize == 0 {
		return nil, invalidData(item.Offset, 0, "ReportSize must be at least 1 bit")
	}

	var reportId *ReportId
	if g.has(presentReportId) {
		id := g.reportId
		reportId = &id
	}
	direction := mainDirection(item.MainKind)

	if item.MainFlags.IsConstant {
		nbits := uint32(g.reportSize) * uint32(g.reportCount)
		if nbits == 0 {
			// ReportSize is already known non-zero above, so this is
			// ReportCount == 0: zero repetitions, nothing to emit.
			return nil, nil
		}
		bits := off.bump(reportId, nbits)
		return []Field{{Kind: FieldConstant, Bits: bits, ReportId: reportId, Direction: direction}}, nil
	}

	if !g.has(presentLogicalMinimum) || !g.has(presentLogicalMaximum) {
		return nil, invalidData(item.Offset, 0, "missing LogicalMinimum/LogicalMaximum")
	}
	logicalRange := LogicalRange{Minimum: g.logicalMinimum, Maximum: g.logicalMaximum}
	if int32(logicalRange.Minimum) > int32(logicalRange.Maximum) {
		return nil, invalidData(item.Offset, 0, "logical_minimum > logical_maximum")
	}

	var physicalRange *PhysicalRange
	if g.has(presentPhysicalMinimum) && g.has(presentPhysicalMaximum) {
		physicalRange = &PhysicalRange{Minimum: g.physicalMinimum, Maximum: g.physicalMaximum}
	}

	var unit *Unit
	if g.has(presentUnit) {
		u := g.unit
		unit = &u
	}
	var unitExponent *UnitExponent
	if g.has(presentUnitExponent) {
		e := g.unitExponent
		unitExponent = &e
	}

	usages, err := compileUsages(g, l, item.Offset)
	if err != nil {
		return nil, err
	}
	collections := append([]Collection(nil), st.collections...)

	if item.MainFlags.IsVariable {
		fields := make([]Field, 0, g.reportCount)
		for k := uint32(0); k < uint32(g.reportCount); k++ {
			bits := off.bump(reportId, uint32(g.reportSize))
			usage := usages[len(usages)-1]
			if int(k) < len(usages) {
				usage = usages[k]
			}
			fields = append(fields, Field{
				Kind:          FieldVariable,
				Bits:          bits,
				ReportId:      reportId,
				Direction:     direction,
				Collections:   collections,
				Usage:         usage,
				LogicalRange:  logicalRange,
				PhysicalRange: physicalRange,
				Unit:          unit,
				UnitExponent:  unitExponent,
			})
		}
		return fields, nil
	}

	nbits := uint32(g.reportSize) * uint32(g.reportCount)
	if nbits == 0 {
		// ReportSize is already known non-zero above, so this is
		// ReportCount == 0: zero repetitions, nothing to emit.
		return nil, nil
	}
	bits := off.bump(reportId, nbits)
	return []Field{{
		Kind:          FieldArray,
		Bits:          bits,
		ReportId:      reportId,
		Direction:     direction,
		Collections:   collections,
		Usages:        usages,
		LogicalRange:  logicalRange,
		PhysicalRange: physicalRange,
		Unit:          unit,
		UnitExponent:  unitExponent,
	}}, nil
}
