package hidreport

// RawItem is a single decoded short or long item, with its raw tag byte,
// byte offset in the stream, and its little-endian payload (up to 4 bytes
// for a short item).
// Long items carry their own tag separately in LongTag and their payload
// in Data; they are never interpreted further (spec.md §4.1).
type RawItem struct {
	Offset  int
	Prefix  byte
	Data    []byte
	IsLong  bool
	LongTag byte
}

// shortItemDataLen returns the declared payload length in bytes for a short item's
// size bits (0,1,2,3 -> 0,1,2,4).
func shortItemDataLen(prefix byte) int {
	switch prefix & 0x03 {
	case 0:
		return 0
	case 1:
		return 1
	case 2:
		return 2
	default:
		return 4
	}
}

// decoder walks a byte slice emitting RawItems one at a time. It never
// panics: truncated items, short or long (including a long item whose
// header is cut off), surface as OutOfBoundsError, and unknown short-item
// tags are returned verbatim for the classifier to label Reserved.
type decoder struct {
	data []byte
	pos  int
}

func newDecoder(data []byte) *decoder {
	return &decoder{data: data}
}

// next returns the next item, or ok=false once the stream is exhausted.
func (d *decoder) next() (RawItem, bool, error) {
	if d.pos >= len(d.data) {
		return RawItem{}, false, nil
	}
	offset := d.pos
	prefix := d.data[d.pos]
	d.pos++

	if prefix == 0xFE {
		return d.nextLong(offset)
	}

	n := shortItemDataLen(prefix)
	if d.pos+n > len(d.data) {
		return RawItem{}, false, outOfBounds(offset)
	}
	item := RawItem{Offset: offset, Prefix: prefix, Data: d.data[d.pos : d.pos+n]}
	d.pos += n
	return item, true, nil
}

func (d *decoder) nextLong(offset int) (RawItem, bool, error) {
	if d.pos+2 > len(d.data) {
		return RawItem{}, false, outOfBounds(offset)
	}
	dataLen := int(d.data[d.pos])
	tag := d.data[d.pos+1]
	d.pos += 2
	if d.pos+dataLen > len(d.data) {
		return RawItem{}, false, outOfBounds(offset)
	}
	item := RawItem{Offset: offset, Prefix: 0xFE, IsLong: true, LongTag: tag, Data: d.data[d.pos : d.pos+dataLen]}
	d.pos += dataLen
	return item, true, nil
}

// unsigned zero-extends the item's little-endian payload.
func (r RawItem) unsigned() uint32 {
	var v uint32
	for i, b := range r.Data {
		v |= uint32(b) << (8 * i)
	}
	return v
}

// signed sign-extends the item's little-endian payload from its declared
// byte width, per spec.md §4.1/§6.
func (r RawItem) signed() int32 {
	v := r.unsigned()
	switch len(r.Data) {
	case 0:
		return 0
	case 1:
		return int32(int8(v))
	case 2:
		return int32(int16(v))
	default:
		return int32(v)
	}
}

// unitExponentValue decodes the low nibble of the payload as a signed
// value in [-8, 7], per the Unit Exponent item's 4-bit-nibble encoding
// (spec.md §3's Data Model, which is more specific than the general
// sign-extension rule in §4.1 for the other signed globals).
func (r RawItem) unitExponentValue() int8 {
	nibble := uint8(r.unsigned() & 0x0F)
	if nibble >= 8 {
		return int8(nibble) - 16
	}
	return int8(nibble)
}

// ItemCategory is the two type bits (bits 2-3) of a short item's prefix
// byte (Main=0, Global=1, Local=2, Reserved=3), plus the out-of-band
// category for long items.
type ItemCategory uint8

const (
	CategoryMain ItemCategory = iota
	CategoryGlobal
	CategoryLocal
	CategoryReserved
	CategoryLong
)

// MainKind distinguishes the five Main item tags.
type MainKind uint8

const (
	MainInput MainKind = iota
	MainOutput
	MainFeature
	MainCollection
	MainEndCollection
	mainUnknown
)

// MainFlags decodes the Input/Output/Feature data payload into the
// booleans spec.md §4.2 lists. Bits beyond the declared payload length
// default to false, per the HID spec's "missing bits are zero" rule.
type MainFlags struct {
	IsConstant       bool
	IsVariable       bool
	IsRelative       bool
	Wraps            bool
	NonLinear        bool
	NoPreferredState bool
	HasNullState     bool
	IsVolatile       bool
	IsBufferedBytes  bool
}

func decodeMainFlags(v uint32) MainFlags {
	return MainFlags{
		IsConstant:       v&(1<<0) != 0,
		IsVariable:       v&(1<<1) != 0,
		IsRelative:       v&(1<<2) != 0,
		Wraps:            v&(1<<3) != 0,
		NonLinear:        v&(1<<4) != 0,
		NoPreferredState: v&(1<<5) != 0,
		HasNullState:     v&(1<<6) != 0,
		IsVolatile:       v&(1<<7) != 0,
		IsBufferedBytes:  v&(1<<8) != 0,
	}
}

// GlobalKind distinguishes the Global item tags.
type GlobalKind uint8

const (
	GlobalUsagePage GlobalKind = iota
	GlobalLogicalMinimum
	GlobalLogicalMaximum
	GlobalPhysicalMinimum
	GlobalPhysicalMaximum
	GlobalUnitExponent
	GlobalUnit
	GlobalReportSize
	GlobalReportId
	GlobalReportCount
	GlobalPush
	GlobalPop
	GlobalReserved
)

// LocalKind distinguishes the Local item tags.
type LocalKind uint8

const (
	LocalUsage LocalKind = iota
	LocalUsageMinimum
	LocalUsageMaximum
	LocalDesignatorIndex
	LocalDesignatorMinimum
	LocalDesignatorMaximum
	LocalStringIndex
	LocalStringMinimum
	LocalStringMaximum
	LocalDelimiter
	LocalReserved
)

// Item is a RawItem mapped to its typed, semantically-decoded form
// (spec.md §4.2). Only the fields relevant to Category (and, for Main
// items, MainKind) are meaningful; this is a closed, flat tagged variant
// dispatched by exhaustive switch rather than a dynamic-dispatch
// interface hierarchy (spec.md §9, "Polymorphism").
type Item struct {
	Offset   int
	Category ItemCategory

	MainKind       MainKind
	MainFlags      MainFlags
	CollectionKind CollectionKind

	GlobalKind   GlobalKind
	globalSigned int32
	globalUint   uint32

	LocalKind   LocalKind
	usagePage   *UsagePage
	localUint   uint32
}

func classify(raw RawItem) Item {
	if raw.IsLong {
		return Item{Offset: raw.Offset, Category: CategoryLong}
	}

	typ := (raw.Prefix >> 2) & 0x03
	tag := (raw.Prefix >> 4) & 0x0F

	switch typ {
	case 0:
		return classifyMain(raw, tag)
	case 1:
		return classifyGlobal(raw, tag)
	case 2:
		return classifyLocal(raw, tag)
	default:
		return Item{Offset: raw.Offset, Category: CategoryReserved}
	}
}

func classifyMain(raw RawItem, tag byte) Item {
	item := Item{Offset: raw.Offset, Category: CategoryMain}
	switch tag {
	case 0x8:
		item.MainKind = MainInput
		item.MainFlags = decodeMainFlags(raw.unsigned())
	case 0x9:
		item.MainKind = MainOutput
		item.MainFlags = decodeMainFlags(raw.unsigned())
	case 0xB:
		item.MainKind = MainFeature
		item.MainFlags = decodeMainFlags(raw.unsigned())
	case 0xA:
		item.MainKind = MainCollection
		item.CollectionKind = CollectionKind(raw.unsigned())
	case 0xC:
		item.MainKind = MainEndCollection
	default:
		item.MainKind = mainUnknown
		item.Category = CategoryReserved
	}
	return item
}

func classifyGlobal(raw RawItem, tag byte) Item {
	item := Item{Offset: raw.Offset, Category: CategoryGlobal}
	switch tag {
	case 0x0:
		item.GlobalKind = GlobalUsagePage
		item.globalUint = raw.unsigned()
	case 0x1:
		item.GlobalKind = GlobalLogicalMinimum
		item.globalSigned = raw.signed()
	case 0x2:
		item.GlobalKind = GlobalLogicalMaximum
		item.globalSigned = raw.signed()
	case 0x3:
		item.GlobalKind = GlobalPhysicalMinimum
		item.globalSigned = raw.signed()
	case 0x4:
		item.GlobalKind = GlobalPhysicalMaximum
		item.globalSigned = raw.signed()
	case 0x5:
		item.GlobalKind = GlobalUnitExponent
		item.globalSigned = int32(raw.unitExponentValue())
	case 0x6:
		item.GlobalKind = GlobalUnit
		item.globalUint = raw.unsigned()
	case 0x7:
		item.GlobalKind = GlobalReportSize
		item.globalUint = raw.unsigned()
	case 0x8:
		item.GlobalKind = GlobalReportId
		item.globalUint = raw.unsigned()
	case 0x9:
		item.GlobalKind = GlobalReportCount
		item.globalUint = raw.unsigned()
	case 0xA:
		item.GlobalKind = GlobalPush
	case 0xB:
		item.GlobalKind = GlobalPop
	default:
		item.GlobalKind = GlobalReserved
	}
	return item
}

func classifyLocal(raw RawItem, tag byte) Item {
	item := Item{Offset: raw.Offset, Category: CategoryLocal}
	switch tag {
	case 0x0:
		item.LocalKind = LocalUsage
		v := raw.unsigned()
		if len(raw.Data) == 4 {
			page := UsagePage(v >> 16)
			item.usagePage = &page
			item.localUint = v & 0xFFFF
		} else {
			item.localUint = v
		}
	case 0x1:
		item.LocalKind = LocalUsageMinimum
		item.localUint = raw.unsigned()
	case 0x2:
		item.LocalKind = LocalUsageMaximum
		item.localUint = raw.unsigned()
	case 0x3:
		item.LocalKind = LocalDesignatorIndex
		item.localUint = raw.unsigned()
	case 0x4:
		item.LocalKind = LocalDesignatorMinimum
		item.localUint = raw.unsigned()
	case 0x5:
		item.LocalKind = LocalDesignatorMaximum
		item.localUint = raw.unsigned()
	case 0x7:
		item.LocalKind = LocalStringIndex
		item.localUint = raw.unsigned()
	case 0x8:
		item.LocalKind = LocalStringMinimum
		item.localUint = raw.unsigned()
	case 0x9:
		item.LocalKind = LocalStringMaximum
		item.localUint = raw.unsigned()
	case 0xA:
		item.LocalKind = LocalDelimiter
		item.localUint = raw.unsigned()
	default:
		item.LocalKind = LocalReserved
	}
	return item
}

// decodeItems runs the full item decoder + classifier over data, stopping
// at the first error (spec.md §4.8: "all parser errors are fatal to the
// whole parse").
func decodeItems(data []byte) ([]Item, error) {
	dec := newDecoder(data)
	var items []Item
	for {
		raw, ok, err := dec.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, classify(raw))
	}
}
