// Package hut is a minimal stand-in for the HID Usage Tables (HUT)
// enumeration. spec.md §1 and §6 place the full HUT registry out of
// scope — "a companion HID Usage Tables (HUT) enumeration of
// (usage_page, usage_id) constants... referenced only by the interface
// it expose[s]". This package is that interface boundary: a small,
// deliberately non-authoritative table of the usages exercised by the
// boot-protocol mouse/keyboard scenarios in spec.md §8, used by the CLI
// dump command to annotate fields with a human-readable name when one is
// known.
package hut

import "fmt"

// Entry is one (UsagePage, UsageId) pair with its human-readable name.
type Entry struct {
	Page uint16
	Id   uint16
}

var names = map[Entry]string{
	{Page: 0x01, Id: 0x01}: "Pointer",
	{Page: 0x01, Id: 0x02}: "Mouse",
	{Page: 0x01, Id: 0x06}: "Keyboard",
	{Page: 0x01, Id: 0x30}: "X",
	{Page: 0x01, Id: 0x31}: "Y",
	{Page: 0x01, Id: 0x38}: "Wheel",
	{Page: 0x07, Id: 0x00}: "Keyboard No Event",
	{Page: 0x07, Id: 0xE0}: "Keyboard Left Control",
	{Page: 0x09, Id: 0x01}: "Button 1",
	{Page: 0x09, Id: 0x02}: "Button 2",
	{Page: 0x09, Id: 0x03}: "Button 3",
}

// Name returns a human-readable name for (page, id), or ok=false when
// this stand-in table doesn't know it — the real HUT registry is an
// external collaborator this package does not attempt to replace.
func Name(page, id uint16) (string, bool) {
	name, ok := names[Entry{Page: page, Id: id}]
	return name, ok
}

// String formats (page, id) using Name when known, falling back to its
// raw hex form otherwise.
func String(page, id uint16) string {
	if name, ok := Name(page, id); ok {
		return name
	}
	return fmt.Sprintf("0x%04X:0x%04X", page, id)
}
