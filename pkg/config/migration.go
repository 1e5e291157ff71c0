package config

import "github.com/knadh/koanf/v2"

// Documents written for the first scanwatch releases only had a watched path
// and a printer name:
//
//	path = "~/Scans"
//	printer = "office"
//
// They are migrated to a single print rule with the behaviour of those releases.

// LegacyRuleName is the rule created from a legacy printer document
const LegacyRuleName = "print"

// legacyRule returns the print rule implied by a {path, printer} document,
// or nil when the document already declares rules or has no printer
func legacyRule(k *koanf.Koanf) map[string]interface{} {
	printer := k.String("printer")
	if printer == "" || len(k.MapKeys("rules")) > 0 {
		return nil
	}
	prefix := "rules." + LegacyRuleName + "."
	return map[string]interface{}{
		prefix + "cmd":       "lpr",
		prefix + "args":      []interface{}{"-P{x}", "{filename}"},
		prefix + "msg":       "sending document '{filename:short}' to printer '{x}'",
		prefix + "icon":      "printer",
		prefix + "ends_with": ".pdf",
		prefix + "x":         printer,
	}
}
