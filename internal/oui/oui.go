// Package oui maps hardware-address prefixes to vendor names. The built-in
// table covers the assignments most commonly seen on home and office
// segments; unknown prefixes simply leave the vendor field empty.
package oui

import (
	"fmt"
	"net"

	"arpscout/internal/scan"
)

var vendors = map[string]string{
	"001A11": "Google",
	"001D0F": "TP-Link",
	"00259C": "Cisco-Linksys",
	"0050F2": "Microsoft",
	"08BFB8": "ASUSTek",
	"18FE34": "Espressif",
	"28CDC1": "Raspberry Pi",
	"2C5491": "Netgear",
	"3C22FB": "Apple",
	"3C5AB4": "Google",
	"48D343": "Arris",
	"5CCF7F": "Espressif",
	"744D28": "Routerboard.com",
	"7CDD90": "Shenzhen Ogemray",
	"843A4B": "Apple",
	"8C3BAD": "Netgear",
	"9027E4": "Apple",
	"A020A6": "Espressif",
	"B827EB": "Raspberry Pi",
	"BC2411": "Zyxel",
	"D0374F": "Cisco",
	"DCA632": "Raspberry Pi",
	"E45F01": "Raspberry Pi",
	"F4F26D": "TP-Link",
}

// Lookup returns the vendor name registered for the MAC's three-octet
// prefix, or an empty string.
func Lookup(mac net.HardwareAddr) string {
	if len(mac) < 3 {
		return ""
	}
	prefix := fmt.Sprintf("%02X%02X%02X", mac[0], mac[1], mac[2])
	return vendors[prefix]
}

// Enrich fills in the vendor field of every target whose MAC prefix is
// known. Already-populated vendor values are left alone.
func Enrich(targets []scan.Target) {
	for i := range targets {
		if targets[i].Vendor != "" {
			continue
		}
		targets[i].Vendor = Lookup(targets[i].MAC)
	}
}
